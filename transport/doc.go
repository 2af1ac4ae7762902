// Package transport provides the authenticated HTTP plumbing shared by all
// client flows.
//
// Every request carries the API key, a JSON content type, and the client
// User-Agent. Response outcomes map onto a small typed error surface:
// AuthError for rejected credentials, NotFoundError for missing resources,
// and APIError for every other HTTP or network failure.
//
// The organization identifier behind the API key is resolved lazily via the
// identity endpoint and cached for the lifetime of the client.
package transport
