// Package core defines the domain model shared by all client flows.
//
// It contains the file processing status set with its derived predicates,
// the File and Project value objects, metadata filters for search, and the
// typed search result containers, along with the permissive wire decoding
// used to normalize API responses.
//
// The package has no dependencies beyond the standard library.
package core
