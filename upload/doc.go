// Package upload implements the presigned-URL upload flow and the
// wait-for-ready poll loop.
//
// An upload is three remote steps driven by the caller: an init call that
// returns a server-assigned file ID and a time-limited presigned URL, a
// direct PUT of the raw bytes to storage, and a confirm call that queues
// the file for asynchronous processing. Waiting for the pipeline to finish
// is a constant-interval poll bounded by wall-clock time, observable
// through the PollMonitor interface.
package upload
