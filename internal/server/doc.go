// Package server exposes the pipeline over a line-oriented stdio
// protocol for the external chat front-end.
//
// Each input line is a request (a JSON object with a "path" field, or a
// bare image path); each output line is a JSON response carrying the
// reconstructed equation and its solution, or an error. Logging goes to
// the provided logger, never to the protocol stream.
package server
