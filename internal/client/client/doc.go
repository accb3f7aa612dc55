// Package client contains the request transport of the imagedrop client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Transport interface): a single
//     fire-and-forget Send that posts a payload with custom headers and reports
//     the outcome to a completion callback exactly once.
//  2. A concrete HTTP implementation (see HTTPClient) that applies headers
//     verbatim and interprets the response body either as an {"err","data"}
//     envelope or as plain data.
//  3. Envelope detectors (SyntaxDetector, MediaTypeDetector, AnyDetector)
//     that decide which of the two interpretations applies.
//
// # Error Handling
//
// Transport failures are reported as ErrTransaction. Errors sent by the server
// inside an envelope are reported as *RemoteError. A body that looks like an
// envelope but does not parse yields the JSON error. Nothing panics or returns
// errors out of Send; everything goes through the callback.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Each Send runs in its own goroutine;
// callbacks may therefore arrive in any order relative to the calls. There are
// no retries and no timeouts; cancelling ctx aborts the request and is
// reported like any other transport failure.
//
// See Also
//
//   - Interface:  Transport
//   - HTTP impl:  HTTPClient
//   - Errors:     ErrTransaction, RemoteError
package client
