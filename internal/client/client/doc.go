// Package client talks to the recipebook server.
//
// # Overview
//
// The package provides:
//  1. The Gateway interface, the client half of the server action contract.
//     Every operation returns the server's Result envelope; a non-nil error
//     means the call never produced one (server unreachable, malformed body).
//  2. HTTPClient, the implementation over the JSON API. It attaches the
//     stored access token, and when the server answers 401 with
//     X-Auth-Error: token_expired it refreshes the token pair once and
//     replays the request.
//  3. Token storage: MemoryTokenStore for tests and short-lived sessions,
//     SQLiteTokenStore to keep the user signed in between CLI runs.
//     InitDatabase opens the local SQLite file and applies the embedded
//     goose migrations.
//
// # Error Handling
//
// Transport conditions are exposed as sentinel errors that callers can match
// with errors.Is: ErrUnavailable, ErrUnexpectedResponse.
package client
