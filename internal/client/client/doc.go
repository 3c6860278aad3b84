// Package client contains the client-side transport for the adminpanel API.
//
// # Overview
//
// The package provides:
//  1. A small request/response contract (see Doer) that the data and auth
//     providers are written against.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that joins
//     paths onto the API base URL, attaches the bearer token from a
//     TokenSource and maps status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI
//     session database: SQLite with embedded goose migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound, ErrBadRequest and
// ErrRequestFailed. Non-2xx responses come back as *HTTPError, which wraps
// one of them.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation and timeouts.
package client
