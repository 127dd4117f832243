// Package errs defines the error shapes returned to API clients.
//
// Repositories and services return *HTTPError values directly; the global
// error handler serializes them. Anything else is treated as a driver
// error and converted by package sqlerr.
package errs
