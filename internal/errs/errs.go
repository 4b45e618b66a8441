// Package errs defines custom error types and utilities.
//
// HTTPError is the single JSON error shape returned to API clients;
// FieldError carries per-field detail for rejected request input.
package errs
