// Package storage defines the persistence contract for todo lists.
//
// Two backends implement Store: a session-scoped store that keeps lists
// inside the visitor's session record, and a relational store backed by
// SQLite. Callers never mix them; the backend is chosen once at startup and
// handed to the web service as a Provider.
//
// # Error Types
//
//   - ErrNotFound: a referenced list is missing when an operation needs it.
//
// Read operations report absence through a found flag instead; mutations on
// absent ids are no-ops.
package storage
