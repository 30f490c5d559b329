// Package session provides the session-scoped todo store.
//
// Lists live as nested records inside the visitor's session and every
// operation is an immediate in-memory edit. The Provider moves the records in
// and out of the session state around each request.
package session
