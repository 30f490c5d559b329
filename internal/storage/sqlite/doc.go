// Package sqlite provides the relational todo store backed by SQLite.
//
// DB owns the connection pool and applies the embedded schema on open. Each
// request acquires a Store bound to one pooled connection and releases it when
// the request finishes, mirroring a connect/disconnect per request.
package sqlite
