// Package sessions keeps per-browser state between requests.
//
// A Session is a bag of JSON values keyed by name. The browser only holds a
// signed token naming the session; records live in a Registry (memory or
// bbolt) and are validated against a JSON schema whenever they are decoded.
package sessions
