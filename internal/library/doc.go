// Package library defines the application-facing book catalog model: books,
// reading lists, the status vocabulary, form payloads and the error taxonomy
// shared by the storage gateway, the in-memory collection and the HTTP API.
//
// Values in this package are always in application form: a missing cover or
// note is the empty string, statuses use their display names ("Wish List"),
// and ratings/progress are plain integers.
package library
