// Package store persists the shortcut collection to a pretty-printed JSON
// file and notifies subscribers with the full list on every mutation.
//
// The file is loaded once at open; a missing or unreadable file yields an
// empty collection rather than an error. Writes replace the file atomically
// via a temp-file rename.
package store
