// Package shortcut defines the shortcut data model and the operations the
// capture engine performs on it: ordered sequence editing, JSON
// serialization and parsing, duplicate detection, and the save path that
// hands validated candidates to the persistence store.
package shortcut
