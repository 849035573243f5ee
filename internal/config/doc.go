// Package config loads and defaults the daemon configuration from a JSON
// file. A missing file yields the defaults; a malformed file is an error.
package config
