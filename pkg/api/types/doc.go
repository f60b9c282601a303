// Package types defines the JSON bodies of the HTTP API.
package types
