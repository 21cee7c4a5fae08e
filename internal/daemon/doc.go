// Package daemon ties the row store, object storage, and HTTP server into a
// single lifecycle with flock-based locking to prevent multiple instances
// from sharing one spreadsheet.
package daemon
