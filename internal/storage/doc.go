// Package storage wraps the S3-compatible object store holding the video
// files. Keys are video filenames, normalized to NFC before use so the same
// Unicode name always addresses the same object regardless of how the
// uploading client composed it.
package storage
