// Package uploads orchestrates how video files and their catalog rows move
// together. Metadata is only written after the bytes are verifiably in object
// storage: presigned flows re-check existence server side before creating
// rows, and the bulk gate is all-or-nothing. Object deletes are best effort
// and never block a metadata write.
package uploads
