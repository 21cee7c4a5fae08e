// Package server exposes the catalog and upload flows over HTTP. Public
// routes serve visitors read-only data plus download URLs; every mutating
// route lives under /admin/api and sits behind Basic Auth. Responses use a
// uniform success/error envelope and error messages come from the service
// layer's user-facing text, never from raw error chains.
package server
