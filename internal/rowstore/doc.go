// Package rowstore treats named sheets as 2-D tables of string cells: row 0
// is the header, columns are positional, and ranges use A1 notation. It is
// the persistence boundary for the catalog repositories.
//
// Two backends implement Store. The Google Sheets backend is the production
// row store. The SQLite backend keeps identical positional semantics in a
// local file so development and tests run without Google credentials.
//
// All typing and validity decisions live with the consumer; this package
// moves raw cells only.
package rowstore
