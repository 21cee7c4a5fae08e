// Package config loads, normalizes, and validates clipvault configuration
// from TOML. Validation fails fast with descriptive per-field errors so
// missing spreadsheet or storage credentials surface at startup instead of
// on the first network call.
package config
