// Package mysql implements read-only data access over a MySQL schema in which
// every base table is one stock symbol's news dataset. Tables and columns are
// unknown until runtime: the package discovers them through information_schema,
// memoizes the metadata for the process lifetime, and validates every
// caller-supplied identifier against that inventory before it is quoted into
// SQL text. Values are always bound, never interpolated.
package mysql
