// Package jsonfmt formats, minifies, validates and converts JSON documents.
//
// Formatting and minifying work on the raw bytes, so key order, number
// spelling and string escapes are kept. Conversions to YAML, XML and CSV go
// through an ordered document tree (see Parse) and also keep key order.
// SortKeys is the one operation that reorders.
package jsonfmt
