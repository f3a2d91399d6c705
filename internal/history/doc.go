// Package history persists small per-tool histories such as recently used
// colors and recent unit conversions.
//
// A Store is a key/value backend holding JSON documents. Three backends are
// provided: in-memory (tests and ephemeral sessions), one JSON file per key
// in a directory, and Redis. List wraps a Store to give a typed, capped,
// newest-first list for one key.
package history
