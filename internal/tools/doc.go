// Package tools holds the stateful controllers behind the MCP tools and the
// CLI. Each controller pairs a pure core (color, units, compress, textstats,
// password, textfmt) with its history list and collaborators.
//
// Controllers are safe for concurrent use; all shared state lives in the
// history store and the image cache.
package tools
