// Package server implements the MCP (Model Context Protocol) server for the
// minitools: color and unit conversion, image compression, text utilities,
// password generation and JSON and Base64 handling.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Color:
//   - color_parse: Parse hex/rgb/hsl and describe the color
//   - color_palette: Generate the 10-color palette
//   - color_history: Recently parsed colors
//   - color_sample, color_sample_multi: Pixel colors of an image file
//   - color_dominant: Most common colors of an image or region
//
// Units:
//   - unit_categories: Categories, units and quick conversions
//   - unit_convert: Convert a value, optionally in the reverse direction
//   - unit_history, unit_history_clear: Recent conversions
//
// Images:
//   - image_info: Dimensions, format and size
//   - image_compress: Fixed-quality or target-size re-encoding
//
// Text:
//   - text_analyze, text_history: Word counts, reading time, readability
//   - text_ocr: Text recognition with Tesseract, optionally within a named region
//   - text_format: Case changes, line cleanup, word count, URL encoding
//   - email_extract: Email addresses in text or a file, per-domain counts
//
// Passwords:
//   - password_generate: Random password, pattern or passphrase with strength
//   - password_strength: Rate an existing password
//   - password_history, password_history_clear: Recent passwords
//
// Data:
//   - json_format: Format, minify, sort, validate, escape, convert to YAML/XML/CSV
//   - base64_convert: Encode or decode text and files
//   - base64_history, base64_history_clear: Recent conversions
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors whose code depends on the
// error kind:
//   - -32602: malformed arguments or unknown tool
//   - -32001: invalid input (bad color, unknown unit, option out of range)
//   - -32002: exchange rates unavailable
//   - -32003: the encoder rejected the image or format
//   - -32000: any other failure (missing file, OCR engine unavailable)
//
// The data field carries the Go error string.
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger), server.WithRates(cache))
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal("server error", zap.Error(err))
//	}
package server
