package server

import (
	"github.com/ironsheep/minitools-mcp/internal/imaging"
	"github.com/ironsheep/minitools-mcp/internal/jsonfmt"
	"github.com/ironsheep/minitools-mcp/internal/password"
	"github.com/ironsheep/minitools-mcp/internal/textfmt"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Color Operations
		{
			Name:        "color_parse",
			Description: "Parse a color in hex (#abc, #aabbcc), rgb(r, g, b) or hsl(h, s%, l%) notation and return it in every notation. The color is added to the color history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input": map[string]interface{}{
						"type":        "string",
						"description": "Color string, e.g. \"#4361ee\", \"rgb(67, 97, 238)\" or \"hsl(229, 83%, 60%)\"",
					},
				},
				"required": []string{"input"},
			},
		},
		{
			Name:        "color_palette",
			Description: "Generate a 10-color palette for a base color: four lightness variants, four analogous hues and the complementary hue.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input": map[string]interface{}{
						"type":        "string",
						"description": "Base color in hex, rgb() or hsl() notation",
					},
				},
				"required": []string{"input"},
			},
		},
		{
			Name:        "color_history",
			Description: "List recently parsed colors, newest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "color_sample",
			Description: "Get the exact color value at a specific pixel coordinate of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "color_sample_multi",
			Description: "Sample colors at multiple labeled points in one call.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"points": map[string]interface{}{
						"type":        "array",
						"description": "Points to sample",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x":     map[string]interface{}{"type": "integer"},
								"y":     map[string]interface{}{"type": "integer"},
								"label": map[string]interface{}{"type": "string"},
							},
							"required": []string{"x", "y"},
						},
					},
				},
				"required": []string{"path", "points"},
			},
		},
		{
			Name:        "color_dominant",
			Description: "Extract the most common colors of an image or region. Colors within 16 units per channel are grouped.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Optional region to analyze",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
				},
				"required": []string{"path"},
			},
		},

		// Unit Operations
		{
			Name:        "unit_categories",
			Description: "List unit categories with their units, plus the common quick conversions.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "unit_convert",
			Description: "Convert a value between two units of the same category (length, weight, temperature, area, volume, speed, time, digital, currency). Conversions between different units are added to the conversion history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": map[string]interface{}{
						"type":        "number",
						"description": "Value to convert",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Category key, e.g. \"length\"",
					},
					"from": map[string]interface{}{
						"type":        "string",
						"description": "Source unit key, e.g. \"kilometer\"",
					},
					"to": map[string]interface{}{
						"type":        "string",
						"description": "Target unit key, e.g. \"mile\"",
					},
					"swap": map[string]interface{}{
						"type":        "boolean",
						"description": "Convert in the reverse direction (to -> from). Default false",
					},
				},
				"required": []string{"value", "category", "from", "to"},
			},
		},
		{
			Name:        "unit_history",
			Description: "List recent conversions, newest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "unit_history_clear",
			Description: "Clear the conversion history.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},

		// Image Operations
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_compress",
			Description: "Re-encode an image at a fixed quality, or search for the quality that best fits a target size. Returns base64 data unless output_path is given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image",
					},
					"quality": map[string]interface{}{
						"type":        "number",
						"description": "Quality from 0 to 1 for fixed-quality mode. Default from config",
					},
					"target_kb": map[string]interface{}{
						"type":        "number",
						"description": "Target size in KB; enables target-size mode when positive. 0 forces fixed-quality mode. Default from config",
					},
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Output format: jpeg, png, gif, tiff, bmp or original. Default original",
					},
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Optional maximum width; the image is downscaled to fit",
					},
					"max_height": map[string]interface{}{
						"type":        "integer",
						"description": "Optional maximum height; the image is downscaled to fit",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional path to write the result to",
					},
				},
				"required": []string{"path"},
			},
		},

		// Text Operations
		{
			Name:        "text_analyze",
			Description: "Count words, characters, sentences and paragraphs, estimate reading time, list top words and score readability (Flesch). Texts over 10 words are added to the text history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to analyze",
					},
					"tidy": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return the text with whitespace collapsed and one paragraph per sentence",
					},
				},
				"required": []string{"text"},
			},
		},
		{
			Name:        "text_history",
			Description: "List recently analyzed texts, newest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "text_ocr",
			Description: "Extract text from an image file using Tesseract OCR.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"words": map[string]interface{}{
						"type":        "boolean",
						"description": "Include word bounding boxes and confidence",
					},
					"region": map[string]interface{}{
						"type":        "string",
						"enum":        imaging.RegionNames,
						"description": "Only read this part of the image; word boxes stay in whole-image coordinates",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "text_format",
			Description: "Transform text: change case, trim, collapse whitespace, drop empty or duplicate lines, reverse, sort lines, count words or URL-encode.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to transform",
					},
					"action": map[string]interface{}{
						"type":        "string",
						"enum":        textActionNames(),
						"description": "Transformation to apply",
					},
				},
				"required": []string{"text", "action"},
			},
		},
		{
			Name:        "email_extract",
			Description: "Extract email addresses from text or a text file, with optional de-duplication, validation and sorting, and count them per domain.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to scan",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a text file to scan instead of text",
					},
					"dedupe": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop repeated addresses, ignoring case (default true)",
					},
					"validate": map[string]interface{}{
						"type":        "boolean",
						"description": "Drop addresses that are not valid (default true)",
					},
					"sort": map[string]interface{}{
						"type":        "boolean",
						"description": "Sort addresses alphabetically",
					},
				},
			},
		},
		{
			Name:        "password_generate",
			Description: "Generate a random password or a word passphrase and rate its strength. The result is added to the password history unless no_history is set.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"mode": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"password", "passphrase"},
						"description": "What to generate (default password)",
					},
					"length": map[string]interface{}{
						"type":        "integer",
						"minimum":     password.MinLength,
						"maximum":     password.MaxLength,
						"description": "Password length (default 16)",
					},
					"uppercase": map[string]interface{}{
						"type":        "boolean",
						"description": "Include uppercase letters (default true)",
					},
					"lowercase": map[string]interface{}{
						"type":        "boolean",
						"description": "Include lowercase letters (default true)",
					},
					"numbers": map[string]interface{}{
						"type":        "boolean",
						"description": "Include digits (default true)",
					},
					"symbols": map[string]interface{}{
						"type":        "boolean",
						"description": "Include symbols (default true)",
					},
					"exclude_similar": map[string]interface{}{
						"type":        "boolean",
						"description": "Leave out look-alike characters such as i, l, 1, o and 0",
					},
					"exclude_ambiguous": map[string]interface{}{
						"type":        "boolean",
						"description": "Leave out brackets, quotes and punctuation that are hard to type or read",
					},
					"pattern": map[string]interface{}{
						"type":        "string",
						"description": "Build the password from a pattern instead: C upper, c lower, V/v vowel, A letter, # digit, ! symbol, x letter or digit, * any; other characters are copied",
					},
					"words": map[string]interface{}{
						"type":        "integer",
						"minimum":     password.MinWords,
						"maximum":     password.MaxWords,
						"description": "Passphrase word count (default 4)",
					},
					"separator": map[string]interface{}{
						"type":        "string",
						"description": "Passphrase word separator (default \"-\")",
					},
					"no_history": map[string]interface{}{
						"type":        "boolean",
						"description": "Do not remember the generated password",
					},
				},
			},
		},
		{
			Name:        "password_strength",
			Description: "Rate the strength of an existing password.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"password": map[string]interface{}{
						"type":        "string",
						"description": "Password to rate",
					},
				},
				"required": []string{"password"},
			},
		},
		{
			Name:        "password_history",
			Description: "List recently generated passwords, newest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "password_history_clear",
			Description: "Clear the password history.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "json_format",
			Description: "Format, minify, sort, validate or analyze JSON, escape text as a JSON string, or convert JSON to YAML, XML or CSV.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"input": map[string]interface{}{
						"type":        "string",
						"description": "JSON document, or plain text for escape",
					},
					"action": map[string]interface{}{
						"type": "string",
						"enum": []string{
							jsonFormat, jsonMinify, jsonSort, jsonValidate, jsonStats,
							jsonEscape, jsonUnescape, jsonYAML, jsonXML, jsonCSV,
						},
						"description": "Operation to run (default format)",
					},
					"indent": map[string]interface{}{
						"type":        "integer",
						"minimum":     0,
						"maximum":     jsonfmt.MaxIndent,
						"description": "Spaces per level for format and sort (default 2)",
					},
					"tabs": map[string]interface{}{
						"type":        "boolean",
						"description": "Indent with tabs instead of spaces",
					},
					"root": map[string]interface{}{
						"type":        "string",
						"description": "Root element name for xml (default \"root\")",
					},
				},
				"required": []string{"input"},
			},
		},
		{
			Name:        "base64_convert",
			Description: "Encode text or a file to Base64, or decode Base64 back to text or to a file. The conversion is added to the Base64 history.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text to encode, or Base64 to decode",
					},
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to a file to read instead of text",
					},
					"decode": map[string]interface{}{
						"type":        "boolean",
						"description": "Decode instead of encode",
					},
					"url_safe": map[string]interface{}{
						"type":        "boolean",
						"description": "Use the URL-safe alphabet (- and _)",
					},
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Write the result to this file; required when decoded data is not text",
					},
				},
			},
		},
		{
			Name:        "base64_history",
			Description: "List recent Base64 conversions, newest first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "base64_history_clear",
			Description: "Clear the Base64 history.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

func textActionNames() []string {
	actions := textfmt.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return names
}
