package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/color"
	"github.com/ironsheep/minitools-mcp/internal/errs"
	"github.com/ironsheep/minitools-mcp/internal/imaging"
	"github.com/ironsheep/minitools-mcp/internal/jsonfmt"
	"github.com/ironsheep/minitools-mcp/internal/password"
	"github.com/ironsheep/minitools-mcp/internal/textfmt"
	"github.com/ironsheep/minitools-mcp/internal/tools"
	"github.com/ironsheep/minitools-mcp/internal/units"
)

// JSON-RPC error codes returned by tools/call.
const (
	CodeInvalidParams    = -32602
	CodeToolFailed       = -32000
	CodeInvalidInput     = -32001
	CodeRatesUnavailable = -32002
	CodeEncodeFailure    = -32003
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "color_parse", "unit_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// paramsError marks malformed or missing tool arguments.
type paramsError struct {
	err error
}

func (e *paramsError) Error() string { return e.err.Error() }
func (e *paramsError) Unwrap() error { return e.err }

func badParams(format string, args ...interface{}) error {
	return &paramsError{err: fmt.Errorf(format, args...)}
}

// decodeArgs unmarshals tool arguments; empty arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return &paramsError{err: err}
	}
	return nil
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool errors map to a JSON-RPC error code by kind; see errorCode.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, CodeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(context.Background(), params.Name, params.Arguments)
	if err != nil {
		code, message := errorCode(err)
		s.logger.Debug("tool failed", zap.String("tool", params.Name), zap.Int("code", code), zap.Error(err))
		return s.errorResponse(req.ID, code, message, err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// errorCode maps an error to its JSON-RPC code and message.
func errorCode(err error) (int, string) {
	var pe *paramsError
	switch {
	case errors.As(err, &pe):
		return CodeInvalidParams, "Invalid params"
	case errors.Is(err, errs.ErrInvalidInput):
		return CodeInvalidInput, "Invalid input"
	case errors.Is(err, errs.ErrRatesUnavailable):
		return CodeRatesUnavailable, "Exchange rates unavailable"
	case errors.Is(err, errs.ErrEncodeFailure):
		return CodeEncodeFailure, "Encoding failed"
	}
	return CodeToolFailed, "Tool execution failed"
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Color Operations
	case "color_parse":
		return s.handleColorParse(ctx, args)
	case "color_palette":
		return s.handleColorPalette(args)
	case "color_history":
		return s.handleColorHistory(ctx)
	case "color_sample":
		return s.handleColorSample(args)
	case "color_sample_multi":
		return s.handleColorSampleMulti(args)
	case "color_dominant":
		return s.handleColorDominant(args)

	// Unit Operations
	case "unit_categories":
		return s.handleUnitCategories()
	case "unit_convert":
		return s.handleUnitConvert(ctx, args)
	case "unit_history":
		return s.handleUnitHistory(ctx)
	case "unit_history_clear":
		return s.handleUnitHistoryClear(ctx)

	// Image Operations
	case "image_info":
		return s.handleImageInfo(args)
	case "image_compress":
		return s.handleImageCompress(args)

	// Text Operations
	case "text_analyze":
		return s.handleTextAnalyze(ctx, args)
	case "text_history":
		return s.handleTextHistory(ctx)
	case "text_ocr":
		return s.handleTextOCR(args)
	case "text_format":
		return s.handleTextFormat(args)
	case "email_extract":
		return s.handleEmailExtract(args)

	// Password Operations
	case "password_generate":
		return s.handlePasswordGenerate(ctx, args)
	case "password_strength":
		return s.handlePasswordStrength(args)
	case "password_history":
		return s.handlePasswordHistory(ctx)
	case "password_history_clear":
		return s.handlePasswordHistoryClear(ctx)

	// Data Operations
	case "json_format":
		return s.handleJSONFormat(args)
	case "base64_convert":
		return s.handleBase64Convert(ctx, args)
	case "base64_history":
		return s.handleBase64History(ctx)
	case "base64_history_clear":
		return s.handleBase64HistoryClear(ctx)

	default:
		return nil, badParams("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	mcpErr := &MCPError{
		Code:    code,
		Message: message,
	}
	if data != "" {
		mcpErr.Data = data
	}
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   mcpErr,
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Color Handlers ===

type colorInputArgs struct {
	Input string `json:"input"`
}

func (s *Server) handleColorParse(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a colorInputArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.colors.Apply(ctx, a.Input)
}

func (s *Server) handleColorPalette(args json.RawMessage) (interface{}, error) {
	var a colorInputArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.colors.Palette(a.Input)
}

func (s *Server) handleColorHistory(ctx context.Context) (interface{}, error) {
	colors, err := s.colors.History(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": colors, "count": len(colors)}, nil
}

type colorSampleArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleColorSample(args json.RawMessage) (interface{}, error) {
	var a colorSampleArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return color.SampleAt(img, a.X, a.Y)
}

type colorSampleMultiArgs struct {
	Path   string `json:"path"`
	Points []struct {
		X     int    `json:"x"`
		Y     int    `json:"y"`
		Label string `json:"label,omitempty"`
	} `json:"points"`
}

func (s *Server) handleColorSampleMulti(args json.RawMessage) (interface{}, error) {
	var a colorSampleMultiArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	points := make([]color.LabeledPoint, len(a.Points))
	for i, p := range a.Points {
		points[i] = color.LabeledPoint{X: p.X, Y: p.Y, Label: p.Label}
	}
	return color.SampleMulti(img, points)
}

type colorDominantArgs struct {
	Path   string `json:"path"`
	Count  int    `json:"count"`
	Region *struct {
		X1 int `json:"x1"`
		Y1 int `json:"y1"`
		X2 int `json:"x2"`
		Y2 int `json:"y2"`
	} `json:"region,omitempty"`
}

func (s *Server) handleColorDominant(args json.RawMessage) (interface{}, error) {
	var a colorDominantArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	var region *color.Region
	if a.Region != nil {
		region = &color.Region{X1: a.Region.X1, Y1: a.Region.Y1, X2: a.Region.X2, Y2: a.Region.Y2}
	}
	return color.Dominant(img, a.Count, region)
}

// === Unit Handlers ===

func (s *Server) handleUnitCategories() (interface{}, error) {
	return map[string]interface{}{
		"categories":        s.converter.Categories(),
		"quick_conversions": units.QuickConversions(),
	}, nil
}

type unitConvertArgs struct {
	Value    *float64 `json:"value"`
	Category string   `json:"category"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Swap     bool     `json:"swap"`
}

func (s *Server) handleUnitConvert(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a unitConvertArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Value == nil {
		return nil, badParams("value is required")
	}
	if a.Swap {
		return s.converter.Swap(ctx, *a.Value, a.Category, a.From, a.To)
	}
	return s.converter.Convert(ctx, *a.Value, a.Category, a.From, a.To)
}

func (s *Server) handleUnitHistory(ctx context.Context) (interface{}, error) {
	records, err := s.converter.History(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"conversions": records, "count": len(records)}, nil
}

func (s *Server) handleUnitHistoryClear(ctx context.Context) (interface{}, error) {
	if err := s.converter.Clear(ctx); err != nil {
		return nil, err
	}
	return map[string]interface{}{"cleared": true}, nil
}

// === Image Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type imageCompressArgs struct {
	Path       string   `json:"path"`
	Quality    float64  `json:"quality"`
	TargetKB   *float64 `json:"target_kb"`
	Format     string   `json:"format"`
	MaxWidth   int      `json:"max_width"`
	MaxHeight  int      `json:"max_height"`
	OutputPath string   `json:"output_path"`
}

type imageCompressResult struct {
	*tools.CompressOutput
	OutputPath string `json:"output_path,omitempty"`
	Data       string `json:"data,omitempty"` // base64 when no output_path is given
}

func (s *Server) handleImageCompress(args json.RawMessage) (interface{}, error) {
	var a imageCompressArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	out, err := s.images.Compress(tools.CompressRequest{
		Path:         a.Path,
		Quality:      a.Quality,
		TargetSizeKB: a.TargetKB,
		Format:       a.Format,
		MaxWidth:     a.MaxWidth,
		MaxHeight:    a.MaxHeight,
	})
	if err != nil {
		return nil, err
	}

	res := &imageCompressResult{CompressOutput: out}
	if a.OutputPath == "" {
		res.Data = base64.StdEncoding.EncodeToString(out.Bytes)
		return res, nil
	}
	if err := os.WriteFile(a.OutputPath, out.Bytes, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	res.OutputPath = a.OutputPath
	return res, nil
}

// === Text Handlers ===

type textAnalyzeArgs struct {
	Text string `json:"text"`
	Tidy bool   `json:"tidy"`
}

func (s *Server) handleTextAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a textAnalyzeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.text.Analyze(ctx, a.Text, a.Tidy)
}

func (s *Server) handleTextHistory(ctx context.Context) (interface{}, error) {
	entries, err := s.text.History(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"texts": entries, "count": len(entries)}, nil
}

type textOCRArgs struct {
	Path   string `json:"path"`
	Words  bool   `json:"words"`
	Region string `json:"region"`
}

func (s *Server) handleTextOCR(args json.RawMessage) (interface{}, error) {
	var a textOCRArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.text.Recognize(a.Path, a.Words, a.Region)
}

type textFormatArgs struct {
	Text   string `json:"text"`
	Action string `json:"action"`
}

func (s *Server) handleTextFormat(args json.RawMessage) (interface{}, error) {
	var a textFormatArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Action == "" {
		return nil, badParams("action is required")
	}
	out, err := textfmt.Apply(a.Text, textfmt.Action(a.Action))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"action": a.Action, "output": out}, nil
}

type emailExtractArgs struct {
	Text     string `json:"text"`
	Path     string `json:"path"`
	Dedupe   *bool  `json:"dedupe"`
	Validate *bool  `json:"validate"`
	Sort     bool   `json:"sort"`
}

func (s *Server) handleEmailExtract(args json.RawMessage) (interface{}, error) {
	var a emailExtractArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	text := a.Text
	switch {
	case a.Text != "" && a.Path != "":
		return nil, badParams("give either text or path, not both")
	case a.Path != "":
		data, err := os.ReadFile(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", a.Path, err)
		}
		text = string(data)
	case a.Text == "":
		return nil, badParams("text or path is required")
	}

	return textfmt.ExtractEmails(text, textfmt.EmailOptions{
		Dedupe:   a.Dedupe == nil || *a.Dedupe,
		Validate: a.Validate == nil || *a.Validate,
		Sort:     a.Sort,
	}), nil
}

// === Password Handlers ===

type passwordGenerateArgs struct {
	Mode             string  `json:"mode"`
	Length           int     `json:"length"`
	Uppercase        *bool   `json:"uppercase"`
	Lowercase        *bool   `json:"lowercase"`
	Numbers          *bool   `json:"numbers"`
	Symbols          *bool   `json:"symbols"`
	ExcludeSimilar   bool    `json:"exclude_similar"`
	ExcludeAmbiguous bool    `json:"exclude_ambiguous"`
	Pattern          string  `json:"pattern"`
	Words            int     `json:"words"`
	Separator        *string `json:"separator"`
	NoHistory        bool    `json:"no_history"`
}

// enabled reads an optional flag that defaults to on.
func enabled(b *bool) bool {
	return b == nil || *b
}

func (s *Server) handlePasswordGenerate(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a passwordGenerateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}

	req := tools.PasswordRequest{
		Words:     a.Words,
		Separator: a.Separator,
		NoHistory: a.NoHistory,
	}
	switch a.Mode {
	case "", tools.KindPassword:
		if a.Length == 0 {
			a.Length = password.DefaultLength
		}
		req.Options = password.Options{
			Length:           a.Length,
			Upper:            enabled(a.Uppercase),
			Lower:            enabled(a.Lowercase),
			Digits:           enabled(a.Numbers),
			Symbols:          enabled(a.Symbols),
			ExcludeSimilar:   a.ExcludeSimilar,
			ExcludeAmbiguous: a.ExcludeAmbiguous,
			Pattern:          a.Pattern,
		}
	case tools.KindPassphrase:
		req.Passphrase = true
	default:
		return nil, badParams("mode must be %q or %q, got %q", tools.KindPassword, tools.KindPassphrase, a.Mode)
	}
	return s.passwords.Generate(ctx, req)
}

type passwordStrengthArgs struct {
	Password string `json:"password"`
}

func (s *Server) handlePasswordStrength(args json.RawMessage) (interface{}, error) {
	var a passwordStrengthArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Password == "" {
		return nil, badParams("password is required")
	}
	return s.passwords.Strength(a.Password), nil
}

func (s *Server) handlePasswordHistory(ctx context.Context) (interface{}, error) {
	records, err := s.passwords.History(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"passwords": records, "count": len(records)}, nil
}

func (s *Server) handlePasswordHistoryClear(ctx context.Context) (interface{}, error) {
	if err := s.passwords.Clear(ctx); err != nil {
		return nil, err
	}
	return map[string]interface{}{"cleared": true}, nil
}

// === Data Handlers ===

// JSON actions accepted by json_format.
const (
	jsonFormat   = "format"
	jsonMinify   = "minify"
	jsonSort     = "sort"
	jsonValidate = "validate"
	jsonStats    = "stats"
	jsonEscape   = "escape"
	jsonUnescape = "unescape"
	jsonYAML     = "yaml"
	jsonXML      = "xml"
	jsonCSV      = "csv"
)

type jsonFormatArgs struct {
	Input  string `json:"input"`
	Action string `json:"action"`
	Indent int    `json:"indent"`
	Tabs   bool   `json:"tabs"`
	Root   string `json:"root"`
}

type jsonFormatResult struct {
	Action string         `json:"action"`
	Output string         `json:"output"`
	Stats  *jsonfmt.Stats `json:"stats,omitempty"`
}

func (s *Server) handleJSONFormat(args json.RawMessage) (interface{}, error) {
	var a jsonFormatArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Action == "" {
		a.Action = jsonFormat
	}
	indent, err := jsonfmt.Indent(a.Indent, a.Tabs)
	if err != nil {
		return nil, err
	}

	var out string
	switch a.Action {
	case jsonValidate:
		return jsonfmt.Validate(a.Input), nil
	case jsonStats:
		return jsonfmt.Analyze(a.Input)
	case jsonEscape:
		return &jsonFormatResult{Action: a.Action, Output: jsonfmt.Escape(a.Input)}, nil
	case jsonFormat:
		out, err = jsonfmt.Format(a.Input, indent)
	case jsonMinify:
		out, err = jsonfmt.Minify(a.Input)
	case jsonSort:
		out, err = jsonfmt.SortKeys(a.Input, indent)
	case jsonUnescape:
		out, err = jsonfmt.Unescape(a.Input)
	case jsonYAML:
		out, err = jsonfmt.ToYAML(a.Input)
	case jsonXML:
		out, err = jsonfmt.ToXML(a.Input, a.Root)
	case jsonCSV:
		out, err = jsonfmt.ToCSV(a.Input)
	default:
		return nil, badParams("unknown action: %s", a.Action)
	}
	if err != nil {
		return nil, err
	}

	res := &jsonFormatResult{Action: a.Action, Output: out}
	switch a.Action {
	case jsonFormat, jsonMinify, jsonSort:
		if res.Stats, err = jsonfmt.Analyze(out); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type base64ConvertArgs struct {
	Text       string `json:"text"`
	Path       string `json:"path"`
	Decode     bool   `json:"decode"`
	URLSafe    bool   `json:"url_safe"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleBase64Convert(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a base64ConvertArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.codec.Convert(ctx, tools.Base64Request{
		Text:       a.Text,
		Path:       a.Path,
		OutputPath: a.OutputPath,
		Decode:     a.Decode,
		URLSafe:    a.URLSafe,
	})
}

func (s *Server) handleBase64History(ctx context.Context) (interface{}, error) {
	records, err := s.codec.History(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"conversions": records, "count": len(records)}, nil
}

func (s *Server) handleBase64HistoryClear(ctx context.Context) (interface{}, error) {
	if err := s.codec.Clear(ctx); err != nil {
		return nil, err
	}
	return map[string]interface{}{"cleared": true}, nil
}
