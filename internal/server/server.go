package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/imaging"
	"github.com/ironsheep/minitools-mcp/internal/ocr"
	"github.com/ironsheep/minitools-mcp/internal/tools"
	"github.com/ironsheep/minitools-mcp/internal/units"
)

// Name is reported as serverInfo.name during initialize.
const Name = "minitools-mcp"

// Server handles MCP protocol communication
type Server struct {
	cache     *imaging.ImageCache
	colors    *tools.ColorTool
	converter *tools.ConverterTool
	images    *tools.CompressTool
	text      *tools.TextTool
	passwords *tools.PasswordTool
	codec     *tools.Base64Tool
	logger    *zap.Logger
	version   string
	in        io.Reader
	out       io.Writer
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Option configures a Server.
type Option func(*options)

type options struct {
	store            history.Store
	historyLimit     int
	rates            units.RateProvider
	recognizer       ocr.Recognizer
	compressDefaults tools.CompressDefaults
	logger           *zap.Logger
	version          string
	in               io.Reader
	out              io.Writer
}

// WithHistory sets the store and per-list limit used for tool history.
func WithHistory(store history.Store, limit int) Option {
	return func(o *options) {
		o.store = store
		o.historyLimit = limit
	}
}

// WithRates sets the exchange-rate provider for currency conversions.
func WithRates(p units.RateProvider) Option {
	return func(o *options) { o.rates = p }
}

// WithRecognizer sets the OCR engine used by text_ocr.
func WithRecognizer(r ocr.Recognizer) Option {
	return func(o *options) { o.recognizer = r }
}

// WithCompressDefaults sets the defaults for image_compress.
func WithCompressDefaults(d tools.CompressDefaults) Option {
	return func(o *options) { o.compressDefaults = d }
}

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithVersion sets the version reported during initialize.
func WithVersion(v string) Option {
	return func(o *options) { o.version = v }
}

// WithIO replaces stdin/stdout as the protocol stream.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(o *options) {
		o.in = in
		o.out = out
	}
}

// New creates a new MCP server instance. Without options it keeps history
// in memory, has no exchange rates and recognizes English text.
func New(opts ...Option) *Server {
	o := options{
		historyLimit:     history.DefaultLimit,
		recognizer:       ocr.NewTesseract(ocr.DefaultLanguage),
		compressDefaults: tools.CompressDefaults{Quality: 0.8, Format: tools.FormatOriginal},
		version:          "dev",
		in:               os.Stdin,
		out:              os.Stdout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = history.NewMemoryStore()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	var convOpts []units.Option
	if o.rates != nil {
		convOpts = append(convOpts, units.WithRates(o.rates))
	}

	cache := imaging.NewImageCache()
	return &Server{
		cache:     cache,
		colors:    tools.NewColorTool(o.store, o.historyLimit),
		converter: tools.NewConverterTool(units.New(convOpts...), o.store, o.historyLimit),
		images:    tools.NewCompressTool(cache, o.compressDefaults),
		text:      tools.NewTextTool(o.store, o.historyLimit, o.recognizer, cache),
		passwords: tools.NewPasswordTool(o.store, o.historyLimit, nil),
		codec:     tools.NewBase64Tool(o.store, o.historyLimit),
		logger:    o.logger,
		version:   o.version,
		in:        o.in,
		out:       o.out,
	}
}

// Run reads requests line by line and writes responses until the input
// closes or ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lines := make(chan []byte)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		// Increase buffer size for large requests
		buf := make([]byte, 0, 64*1024)
		scanner.Buffer(buf, 16*1024*1024)
		for scanner.Scan() {
			line := append([]byte(nil), scanner.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	encoder := json.NewEncoder(s.out)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("server stopping", zap.Error(ctx.Err()))
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("scanner error: %w", err)
					}
				default:
				}
				return nil
			}
			if len(line) == 0 {
				continue
			}

			var req MCPRequest
			if err := json.Unmarshal(line, &req); err != nil {
				s.logger.Warn("failed to parse request", zap.Error(err))
				if err := encoder.Encode(s.errorResponse(nil, -32700, "Parse error", err.Error())); err != nil {
					s.logger.Error("failed to encode response", zap.Error(err))
				}
				continue
			}

			resp := s.handleRequest(&req)
			if resp != nil {
				if err := encoder.Encode(resp); err != nil {
					s.logger.Error("failed to encode response", zap.Error(err))
				}
			}
		}
	}
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.logger.Debug("request", zap.String("method", req.Method), zap.Any("id", req.ID))

	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		// Client acknowledgment, no response needed
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		if req.ID == nil {
			// Unknown notifications are ignored
			return nil
		}
		return s.errorResponse(req.ID, -32601, fmt.Sprintf("Method not found: %s", req.Method), "")
	}
}

// handleInitialize responds to the initialize request
func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    Name,
				"version": s.version,
			},
		},
	}
}

// handleToolsList returns every tool definition.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
