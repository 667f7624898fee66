package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/leaplint/pkg/lint"
)

// JSON-RPC error codes.
const (
	codeParseError           = -32700
	codeInvalidParams        = -32602
	codeMethodNotFound       = -32601
	codeServerNotInitialized = -32002
	codeInvalidRequest       = -32600
)

// Server implements the Language Server Protocol for leaplint.
type Server struct {
	documents *DocumentStore
	linter    *lint.Linter

	// Project context
	projectRoot string
	initialized bool

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// Shutdown state
	shutdown bool
	exited   bool
}

// NewServer creates a new LSP server that lints documents with linter.
func NewServer(reader io.Reader, writer io.Writer, linter *lint.Linter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		documents: NewDocumentStore(),
		linter:    linter,
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
}

// Run processes JSON-RPC messages until the client sends exit, the input
// ends, or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("leaplint LSP server starting")

	for !s.exited {
		if err := ctx.Err(); err != nil {
			return nil
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Error("error reading message", "error", err)
			var perr *parseError
			if errors.As(err, &perr) {
				s.sendResponse(nil, nil, &JSONRPCError{Code: codeParseError, Message: perr.Error()})
			}
			continue
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("error handling message", "method", msg.Method, "error", err)
		}
	}
	return nil
}

// JSONRPCMessage represents a JSON-RPC 2.0 message.
type JSONRPCMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *JSONRPCError    `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC error.
type JSONRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// parseError is a message body that is not valid JSON.
type parseError struct{ err error }

func (e *parseError) Error() string { return "error parsing message: " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
	// Read headers
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}

		if name, value, ok := strings.Cut(line, ":"); ok && strings.EqualFold(name, "Content-Length") {
			contentLength, err = strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, &parseError{err: err}
	}

	return &msg, nil
}

// sendResponse sends a JSON-RPC response.
func (s *Server) sendResponse(id *json.RawMessage, result any, err *JSONRPCError) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
	}

	if err != nil {
		msg.Error = err
	} else {
		resultBytes, _ := json.Marshal(result)
		msg.Result = resultBytes
	}

	s.writeMessage(&msg)
}

// sendNotification sends a JSON-RPC notification (no ID).
func (s *Server) sendNotification(method string, params any) {
	msg := JSONRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
	}

	if params != nil {
		paramsBytes, _ := json.Marshal(params)
		msg.Params = paramsBytes
	}

	s.writeMessage(&msg)
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "exit":
		s.exited = true
		return nil
	}

	if !s.initialized {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeServerNotInitialized, Message: "server not initialized"})
		}
		return nil
	}
	if s.shutdown && msg.Method != "shutdown" {
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidRequest, Message: "server is shutting down"})
		}
		return nil
	}

	switch msg.Method {
	case "initialized":
		s.logger.Info("server initialized")
		return nil
	case "shutdown":
		s.shutdown = true
		s.sendResponse(msg.ID, nil, nil)
		return nil
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/codeAction":
		return s.handleCodeAction(msg)
	default:
		if msg.ID != nil {
			// Unknown method with ID - respond with method not found
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	s.projectRoot = URIToPath(params.RootURI)
	s.initialized = true
	s.logger.Info("project root", "path", s.projectRoot)

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
			},
			CompletionProvider: &CompletionOptions{
				TriggerCharacters: []string{" ", ","},
			},
			HoverProvider: true,
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []CodeActionKind{CodeActionKindQuickFix},
			},
		},
		ServerInfo: &ServerInfo{Name: "leaplint"},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	doc := s.documents.Open(params.TextDocument.URI, params.TextDocument.LanguageID, params.TextDocument.Text, params.TextDocument.Version)
	s.logger.Debug("opened", "uri", doc.URI)
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	s.documents.Close(params.TextDocument.URI)
	s.logger.Debug("closed", "uri", params.TextDocument.URI)

	// Clear diagnostics
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
	return nil
}

func (s *Server) handleDidChange(msg *JSONRPCMessage) error {
	var params DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	// We use full sync, so take the last change
	if len(params.ContentChanges) == 0 {
		return nil
	}
	lastChange := params.ContentChanges[len(params.ContentChanges)-1]
	doc := s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	if doc == nil {
		return fmt.Errorf("change for unopened document %s", params.TextDocument.URI)
	}
	s.publishDiagnostics(doc)
	return nil
}

func (s *Server) handleCompletion(msg *JSONRPCMessage) error {
	var params CompletionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	items := s.getCompletions(params)
	s.sendResponse(msg.ID, &CompletionList{Items: items}, nil)
	return nil
}

func (s *Server) handleHover(msg *JSONRPCMessage) error {
	var params HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	hover := s.getHover(params)
	if hover == nil {
		s.sendResponse(msg.ID, nil, nil)
		return nil
	}
	s.sendResponse(msg.ID, hover, nil)
	return nil
}
