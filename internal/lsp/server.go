package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/leapstack-labs/avrlint/internal/config"
	"github.com/leapstack-labs/avrlint/internal/host"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// ServerName is reported to the client in the initialize response.
const ServerName = "avrlint"

// ErrExitWithoutShutdown is returned by Run when the client sends exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

// HostFactory returns the host used to lint the file at activePath.
type HostFactory func(activePath string) linter.Host

// Server implements the Language Server Protocol for avrlint.
type Server struct {
	documents *DocumentStore

	// Project context
	projectRoot string
	initialized bool

	// Settings loaded from the workspace config file
	settings    linter.Settings
	projectFile string
	settingsMu  sync.RWMutex

	newHost HostFactory

	// In-flight lint runs, one per document
	ctx     context.Context
	cancel  context.CancelFunc
	running map[string]context.CancelFunc
	lintMu  sync.Mutex
	lintWG  sync.WaitGroup

	hostErrReported bool

	// I/O
	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// Shutdown state
	shutdown   bool
	shutdownMu sync.RWMutex
}

// NewServer creates a new LSP server instance.
func NewServer(reader io.Reader, writer io.Writer) *Server {
	return NewServerWithLogger(reader, writer, nil)
}

// NewServerWithLogger creates a new LSP server instance with a custom logger.
func NewServerWithLogger(reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		documents: NewDocumentStore(),
		settings:  linter.DefaultSettings(),
		ctx:       ctx,
		cancel:    cancel,
		running:   make(map[string]context.CancelFunc),
		reader:    bufio.NewReader(reader),
		writer:    writer,
		logger:    logger,
	}
	s.newHost = s.execHost
	return s
}

// Run starts the server's main loop, processing JSON-RPC messages until the
// client sends exit or closes the stream.
func (s *Server) Run() error {
	s.logger.Info("avrlint LSP server starting...")
	defer s.stopLinting()

	for {
		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("Client disconnected")
				return nil
			}
			s.logger.Error("Error reading message", "error", err)
			continue
		}

		if msg.Method == "exit" {
			s.logger.Info("Server exit")
			if !s.isShutdown() {
				return ErrExitWithoutShutdown
			}
			return nil
		}

		if err := s.handleMessage(msg); err != nil {
			s.logger.Error("Error handling message", "error", err)
		}
	}
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

// JSON-RPC error codes.
const (
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

// readMessage reads a JSON-RPC message from the input stream.
func (s *Server) readMessage() (*JSONRPCMessage, error) {
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
		return nil, errors.New("missing Content-Length header")
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, body); err != nil {
		return nil, fmt.Errorf("error reading body: %w", err)
	}

	var msg JSONRPCMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("error parsing message: %w", err)
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

func (s *Server) showMessage(typ MessageType, text string) {
	s.sendNotification("window/showMessage", &ShowMessageParams{Type: typ, Message: text})
}

// writeMessage writes a JSON-RPC message to the output stream.
func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("Error marshaling message", "error", err)
		return
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(body))
	_, _ = s.writer.Write([]byte(header))
	_, _ = s.writer.Write(body)
}

// handleMessage dispatches a message to the appropriate handler.
func (s *Server) handleMessage(msg *JSONRPCMessage) error {
	s.logger.Debug("Received", "method", msg.Method)

	if s.isShutdown() && msg.ID != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{
			Code:    codeInvalidRequest,
			Message: "server is shutting down",
		})
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return s.handleInitialized(msg)
	case "shutdown":
		return s.handleShutdown(msg)
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	default:
		if msg.ID != nil {
			s.sendResponse(msg.ID, nil, &JSONRPCError{
				Code:    codeMethodNotFound,
				Message: "Method not found: " + msg.Method,
			})
		}
		return nil
	}
}

func (s *Server) isShutdown() bool {
	s.shutdownMu.RLock()
	defer s.shutdownMu.RUnlock()
	return s.shutdown
}

// --- Lifecycle handlers ---

func (s *Server) handleInitialize(msg *JSONRPCMessage) error {
	var params InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: codeInvalidParams, Message: err.Error()})
		return err
	}

	switch {
	case params.RootURI != "":
		s.projectRoot = URIToPath(params.RootURI)
	case params.RootPath != nil:
		s.projectRoot = *params.RootPath
	}
	s.logger.Info("Project root", "path", s.projectRoot)

	s.loadSettings()

	result := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: &TextDocumentSyncOptions{
				OpenClose: true,
				Change:    TextDocumentSyncKindFull,
				Save:      &SaveOptions{},
			},
		},
		ServerInfo: &ServerInfo{Name: ServerName},
	}

	s.sendResponse(msg.ID, result, nil)
	return nil
}

func (s *Server) handleInitialized(_ *JSONRPCMessage) error {
	s.initialized = true
	s.logger.Info("Server initialized")

	s.settingsMu.RLock()
	projectFile := s.projectFile
	s.settingsMu.RUnlock()

	if projectFile == "" {
		s.showMessage(MessageTypeWarning, fmt.Sprintf(
			"No %s found in the workspace. Using default settings; run 'avrlint init' to configure the board and Arduino root.",
			config.ConfigFileName))
	}
	return nil
}

func (s *Server) handleShutdown(msg *JSONRPCMessage) error {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.stopLinting()

	s.sendResponse(msg.ID, nil, nil)
	s.logger.Info("Server shutdown")
	return nil
}

// --- Document handlers ---

func (s *Server) handleDidOpen(msg *JSONRPCMessage) error {
	var params DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	item := params.TextDocument
	s.documents.Open(item.URI, item.LanguageID, item.Text, item.Version)
	s.logger.Info("Opened", "uri", item.URI, "language", item.LanguageID)

	s.scheduleLint(item.URI)
	return nil
}

func (s *Server) handleDidClose(msg *JSONRPCMessage) error {
	var params DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	uri := params.TextDocument.URI
	s.cancelLint(uri)
	s.documents.Close(uri)
	s.logger.Info("Closed", "uri", uri)

	// Clear diagnostics
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
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
	if len(params.ContentChanges) > 0 {
		lastChange := params.ContentChanges[len(params.ContentChanges)-1]
		s.documents.Update(params.TextDocument.URI, lastChange.Text, params.TextDocument.Version)
	}

	s.scheduleLint(params.TextDocument.URI)
	return nil
}

func (s *Server) handleDidSave(msg *JSONRPCMessage) error {
	var params DidSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return err
	}

	path := URIToPath(params.TextDocument.URI)
	s.logger.Debug("Saved", "path", path)

	// Settings changed: reload and re-check everything that is open
	if name := filepath.Base(path); name == config.ConfigFileName || name == config.ConfigFileNameAlt {
		s.loadSettings()
		s.lintMu.Lock()
		s.hostErrReported = false
		s.lintMu.Unlock()
		for _, uri := range s.documents.List() {
			s.scheduleLint(uri)
		}
	}
	return nil
}

// --- Settings ---

// loadSettings reads the config file of the project enclosing the workspace
// root, falling back to defaults.
func (s *Server) loadSettings() {
	settings := linter.DefaultSettings()
	projectFile := ""

	if s.projectRoot != "" {
		project, err := config.LoadNearest(s.projectRoot)
		switch {
		case err != nil:
			s.logger.Warn("Failed to load project config", "root", s.projectRoot, "error", err)
			s.showMessage(MessageTypeError, "avrlint: "+err.Error())
		case project != nil:
			settings = project.Settings
			projectFile = project.File
			s.logger.Info("Loaded project config", "file", project.File, "board", settings.Board)
		}
	}

	s.settingsMu.Lock()
	s.settings = settings
	s.projectFile = projectFile
	s.settingsMu.Unlock()
}

// execHost is the default HostFactory: it runs the real compiler with the
// workspace settings.
func (s *Server) execHost(activePath string) linter.Host {
	s.settingsMu.RLock()
	defer s.settingsMu.RUnlock()

	// Unsaved buffers have no folder to fall back on.
	if _, err := os.Stat(activePath); err != nil {
		activePath = ""
	}
	return host.New(host.Options{
		Settings:    s.settings,
		ProjectFile: s.projectFile,
		ActiveFile:  activePath,
		Logger:      s.logger,
	})
}
