package lsp

import (
	"context"
	"strings"

	"github.com/leapstack-labs/avrlint/pkg/gccdiag"
	"github.com/leapstack-labs/avrlint/pkg/linter"
)

// DiagnosticSource tags every diagnostic the server publishes.
const DiagnosticSource = "avr-gcc"

// scheduleLint starts a lint run for uri, cancelling any run still in
// flight for the same document.
func (s *Server) scheduleLint(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil || s.isShutdown() {
		return
	}

	lang := doc.Language()
	if lang == linter.LanguageUnknown {
		s.logger.Debug("Skipping document with unknown language", "uri", uri, "language", doc.LanguageID)
		return
	}

	s.lintMu.Lock()
	if cancel, ok := s.running[uri]; ok {
		cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.running[uri] = cancel
	s.lintWG.Add(1)
	s.lintMu.Unlock()

	go func() {
		defer s.lintWG.Done()
		defer cancel()
		s.lintDocument(ctx, doc, lang)
	}()
}

// cancelLint stops the lint run for uri, if any.
func (s *Server) cancelLint(uri string) {
	s.lintMu.Lock()
	defer s.lintMu.Unlock()

	if cancel, ok := s.running[uri]; ok {
		cancel()
		delete(s.running, uri)
	}
}

// stopLinting cancels every run and waits for them to return.
func (s *Server) stopLinting() {
	s.cancel()
	s.lintWG.Wait()
}

// waitForLint blocks until every scheduled lint run has finished.
func (s *Server) waitForLint() {
	s.lintWG.Wait()
}

// lintDocument runs the compiler on a snapshot of the document and
// publishes the result if the document has not changed in the meantime.
func (s *Server) lintDocument(ctx context.Context, doc *Document, lang linter.Language) {
	h := s.newHost(URIToPath(doc.URI))

	res, err := linter.New(h, s.logger).Lint(ctx, lang, strings.NewReader(doc.Content))
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		s.logger.Warn("Lint failed", "uri", doc.URI, "error", err)
		s.reportHostError(err)
		return
	}

	current := s.documents.Get(doc.URI)
	if current == nil || current.Version != doc.Version {
		s.logger.Debug("Dropping stale diagnostics", "uri", doc.URI, "version", doc.Version)
		return
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &version,
		Diagnostics: toLSPDiagnostics(doc, res.Diagnostics),
	})
}

// reportHostError tells the user once per session that the compiler
// could not be run.
func (s *Server) reportHostError(err error) {
	s.lintMu.Lock()
	reported := s.hostErrReported
	s.hostErrReported = true
	s.lintMu.Unlock()

	if !reported {
		s.showMessage(MessageTypeError, "avrlint: "+err.Error())
	}
}

// toLSPDiagnostics converts compiler diagnostics to LSP diagnostics for doc.
func toLSPDiagnostics(doc *Document, diags []gccdiag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		out = append(out, toLSPDiagnostic(doc, d))
	}
	return out
}

// toLSPDiagnostic maps a one-based compiler location onto a zero-based
// range that runs from the column to the end of the line.
func toLSPDiagnostic(doc *Document, d gccdiag.Diagnostic) Diagnostic {
	line := d.Line - 1
	if n := doc.LineCount(); line >= n && n > 0 {
		line = n - 1
	}
	if line < 0 {
		line = 0
	}

	char := 0
	if d.Column != nil && *d.Column > 0 {
		char = *d.Column - 1
	}
	end := doc.LineLength(line)
	if end < char {
		end = char
	}

	return Diagnostic{
		Range: Range{
			Start: Position{Line: uint32(line), Character: uint32(char)},
			End:   Position{Line: uint32(line), Character: uint32(end)},
		},
		Severity: severityToLSP(d.Severity),
		Source:   DiagnosticSource,
		Message:  d.Message,
	}
}

func severityToLSP(sev gccdiag.Severity) DiagnosticSeverity {
	switch sev {
	case gccdiag.SeverityError:
		return DiagnosticSeverityError
	case gccdiag.SeverityWarning:
		return DiagnosticSeverityWarning
	default:
		return DiagnosticSeverityInformation
	}
}
