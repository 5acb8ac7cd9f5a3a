package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/avrlint/pkg/gccdiag"
)

func intPtr(v int) *int { return &v }

func TestToLSPDiagnostic(t *testing.T) {
	doc := &Document{Content: "void setup() {\n  pinMod(13, OUTPUT);\r\n}\n"}
	doc.Lines = computeLineOffsets(doc.Content)

	tests := []struct {
		name  string
		diag  gccdiag.Diagnostic
		start Position
		end   Position
		sev   DiagnosticSeverity
	}{
		{
			name:  "column to end of line",
			diag:  gccdiag.Diagnostic{Line: 2, Column: intPtr(3), Severity: gccdiag.SeverityError, Message: "'pinMod' was not declared in this scope"},
			start: Position{Line: 1, Character: 2},
			end:   Position{Line: 1, Character: 21},
			sev:   DiagnosticSeverityError,
		},
		{
			name:  "no column covers the whole line",
			diag:  gccdiag.Diagnostic{Line: 1, Severity: gccdiag.SeverityWarning, Message: "w"},
			start: Position{Line: 0, Character: 0},
			end:   Position{Line: 0, Character: 14},
			sev:   DiagnosticSeverityWarning,
		},
		{
			name:  "column past the end of the line",
			diag:  gccdiag.Diagnostic{Line: 3, Column: intPtr(9), Severity: gccdiag.SeverityNote, Message: "n"},
			start: Position{Line: 2, Character: 8},
			end:   Position{Line: 2, Character: 8},
			sev:   DiagnosticSeverityInformation,
		},
		{
			name:  "line zero clamps to the first line",
			diag:  gccdiag.Diagnostic{Line: 0, Column: intPtr(0), Severity: gccdiag.SeverityError, Message: "e"},
			start: Position{Line: 0, Character: 0},
			end:   Position{Line: 0, Character: 14},
			sev:   DiagnosticSeverityError,
		},
		{
			name:  "line past the end clamps to the last line",
			diag:  gccdiag.Diagnostic{Line: 40, Severity: gccdiag.SeverityError, Message: "e"},
			start: Position{Line: 3, Character: 0},
			end:   Position{Line: 3, Character: 0},
			sev:   DiagnosticSeverityError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLSPDiagnostic(doc, tt.diag)
			assert.Equal(t, Range{Start: tt.start, End: tt.end}, got.Range)
			assert.Equal(t, tt.sev, got.Severity)
			assert.Equal(t, DiagnosticSource, got.Source)
			assert.Equal(t, tt.diag.Message, got.Message)
		})
	}
}

func TestToLSPDiagnostics_Empty(t *testing.T) {
	got := toLSPDiagnostics(&Document{}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
