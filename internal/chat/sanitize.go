package chat

import (
	"strings"

	"github.com/studyloop/ai-tutor/internal/model"
)

// Recognized diagram grammar headers. Sanitized source always starts with
// exactly one of these.
const (
	headerFlowchart = "flowchart"
	headerSequence  = "sequenceDiagram"
	headerClass     = "classDiagram"
)

// defaultFlowchartHeader is prepended when no header is present and the
// declared type implies a flowchart
const defaultFlowchartHeader = "flowchart TD"

// SanitizeDiagram normalizes raw diagram source: code fences (with or
// without a language tag) are stripped, and if the cleaned source does not
// begin with a recognized grammar header, the header implied by kind is
// prepended. The operation is idempotent: sanitizing already-sanitized
// source returns it unchanged.
func SanitizeDiagram(source string, kind model.DiagramKind) string {
	cleaned := stripFences(source)
	if hasGrammarHeader(cleaned) {
		return cleaned
	}

	var header string
	switch kind {
	case model.DiagramSequence:
		header = headerSequence
	case model.DiagramClass:
		header = headerClass
	default:
		header = defaultFlowchartHeader
	}
	if cleaned == "" {
		return header
	}
	return header + "\n" + cleaned
}

// stripFences removes a leading fence line (which may carry a language tag
// such as ```mermaid) and a trailing bare fence
func stripFences(source string) string {
	src := strings.TrimSpace(source)
	if !strings.HasPrefix(src, "```") {
		return src
	}

	lines := strings.Split(src, "\n")
	lines = lines[1:]
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func hasGrammarHeader(source string) bool {
	return strings.HasPrefix(source, headerFlowchart) ||
		strings.HasPrefix(source, headerSequence) ||
		strings.HasPrefix(source, headerClass)
}
