package worker

import (
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astpad/astpad/engine/sitter"
	"github.com/astpad/astpad/span"
)

func (w *Worker) validate(ctx context.Context, text string) ([]Diagnostic, error) {
	switch w.kind {
	case KindDefault:
		return nil, nil
	case KindJSON:
		return validateJSON(text), nil
	case KindYAML:
		return validateYAML(text), nil
	default:
		return w.validateSyntax(ctx, text)
	}
}

// validateSyntax reports the ERROR and missing regions of the parse
// tree.
func (w *Worker) validateSyntax(ctx context.Context, text string) ([]Diagnostic, error) {
	if text == "" {
		return nil, nil
	}
	src := []byte(text)
	p := sitter.NewParser(w.lang)
	defer p.Close()
	tree, err := p.Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	spans := sitter.Errors(src, tree.RootNode())
	if len(spans) == 0 {
		return nil, nil
	}
	diags := make([]Diagnostic, 0, len(spans))
	for _, s := range spans {
		diags = append(diags, Diagnostic{Span: s, Message: "syntax error"})
	}
	return diags, nil
}

func validateJSON(text string) []Diagnostic {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(text))
	var v any
	if err := dec.Decode(&v); err != nil {
		offset := int64(-1)
		if se, ok := err.(*json.SyntaxError); ok {
			offset = se.Offset
		}
		return []Diagnostic{{Span: matchAtOffset(text, offset), Message: err.Error()}}
	}
	if dec.More() {
		off := dec.InputOffset()
		return []Diagnostic{{Span: matchAtOffset(text, off+1), Message: "unexpected content after top-level value"}}
	}
	return nil
}

// matchAtOffset turns a one-based byte offset into a zero-width span
// at that position. Negative offsets mark the document start.
func matchAtOffset(text string, offset int64) span.Match {
	pos := span.Pos{}
	if offset > 0 {
		upto := int(offset) - 1
		if upto > len(text) {
			upto = len(text)
		}
		prefix := text[:upto]
		pos.Row = strings.Count(prefix, "\n")
		lineStart := strings.LastIndexByte(prefix, '\n') + 1
		pos.Col = len([]rune(prefix[lineStart:]))
	}
	return span.Match{StartRow: pos.Row, StartCol: pos.Col, EndRow: pos.Row, EndCol: pos.Col}
}

var yamlLineRE = regexp.MustCompile(`line (\d+):`)

func validateYAML(text string) []Diagnostic {
	var v any
	err := yaml.Unmarshal([]byte(text), &v)
	if err == nil {
		return nil
	}

	if te, ok := err.(*yaml.TypeError); ok {
		diags := make([]Diagnostic, 0, len(te.Errors))
		for _, msg := range te.Errors {
			diags = append(diags, Diagnostic{Span: yamlErrorSpan(msg), Message: msg})
		}
		return diags
	}
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	return []Diagnostic{{Span: yamlErrorSpan(msg), Message: msg}}
}

// yamlErrorSpan extracts the one-based "line N:" reference a yaml error
// carries and marks the start of that line. Errors without a line
// reference mark the document start.
func yamlErrorSpan(msg string) span.Match {
	row := 0
	if m := yamlLineRE.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			row = n - 1
		}
	}
	return span.Match{StartRow: row, StartCol: 0, EndRow: row, EndCol: 0}
}
