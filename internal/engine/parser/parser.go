// # internal/engine/parser/parser.go
package parser

import (
	"minibun/internal/engine/lexer"
)

// FindModuleSyntax classifies the import/export statements in a token stream.
// It never re-interprets character-level syntax: everything it knows comes
// from the token kinds and values produced by the lexer.
func FindModuleSyntax(tokens []lexer.Token) ModuleSyntax {
	var syntax ModuleSyntax

	cursor := newCursor(tokens)
	for {
		tok, ok := cursor.next()
		if !ok {
			break
		}
		if tok.Kind != lexer.KindKeyword {
			continue
		}

		switch tok.Value {
		case "import":
			if record, ok := scanImport(cursor); ok {
				syntax.Imports = append(syntax.Imports, record)
			}
		case "export":
			if record, ok := scanExport(cursor); ok {
				syntax.Exports = append(syntax.Exports, record)
			}
		}
	}

	return syntax
}

// scanImport consumes an import statement through its end.
//
//	import "X";            side-effect import
//	import ... from "X";   named or default import; the clause between the
//	                       keyword and from is not decomposed at this layer
func scanImport(c *cursor) (ImportRecord, bool) {
	tok, ok := c.peek()
	if !ok {
		return ImportRecord{}, false
	}

	if tok.Kind == lexer.KindString {
		c.next()
		c.skipStatement()
		return ImportRecord{Kind: ImportSideEffect, Source: stripQuotes(tok.Value)}, true
	}

	for {
		tok, ok := c.peek()
		if !ok || isModuleKeyword(tok) {
			return ImportRecord{}, false
		}
		c.next()
		if isStatementEnd(tok) {
			return ImportRecord{}, false
		}
		if isFrom(tok) {
			src, ok := c.next()
			if !ok || src.Kind != lexer.KindString {
				c.skipStatement()
				return ImportRecord{}, false
			}
			c.skipStatement()
			return ImportRecord{Kind: ImportNamedOrDefault, Source: stripQuotes(src.Value)}, true
		}
	}
}

// scanExport consumes an export statement through its end.
func scanExport(c *cursor) (ExportRecord, bool) {
	tok, ok := c.next()
	if !ok {
		return ExportRecord{}, false
	}

	switch {
	case tok.Kind == lexer.KindPunctuator && tok.Value == "*":
		record := ExportRecord{Kind: ExportAll}
		if next, ok := c.peek(); ok && isFrom(next) {
			c.next()
			if src, ok := c.next(); ok && src.Kind == lexer.KindString {
				record.Source = stripQuotes(src.Value)
			}
		}
		c.skipStatement()
		return record, true

	case tok.Kind == lexer.KindKeyword && tok.Value == "default":
		c.skipStatement()
		return ExportRecord{Kind: ExportDefault}, true

	case tok.Kind == lexer.KindPunctuator && tok.Value == "{":
		record := ExportRecord{Kind: ExportNamed}
		for {
			inner, ok := c.next()
			if !ok || isStatementEnd(inner) {
				break
			}
			if inner.Kind == lexer.KindPunctuator && inner.Value == "}" {
				break
			}
			if inner.Kind != lexer.KindIdentifier && inner.Kind != lexer.KindKeyword {
				continue
			}
			if inner.Value == "as" {
				// Renames collapse to the local side of the clause.
				c.next()
				continue
			}
			record.Names = append(record.Names, inner.Value)
		}
		if next, ok := c.peek(); ok && isFrom(next) {
			c.next()
			if src, ok := c.next(); ok && src.Kind == lexer.KindString {
				record.Source = stripQuotes(src.Value)
			}
		}
		c.skipStatement()
		return record, true

	case tok.Kind == lexer.KindKeyword && isDeclKeyword(tok.Value):
		for {
			name, ok := c.peek()
			if !ok || isModuleKeyword(name) {
				return ExportRecord{}, false
			}
			c.next()
			if isStatementEnd(name) {
				return ExportRecord{}, false
			}
			if name.Kind == lexer.KindIdentifier {
				c.skipStatement()
				return ExportRecord{Kind: ExportNamed, Names: []string{name.Value}}, true
			}
		}

	default:
		c.skipStatement()
		return ExportRecord{}, false
	}
}

func isDeclKeyword(value string) bool {
	switch value {
	case "const", "let", "var", "function", "class":
		return true
	}
	return false
}

// isFrom matches the contextual from token, which the lexer may deliver as
// identifier or keyword.
func isFrom(tok lexer.Token) bool {
	return (tok.Kind == lexer.KindIdentifier || tok.Kind == lexer.KindKeyword) && tok.Value == "from"
}

func isStatementEnd(tok lexer.Token) bool {
	return tok.Kind == lexer.KindPunctuator && tok.Value == ";"
}

func isModuleKeyword(tok lexer.Token) bool {
	return tok.Kind == lexer.KindKeyword && (tok.Value == "import" || tok.Value == "export")
}

func stripQuotes(literal string) string {
	if len(literal) >= 2 {
		first := literal[0]
		last := literal[len(literal)-1]
		if (first == '\'' || first == '"') && first == last {
			return literal[1 : len(literal)-1]
		}
	}
	if len(literal) >= 1 && (literal[0] == '\'' || literal[0] == '"') {
		return literal[1:]
	}
	return literal
}

// cursor walks significant tokens, skipping whitespace and comments.
type cursor struct {
	tokens []lexer.Token
	pos    int
}

func newCursor(tokens []lexer.Token) *cursor {
	return &cursor{tokens: tokens}
}

func (c *cursor) next() (lexer.Token, bool) {
	for c.pos < len(c.tokens) {
		tok := c.tokens[c.pos]
		c.pos++
		if tok.Kind == lexer.KindEOF {
			return lexer.Token{}, false
		}
		if tok.Significant() {
			return tok, true
		}
	}
	return lexer.Token{}, false
}

func (c *cursor) peek() (lexer.Token, bool) {
	saved := c.pos
	tok, ok := c.next()
	c.pos = saved
	return tok, ok
}

// skipStatement advances to the end of the current statement. Declarations
// routinely carry no trailing semicolon, so a literal scan for ; would swallow
// whatever follows; instead the skip stops after a semicolon at brace depth
// zero, after the closing brace of a body opened here, or just before the next
// top-level import/export keyword.
func (c *cursor) skipStatement() {
	depth := 0
	for {
		tok, ok := c.peek()
		if !ok {
			return
		}
		if depth == 0 && isModuleKeyword(tok) {
			return
		}
		c.next()
		if tok.Kind != lexer.KindPunctuator {
			continue
		}
		switch tok.Value {
		case "{":
			depth++
		case "}":
			if depth > 0 {
				depth--
				if depth == 0 {
					return
				}
			}
		case ";":
			if depth == 0 {
				return
			}
		}
	}
}
