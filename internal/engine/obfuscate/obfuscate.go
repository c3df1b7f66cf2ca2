// # internal/engine/obfuscate/obfuscate.go
package obfuscate

import (
	"fmt"
	"strings"

	"minibun/internal/engine/lexer"
)

// Options control the obfuscator passes. NewOptions returns the defaults;
// FlattenIfs is accepted for interface compatibility and is a no-op.
type Options struct {
	EncodeStrings     bool
	RenameIdentifiers bool
	FlattenIfs        bool
}

func NewOptions() Options {
	return Options{EncodeStrings: true}
}

// Obfuscate rewrites source according to opts. When both renaming and string
// encoding are requested, renaming runs first and the renamed output is
// re-tokenized before encoding.
func Obfuscate(source string, opts Options) string {
	out := source
	if opts.RenameIdentifiers {
		out = renameIdentifiers(out)
	}
	if opts.EncodeStrings {
		out = encodeStrings(out)
	}
	return out
}

// encodeStrings replaces every string token body with \xHH escapes. Templates
// are encoded only when they contain no interpolation; a template with ${ is
// left verbatim, correctness over coverage.
func encodeStrings(source string) string {
	tokens := lexer.Tokenize(source)

	var b strings.Builder
	b.Grow(len(source) * 2)
	for _, tok := range tokens {
		switch tok.Kind {
		case lexer.KindEOF:
		case lexer.KindString:
			b.WriteString(encodeQuoted(tok.Value))
		case lexer.KindTemplate:
			if strings.Contains(tok.Value, "${") {
				b.WriteString(tok.Value)
			} else {
				b.WriteString(encodeQuoted(tok.Value))
			}
		default:
			b.WriteString(tok.Value)
		}
	}
	return b.String()
}

// encodeQuoted hex-encodes the text between the outer quote characters,
// keeping the quotes themselves.
func encodeQuoted(literal string) string {
	if len(literal) < 2 {
		return literal
	}
	open := literal[0]
	body := literal[1:]
	closed := false
	if body[len(body)-1] == open {
		body = body[:len(body)-1]
		closed = true
	}

	var b strings.Builder
	b.WriteByte(open)
	for i := 0; i < len(body); i++ {
		fmt.Fprintf(&b, `\x%02x`, body[i])
	}
	if closed {
		b.WriteByte(open)
	}
	return b.String()
}

// renameIdentifiers maps every renamable identifier to a generated short name.
// Two passes over the tokens: collect assigns names in first-seen order, then
// rewrite substitutes them.
func renameIdentifiers(source string) string {
	tokens := lexer.Tokenize(source)

	names := make(map[string]string)
	gen := nameGenerator{}
	for i, tok := range tokens {
		if !renamable(tokens, i) {
			continue
		}
		if _, ok := names[tok.Value]; ok {
			continue
		}
		names[tok.Value] = gen.next()
	}

	var b strings.Builder
	b.Grow(len(source))
	for i, tok := range tokens {
		if tok.Kind == lexer.KindEOF {
			continue
		}
		if renamable(tokens, i) {
			b.WriteString(names[tok.Value])
			continue
		}
		b.WriteString(tok.Value)
	}
	return b.String()
}

// renamable rejects keywords, the fixed do-not-rename globals, and property
// positions (an identifier right after . or ?.).
func renamable(tokens []lexer.Token, i int) bool {
	tok := tokens[i]
	if tok.Kind != lexer.KindIdentifier {
		return false
	}
	if globals[tok.Value] {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Kind == lexer.KindWhitespace {
			continue
		}
		if tokens[j].Kind == lexer.KindPunctuator && (tokens[j].Value == "." || tokens[j].Value == "?.") {
			return false
		}
		break
	}
	return true
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// nameGenerator yields a, b, ..., z, A, ..., Z, aa, ab, ... in order.
type nameGenerator struct {
	index int
}

func (g *nameGenerator) next() string {
	n := g.index
	g.index++

	var out []byte
	for {
		out = append([]byte{nameAlphabet[n%52]}, out...)
		n = n/52 - 1
		if n < 0 {
			break
		}
	}
	return string(out)
}

// globals is the fixed do-not-rename set.
var globals = map[string]bool{
	"window": true, "global": true, "globalThis": true, "document": true,
	"console": true, "Math": true, "Date": true, "JSON": true, "Array": true,
	"Object": true, "String": true, "Number": true, "Boolean": true,
	"RegExp": true, "Promise": true, "Set": true, "Map": true, "Buffer": true,
	"atob": true, "undefined": true, "NaN": true, "Infinity": true,
	"Error": true, "TypeError": true, "ReferenceError": true,
	"SyntaxError": true, "RangeError": true, "eval": true, "parseInt": true,
	"parseFloat": true, "isNaN": true, "isFinite": true, "encodeURI": true,
	"decodeURI": true, "encodeURIComponent": true, "decodeURIComponent": true,
	"require": true, "module": true, "exports": true, "__dirname": true,
	"__filename": true,
}
