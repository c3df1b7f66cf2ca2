// # internal/engine/minify/minify.go
package minify

import (
	"strings"

	"minibun/internal/engine/lexer"
)

// Options control the minifier. KeepComments short-circuits everything except
// edge-whitespace trimming.
type Options struct {
	KeepComments bool
}

// Minify rewrites source token by token: comments are dropped, true/false
// shrink to !0/!1, and whitespace collapses to a single space only where two
// word-like tokens would otherwise fuse. String, template and regex bodies
// pass through byte-identical.
func Minify(source string, opts Options) string {
	if opts.KeepComments {
		return strings.TrimSpace(source)
	}

	tokens := lexer.Tokenize(source)

	kept := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == lexer.KindComment {
			continue
		}
		kept = append(kept, tok)
	}

	var b strings.Builder
	b.Grow(len(source))
	for i := 0; i < len(kept); i++ {
		tok := kept[i]
		switch tok.Kind {
		case lexer.KindEOF:
			// Terminal marker, nothing to emit.
		case lexer.KindWhitespace:
			// Collapse the whole run, then decide on a single separator.
			end := i
			for end+1 < len(kept) && kept[end+1].Kind == lexer.KindWhitespace {
				end++
			}
			if wordLikeBefore(kept, i) && wordLikeAfter(kept, end) {
				b.WriteByte(' ')
			}
			i = end
		case lexer.KindIdentifier, lexer.KindKeyword:
			switch tok.Value {
			case "true":
				b.WriteString("!0")
			case "false":
				b.WriteString("!1")
			default:
				b.WriteString(tok.Value)
			}
		default:
			b.WriteString(tok.Value)
		}
	}

	return strings.TrimSpace(b.String())
}

func wordLikeBefore(tokens []lexer.Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].Kind == lexer.KindWhitespace {
			continue
		}
		return tokens[j].WordLike()
	}
	return false
}

func wordLikeAfter(tokens []lexer.Token, i int) bool {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].Kind == lexer.KindWhitespace {
			continue
		}
		return tokens[j].WordLike()
	}
	return false
}
