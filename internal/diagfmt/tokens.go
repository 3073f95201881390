package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"decaf/internal/source"
	"decaf/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// FormatTokensPretty выводит токены по одному в строке
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		text := ""
		if tok.Text != "" {
			text = fmt.Sprintf(" %q", tok.Text)
		}
		if _, err := fmt.Fprintf(w, "%3d: %-15s%s at %d:%d-%d:%d\n", i+1, tok.Kind,
			text, start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span})
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
