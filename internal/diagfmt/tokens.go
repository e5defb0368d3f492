package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"bssc/internal/source"
	"bssc/internal/token"
)

type TokenOutput struct {
	Type     string      `json:"type" msgpack:"type"`
	Trigger  string      `json:"trigger,omitempty" msgpack:"trigger,omitempty"`
	Contents string      `json:"contents,omitempty" msgpack:"contents,omitempty"`
	Source   string      `json:"source,omitempty" msgpack:"source,omitempty"`
	Line     uint32      `json:"line" msgpack:"line"`
	Col      uint32      `json:"col" msgpack:"col"`
	Span     source.Span `json:"span" msgpack:"span"`
}

func tokenOutputs(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Type:     tok.Type.String(),
			Trigger:  tok.Trigger,
			Contents: tok.Contents,
			Source:   tok.Source,
			Line:     tok.Pos.Line,
			Col:      tok.Pos.Col,
			Span:     tok.Span,
		})
		if tok.IsEnd() {
			break
		}
	}
	return out
}

// FormatTokensPretty prints one token per line with its position.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d: %-18s", i+1, tok.Type.String()); err != nil {
			return err
		}
		if tok.Source != "" {
			fmt.Fprintf(w, " %q", tok.Source)
		}
		if tok.Trigger != "" && tok.Trigger != tok.Source {
			fmt.Fprintf(w, " trigger=%q", tok.Trigger)
		}
		fmt.Fprintf(w, " at %d:%d\n", tok.Pos.Line, tok.Pos.Col)
		if tok.IsEnd() {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}

// FormatTokensMsgpack writes the tokens as one msgpack array.
func FormatTokensMsgpack(w io.Writer, tokens []token.Token) error {
	return msgpack.NewEncoder(w).Encode(tokenOutputs(tokens))
}

// FormatTokens dispatches on format.
func FormatTokens(w io.Writer, tokens []token.Token, format Format) error {
	switch format {
	case FormatPretty, "":
		return FormatTokensPretty(w, tokens)
	case FormatJSON:
		return FormatTokensJSON(w, tokens)
	case FormatMsgpack:
		return FormatTokensMsgpack(w, tokens)
	}
	return fmt.Errorf("unknown format %q", format)
}
