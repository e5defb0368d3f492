package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"bssc/internal/diag"
	"bssc/internal/lexer"
	"bssc/internal/parser"
	"bssc/internal/source"
)

func lex(t *testing.T, src string) *lexer.Tokenizer {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.bss", []byte(src)))
	return lexer.NewBSS(file, lexer.Options{Reporter: diag.NopReporter{}})
}

func TestTokensPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatTokens(&buf, lex(t, "a {\n  width: 10px;\n}").All(), FormatPretty); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines (7 tokens + EOI), got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[4], `INTEGER`) || !strings.Contains(lines[4], `"10px"`) || !strings.HasSuffix(lines[4], "at 2:10") {
		t.Errorf("unexpected line %q", lines[4])
	}
	if !strings.Contains(lines[7], "EOI") {
		t.Errorf("last line should be EOI, got %q", lines[7])
	}
}

func TestTokensJSONAndMsgpackAgree(t *testing.T) {
	tokens := lex(t, "$w: 1px;").All()

	var js bytes.Buffer
	if err := FormatTokens(&js, tokens, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var fromJSON []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	var mp bytes.Buffer
	if err := FormatTokens(&mp, tokens, FormatMsgpack); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack []TokenOutput
	if err := msgpack.Unmarshal(mp.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}

	if len(fromJSON) != 5 || len(fromMsgpack) != len(fromJSON) {
		t.Fatalf("json %d tokens, msgpack %d tokens", len(fromJSON), len(fromMsgpack))
	}
	for i := range fromJSON {
		if fromJSON[i] != fromMsgpack[i] {
			t.Errorf("token %d differs: %+v vs %+v", i, fromJSON[i], fromMsgpack[i])
		}
	}
	if fromJSON[0].Type != "SPECIAL_ID" || fromJSON[0].Source != "$w" {
		t.Errorf("unexpected first token %+v", fromJSON[0])
	}
}

func TestTokensUnknownFormat(t *testing.T) {
	if err := FormatTokens(&bytes.Buffer{}, nil, Format("xml")); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}

func TestFormatAST(t *testing.T) {
	src := "$w: 10px !default;\n@mixin m($a) { b: $a; }\n.x, .y { width: $w * 2; @include m(1); }\n"
	sheet, err := parser.ParseSource("t.bss", src, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatAST(&buf, sheet, FormatJSON); err != nil {
		t.Fatal(err)
	}
	var node StylesheetNode
	if err := json.Unmarshal(buf.Bytes(), &node); err != nil {
		t.Fatal(err)
	}
	if len(node.Variables) != 1 || !node.Variables[0].Default || node.Variables[0].Value.Kind != "Num" {
		t.Errorf("unexpected variables %+v", node.Variables)
	}
	if len(node.Mixins) != 1 || node.Mixins[0].Name != "m" {
		t.Errorf("unexpected mixins %+v", node.Mixins)
	}
	if len(node.Sections) != 1 {
		t.Fatalf("unexpected sections %+v", node.Sections)
	}
	sec := node.Sections[0]
	if strings.Join(sec.Selectors, ",") != ".x,.y" {
		t.Errorf("selectors = %v", sec.Selectors)
	}
	if len(sec.Attributes) != 1 || sec.Attributes[0].Value.Kind != "Operation" {
		t.Errorf("attributes = %+v", sec.Attributes)
	}
	if len(sec.Includes) != 1 || sec.Includes[0].Name != "m" || len(sec.Includes[0].Args) != 1 {
		t.Errorf("includes = %+v", sec.Includes)
	}

	buf.Reset()
	if err := FormatAST(&buf, sheet, FormatPretty); err != nil {
		t.Fatal(err)
	}
	if buf.String() != sheet.String() {
		t.Errorf("pretty dump should be the rendered source, got:\n%s", buf.String())
	}
}
