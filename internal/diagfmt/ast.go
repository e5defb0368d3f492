package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"bssc/internal/ast"
)

// Serializable mirror of a parsed stylesheet. Expressions are kept as their
// rendered text plus the kind of the root node.

type ExprNode struct {
	Kind string `json:"kind" msgpack:"kind"`
	Text string `json:"text" msgpack:"text"`
}

type AttributeNode struct {
	Name  string   `json:"name" msgpack:"name"`
	Value ExprNode `json:"value" msgpack:"value"`
}

type IncludeNode struct {
	Name string     `json:"name" msgpack:"name"`
	Args []ExprNode `json:"args,omitempty" msgpack:"args,omitempty"`
}

type SectionNode struct {
	Selectors   []string        `json:"selectors,omitempty" msgpack:"selectors,omitempty"`
	Media       []ExprNode      `json:"media,omitempty" msgpack:"media,omitempty"`
	Extends     []string        `json:"extends,omitempty" msgpack:"extends,omitempty"`
	Includes    []IncludeNode   `json:"includes,omitempty" msgpack:"includes,omitempty"`
	Attributes  []AttributeNode `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	SubSections []SectionNode   `json:"sub_sections,omitempty" msgpack:"sub_sections,omitempty"`
}

type MixinNode struct {
	Name        string          `json:"name" msgpack:"name"`
	Params      []string        `json:"params,omitempty" msgpack:"params,omitempty"`
	Attributes  []AttributeNode `json:"attributes,omitempty" msgpack:"attributes,omitempty"`
	SubSections []SectionNode   `json:"sub_sections,omitempty" msgpack:"sub_sections,omitempty"`
}

type VariableNode struct {
	Name    string   `json:"name" msgpack:"name"`
	Value   ExprNode `json:"value" msgpack:"value"`
	Default bool     `json:"default,omitempty" msgpack:"default,omitempty"`
}

type StylesheetNode struct {
	Name      string         `json:"name" msgpack:"name"`
	Imports   []string       `json:"imports,omitempty" msgpack:"imports,omitempty"`
	Variables []VariableNode `json:"variables,omitempty" msgpack:"variables,omitempty"`
	Mixins    []MixinNode    `json:"mixins,omitempty" msgpack:"mixins,omitempty"`
	Sections  []SectionNode  `json:"sections,omitempty" msgpack:"sections,omitempty"`
}

// BuildStylesheetNode converts sheet into its serializable form.
func BuildStylesheetNode(sheet *ast.Stylesheet) StylesheetNode {
	out := StylesheetNode{Name: sheet.Name}
	for _, imp := range sheet.Imports {
		out.Imports = append(out.Imports, imp.Name)
	}
	for _, v := range sheet.Variables {
		out.Variables = append(out.Variables, VariableNode{Name: v.Name, Value: exprNode(v.Value), Default: v.Default})
	}
	for _, m := range sheet.Mixins {
		out.Mixins = append(out.Mixins, MixinNode{
			Name:        m.Name,
			Params:      m.Params,
			Attributes:  attributeNodes(m.Attributes),
			SubSections: sectionNodes(m.SubSections),
		})
	}
	out.Sections = sectionNodes(sheet.Sections)
	return out
}

func exprNode(e ast.Expr) ExprNode {
	if e == nil {
		return ExprNode{Kind: ast.ExprValue.String()}
	}
	return ExprNode{Kind: e.Kind().String(), Text: e.String()}
}

func exprNodes(list []ast.Expr) []ExprNode {
	if len(list) == 0 {
		return nil
	}
	out := make([]ExprNode, len(list))
	for i, e := range list {
		out[i] = exprNode(e)
	}
	return out
}

func attributeNodes(attrs []ast.Attribute) []AttributeNode {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]AttributeNode, len(attrs))
	for i, a := range attrs {
		out[i] = AttributeNode{Name: a.Name, Value: exprNode(a.Value)}
	}
	return out
}

func sectionNodes(secs []*ast.Section) []SectionNode {
	if len(secs) == 0 {
		return nil
	}
	out := make([]SectionNode, len(secs))
	for i, s := range secs {
		n := SectionNode{
			Media:       exprNodes(s.MediaQueries),
			Extends:     s.Extends,
			Attributes:  attributeNodes(s.Attributes),
			SubSections: sectionNodes(s.SubSections),
		}
		for _, sel := range s.Selectors {
			n.Selectors = append(n.Selectors, sel.String())
		}
		for _, ref := range s.MixinRefs {
			n.Includes = append(n.Includes, IncludeNode{Name: ref.Name, Args: exprNodes(ref.Args)})
		}
		out[i] = n
	}
	return out
}

// FormatAST writes sheet in the requested format. The pretty form is the
// stylesheet rendered back into BSS source.
func FormatAST(w io.Writer, sheet *ast.Stylesheet, format Format) error {
	switch format {
	case FormatPretty, "":
		_, err := io.WriteString(w, sheet.String())
		return err
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(BuildStylesheetNode(sheet))
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(BuildStylesheetNode(sheet))
	}
	return fmt.Errorf("unknown format %q", format)
}
