package ast

import (
	"strings"
)

const indentUnit = "    "

func (a Attribute) String() string {
	return a.Name + ": " + render(a.Value) + ";"
}

func (r MixinRef) String() string {
	return "@include " + r.Name + "(" + join(r.Args, ", ") + ");"
}

func (v Variable) String() string {
	s := "$" + v.Name + ": " + render(v.Value)
	if v.Default {
		s += " !default"
	}
	return s + ";"
}

func (s *Section) String() string {
	var sb strings.Builder
	s.write(&sb, "")
	return sb.String()
}

func (s *Section) write(sb *strings.Builder, indent string) {
	sb.WriteString(indent)
	if s.IsMedia() {
		sb.WriteString("@media ")
		sb.WriteString(join(s.MediaQueries, " and "))
	} else {
		sb.WriteString(s.SelectorString())
	}
	sb.WriteString(" {\n")
	inner := indent + indentUnit
	for _, ext := range s.Extends {
		sb.WriteString(inner + "@extend " + ext + ";\n")
	}
	for _, ref := range s.MixinRefs {
		sb.WriteString(inner + ref.String() + "\n")
	}
	for _, attr := range s.Attributes {
		sb.WriteString(inner + attr.String() + "\n")
	}
	for _, sub := range s.SubSections {
		sub.write(sb, inner)
	}
	sb.WriteString(indent + "}\n")
}

func (m *Mixin) String() string {
	var sb strings.Builder
	sb.WriteString("@mixin " + m.Name + "(")
	for i, p := range m.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("$" + p)
	}
	sb.WriteString(") {\n")
	for _, attr := range m.Attributes {
		sb.WriteString(indentUnit + attr.String() + "\n")
	}
	for _, sub := range m.SubSections {
		sub.write(&sb, indentUnit)
	}
	sb.WriteString("}\n")
	return sb.String()
}

// String renders the stylesheet back into BSS source.
func (st *Stylesheet) String() string {
	var sb strings.Builder
	for _, imp := range st.Imports {
		sb.WriteString("@import '" + imp.Name + "';\n")
	}
	for _, v := range st.Variables {
		sb.WriteString(v.String() + "\n")
	}
	for _, m := range st.Mixins {
		sb.WriteString(m.String())
	}
	for _, s := range st.Sections {
		s.write(&sb, "")
	}
	return sb.String()
}
