package generator

import (
	"bssc/internal/ast"
	"bssc/internal/output"
)

// Generate writes the compiled rules to out. Compile must run first.
func (g *Generator) Generate(out output.Sink) {
	for _, sec := range g.sections {
		writeSection(out, sec)
		out.LineBreak()
	}
}

func writeSection(out output.Sink, sec *ast.Section) {
	out.Output(sec.SelectorString())
	out.Output(" {")
	out.IncIndent()
	for _, attr := range sec.Attributes {
		out.OptionalLineBreak()
		out.Output(attr.String())
	}
	for _, sub := range sec.SubSections {
		out.LineBreak()
		writeSection(out, sub)
	}
	out.DecIndent()
	out.OptionalLineBreak()
	out.Output("}")
}
