package generator

import (
	"slices"
	"strings"

	"bssc/internal/ast"
	"bssc/internal/diag"
)

// expand flattens one section of an imported stylesheet. media is the
// combined @media condition in effect ("" outside any), stack the already
// expanded selector ancestors, nearest last. New sections are built for the
// output; the input tree is only read.
func (g *Generator) expand(sec *ast.Section, media string, stack []*ast.Section) {
	switch {
	case sec.IsAtRule():
		g.emit(media, sec.Clone())
	case len(sec.Selectors) > 0:
		g.expandSection(sec, media, stack)
	case sec.IsMedia():
		g.expandMedia(sec, media, stack)
	}
}

func (g *Generator) expandSection(sec *ast.Section, media string, stack []*ast.Section) {
	out := &ast.Section{
		Extends:    slices.Clone(sec.Extends),
		Attributes: slices.Clone(sec.Attributes),
		MixinRefs:  slices.Clone(sec.MixinRefs),
		Span:       sec.Span,
	}
	if len(stack) == 0 {
		out.Selectors = ast.CloneSelectors(sec.Selectors)
	} else {
		// предок уже раскрыт относительно своих предков
		out.Selectors = crossJoin(stack[len(stack)-1].Selectors, sec.Selectors)
	}
	for _, sel := range out.Selectors {
		if len(sel) == 1 {
			g.extensible[sel[0]] = out
		}
	}
	g.emit(media, out)

	if len(sec.SubSections) == 0 {
		return
	}
	inner := append(slices.Clip(stack), out)
	for _, sub := range sec.SubSections {
		g.expand(sub, media, inner)
	}
}

func (g *Generator) expandMedia(sec *ast.Section, media string, stack []*ast.Section) {
	query := g.mediaQuery(sec)
	if media == "" {
		media = query
	} else {
		media += " and " + query
	}

	if len(sec.Attributes) > 0 || len(sec.MixinRefs) > 0 || len(sec.Extends) > 0 {
		if len(stack) == 0 {
			g.warn(diag.SemaMediaAttributes, sec.Span,
				"attributes in '@media %s' have no selector to attach to and are dropped", query)
		} else {
			g.emit(media, &ast.Section{
				Selectors:  ast.CloneSelectors(stack[len(stack)-1].Selectors),
				Extends:    slices.Clone(sec.Extends),
				Attributes: slices.Clone(sec.Attributes),
				MixinRefs:  slices.Clone(sec.MixinRefs),
				Span:       sec.Span,
			})
		}
	}
	// @media is not a selector ancestor: children join the enclosing rule
	for _, sub := range sec.SubSections {
		g.expand(sub, media, stack)
	}
}

// mediaQuery renders the evaluated query parts of an @media block.
func (g *Generator) mediaQuery(sec *ast.Section) string {
	parts := make([]string, 0, len(sec.MediaQueries))
	for _, q := range sec.MediaQueries {
		parts = append(parts, g.evaluate(q, g.scope, sec.Span).String())
	}
	return strings.Join(parts, " and ")
}

// emit appends sec to the top-level list or to the aggregate of its
// media condition. Blocks with the same condition share one aggregate.
func (g *Generator) emit(media string, sec *ast.Section) {
	if media == "" {
		g.sections = append(g.sections, sec)
		return
	}
	agg, ok := g.media[media]
	if !ok {
		agg = &ast.Section{Selectors: []ast.Selector{{"@media " + media}}, Span: sec.Span}
		g.media[media] = agg
		g.mediaOrder = append(g.mediaOrder, media)
	}
	agg.SubSections = append(agg.SubSections, sec)
}
