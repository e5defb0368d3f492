package generator

import (
	"bssc/internal/ast"
	"bssc/internal/diag"
	"bssc/internal/scope"
)

// Compile resolves extends and mixins, evaluates every attribute and drops
// rules that ended up empty. It runs once; later calls do nothing.
func (g *Generator) Compile() {
	if g.compiled {
		return
	}
	g.compiled = true

	media := make([]*ast.Section, 0, len(g.mediaOrder)+len(g.sections))
	for _, query := range g.mediaOrder {
		media = append(media, g.media[query])
	}
	g.sections = append(media, g.sections...)

	g.compileList(&g.sections)
	g.sections = pruneEmpty(g.sections)
}

// compileList walks list by index: mixins append new rules to the list
// they are applied in, and those are compiled in the same pass.
func (g *Generator) compileList(list *[]*ast.Section) {
	for i := 0; i < len(*list); i++ {
		g.compileSection((*list)[i], list)
	}
}

func (g *Generator) compileSection(sec *ast.Section, list *[]*ast.Section) {
	for _, name := range sec.Extends {
		target, ok := g.extensible[name]
		if !ok {
			g.warn(diag.SemaUnknownExtend, sec.Span, "Skipping unknown @extend '%s' referenced by selector '%s'",
				name, sec.SelectorString())
			continue
		}
		target.Selectors = append(ast.CloneSelectors(sec.Selectors), target.Selectors...)
	}

	for _, ref := range sec.MixinRefs {
		if !g.applyMixin(sec, ref, list) {
			break
		}
	}

	for i := range sec.Attributes {
		attr := &sec.Attributes[i]
		attr.Value = g.evaluate(attr.Value, g.scope, attr.Span)
	}

	if len(sec.SubSections) > 0 {
		g.compileList(&sec.SubSections)
	}
}

// applyMixin copies the mixin's attributes into sec and appends its nested
// rules to list. It returns false for an unknown mixin, which stops the
// remaining references of sec.
func (g *Generator) applyMixin(sec *ast.Section, ref ast.MixinRef, list *[]*ast.Section) bool {
	mixin, ok := g.mixins[ref.Name]
	if !ok {
		g.warn(diag.SemaUnknownMixin, ref.Span, "Skipping unknown @mixin '%s' referenced by selector '%s'",
			ref.Name, sec.SelectorString())
		return false
	}
	if len(ref.Args) != len(mixin.Params) {
		g.warn(diag.SemaMixinArity, ref.Span, "@mixin '%s' expects %d parameters, got %d",
			ref.Name, len(mixin.Params), len(ref.Args))
	}

	local := g.scope.Child()
	defer local.Release()
	for i, param := range mixin.Params {
		if i >= len(ref.Args) {
			break
		}
		local.Set(param, g.evaluate(ref.Args[i], g.scope, ref.Span))
	}

	sec.Attributes = append(sec.Attributes, g.mixinAttributes(mixin.Attributes, local)...)
	// одно плоское правило на каждую пару селекторов
	for _, sub := range mixin.SubSections {
		for _, subSel := range sub.Selectors {
			for _, encl := range sec.Selectors {
				*list = append(*list, &ast.Section{
					Selectors:  []ast.Selector{combine(encl, subSel)},
					Attributes: g.mixinAttributes(sub.Attributes, local),
					Span:       sub.Span,
				})
			}
		}
	}
	return true
}

// mixinAttributes evaluates the non-constant attributes against the
// mixin's scope, which is gone once the call returns.
func (g *Generator) mixinAttributes(attrs []ast.Attribute, local scope.Scope) []ast.Attribute {
	out := make([]ast.Attribute, len(attrs))
	for i, attr := range attrs {
		out[i] = attr
		if !ast.IsConstant(attr.Value) {
			out[i].Value = g.evaluate(attr.Value, local, attr.Span)
		}
	}
	return out
}

// pruneEmpty drops rules with neither attributes nor nested rules, such as
// a parent whose content was entirely nested or hoisted into @media.
func pruneEmpty(list []*ast.Section) []*ast.Section {
	out := list[:0]
	for _, sec := range list {
		sec.SubSections = pruneEmpty(sec.SubSections)
		if len(sec.Attributes) == 0 && len(sec.SubSections) == 0 {
			continue
		}
		out = append(out, sec)
	}
	return out
}
