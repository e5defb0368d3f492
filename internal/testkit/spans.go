package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"bssc/internal/ast"
	"bssc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed
// stylesheet:
// 1) every span points into sf and lies within its content
// 2) attributes, includes and sub-sections lie within their section
// 3) mixin members lie within their mixin
func CheckSpanInvariants(sheet *ast.Stylesheet, sf *source.File) error {
	if sheet == nil || sf == nil {
		return fmt.Errorf("nil stylesheet or file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	c := checker{file: sf.ID, size: size}

	for _, imp := range sheet.Imports {
		if err := c.inFile("import "+imp.Name, imp.Span); err != nil {
			return err
		}
	}
	for _, v := range sheet.Variables {
		if err := c.inFile("variable $"+v.Name, v.Span); err != nil {
			return err
		}
	}
	for _, m := range sheet.Mixins {
		if err := c.inFile("mixin "+m.Name, m.Span); err != nil {
			return err
		}
		for _, a := range m.Attributes {
			if err := c.within("attribute "+a.Name, a.Span, m.Span); err != nil {
				return err
			}
		}
		for _, sub := range m.SubSections {
			if err := c.section(sub, m.Span); err != nil {
				return err
			}
		}
	}
	for _, sec := range sheet.Sections {
		if err := c.inFile("section "+sec.SelectorString(), sec.Span); err != nil {
			return err
		}
		if err := c.section(sec, sec.Span); err != nil {
			return err
		}
	}
	return nil
}

type checker struct {
	file source.FileID
	size uint32
}

func (c checker) inFile(what string, sp source.Span) error {
	if sp.File != c.file {
		return fmt.Errorf("%s: span points to different file id: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("%s: inverted span %v", what, sp)
	}
	if sp.End > c.size {
		return fmt.Errorf("%s: span end beyond content: %d > %d", what, sp.End, c.size)
	}
	return nil
}

func (c checker) within(what string, sp, parent source.Span) error {
	if err := c.inFile(what, sp); err != nil {
		return err
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s: span %v is outside %v", what, sp, parent)
	}
	return nil
}

func (c checker) section(sec *ast.Section, parent source.Span) error {
	what := "section " + sec.SelectorString()
	if err := c.within(what, sec.Span, parent); err != nil {
		return err
	}
	for _, a := range sec.Attributes {
		if err := c.within(what+" attribute "+a.Name, a.Span, sec.Span); err != nil {
			return err
		}
	}
	for _, ref := range sec.MixinRefs {
		if err := c.within(what+" @include "+ref.Name, ref.Span, sec.Span); err != nil {
			return err
		}
	}
	for _, sub := range sec.SubSections {
		if err := c.section(sub, sec.Span); err != nil {
			return err
		}
	}
	return nil
}
