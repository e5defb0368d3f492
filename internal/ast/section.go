package ast

import (
	"slices"
	"strings"

	"bssc/internal/source"
)

// Selector is one selector as a sequence of raw fragments: ["a", ">", ".b:hover"].
type Selector []string

type Attribute struct {
	Name  string
	Value Expr
	Span  source.Span
}

// MixinRef is an @include (@call) of a mixin.
type MixinRef struct {
	Name string
	Args []Expr
	Span source.Span
}

// Section is a rule block. Without selectors but with media queries it is an
// @media block. A first selector fragment starting with '@' (@font-face,
// @keyframes) marks a block that is emitted as written, children included.
type Section struct {
	Selectors    []Selector
	MediaQueries []Expr
	Extends      []string
	Attributes   []Attribute
	SubSections  []*Section
	MixinRefs    []MixinRef
	Span         source.Span
}

// Mixin is a reusable template; Params are names without '$'.
type Mixin struct {
	Name        string
	Params      []string
	Attributes  []Attribute
	SubSections []*Section
	Span        source.Span
}

type Variable struct {
	Name    string
	Value   Expr
	Default bool
	Span    source.Span
}

type Import struct {
	Name string
	Span source.Span
}

// Stylesheet is the parse result of one file.
type Stylesheet struct {
	Name      string
	File      source.FileID
	Imports   []Import
	Variables []Variable
	Mixins    []*Mixin
	Sections  []*Section
}

// IsMedia reports whether s is an @media block.
func (s *Section) IsMedia() bool {
	return len(s.Selectors) == 0 && len(s.MediaQueries) > 0
}

// IsAtRule reports whether s is a verbatim block such as @font-face.
func (s *Section) IsAtRule() bool {
	return len(s.Selectors) > 0 && len(s.Selectors[0]) > 0 && strings.HasPrefix(s.Selectors[0][0], "@")
}

// SelectorString renders selectors joined by ", ", fragments by spaces.
func (s *Section) SelectorString() string {
	parts := make([]string, 0, len(s.Selectors))
	for _, sel := range s.Selectors {
		parts = append(parts, sel.String())
	}
	return strings.Join(parts, ", ")
}

func (sel Selector) String() string {
	return strings.Join(sel, " ")
}

// Clone copies the section tree. Expressions are shared since they are immutable.
func (s *Section) Clone() *Section {
	cp := &Section{
		Selectors:    CloneSelectors(s.Selectors),
		MediaQueries: slices.Clone(s.MediaQueries),
		Extends:      slices.Clone(s.Extends),
		Attributes:   slices.Clone(s.Attributes),
		MixinRefs:    slices.Clone(s.MixinRefs),
		Span:         s.Span,
	}
	if len(s.SubSections) > 0 {
		cp.SubSections = make([]*Section, len(s.SubSections))
		for i, sub := range s.SubSections {
			cp.SubSections[i] = sub.Clone()
		}
	}
	return cp
}

// CloneSelectors deep-copies a selector list.
func CloneSelectors(in []Selector) []Selector {
	if in == nil {
		return nil
	}
	out := make([]Selector, len(in))
	for i, sel := range in {
		out[i] = slices.Clone(sel)
	}
	return out
}
