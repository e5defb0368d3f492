// Package scope holds variable bindings as frames in an arena. Each frame
// records the index of its parent; a child frame lives until Release.
package scope

import (
	"fmt"

	"bssc/internal/ast"
)

// FrameID indexes a frame; 0 is "no frame".
type FrameID uint32

type frame struct {
	parent FrameID
	vars   map[string]ast.Expr
}

// Frames owns every frame of one compilation.
type Frames struct {
	arena *ast.Arena[frame]
}

// Scope is a handle to one frame.
type Scope struct {
	frames *Frames
	id     FrameID
}

// NewRoot creates the frame arena and its root scope.
func NewRoot() Scope {
	f := &Frames{arena: ast.NewArena[frame](4)}
	id := FrameID(f.arena.Allocate(frame{vars: map[string]ast.Expr{}}))
	return Scope{frames: f, id: id}
}

// ID returns the frame index of s.
func (s Scope) ID() FrameID { return s.id }

// Child pushes a new frame whose parent is s.
func (s Scope) Child() Scope {
	id := FrameID(s.frames.arena.Allocate(frame{parent: s.id, vars: map[string]ast.Expr{}}))
	return Scope{frames: s.frames, id: id}
}

// Release pops s and every frame allocated after it. Releasing the root
// panics.
func (s Scope) Release() {
	if s.frames.arena.Get(uint32(s.id)).parent == 0 {
		panic("scope: root frame cannot be released")
	}
	s.frames.arena.Truncate(uint32(s.id) - 1)
}

// Set binds name in this frame, shadowing outer bindings.
func (s Scope) Set(name string, value ast.Expr) {
	s.frame().vars[name] = value
}

// Has reports whether name is bound in this frame or an outer one.
func (s Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup walks outward to the root.
func (s Scope) Lookup(name string) (ast.Expr, bool) {
	for id := s.id; id != 0; {
		f := s.frames.arena.Get(uint32(id))
		if v, ok := f.vars[name]; ok {
			return v, true
		}
		id = f.parent
	}
	return nil, false
}

// Get returns the binding of name, or an empty Value when unbound.
func (s Scope) Get(name string) ast.Expr {
	if v, ok := s.Lookup(name); ok {
		return v
	}
	return ast.Empty()
}

// names returns the names bound directly in this frame.
func (s Scope) names() []string {
	vars := s.frame().vars
	out := make([]string, 0, len(vars))
	for k := range vars {
		out = append(out, k)
	}
	return out
}

func (s Scope) frame() *frame {
	f := s.frames.arena.Get(uint32(s.id))
	if f == nil {
		panic(fmt.Sprintf("scope: frame %d was released", s.id))
	}
	return f
}
