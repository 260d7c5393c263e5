package value

import "github.com/kristofer/radon/pkg/rterror"

// Context is the runtime scope record (spec.md §4.2): a display name,
// an optional parent Context, the position at which this Context was
// entered (for traceback rendering), an import-CWD (used by require to
// resolve relative module paths), and a SymbolTable.
//
// A Context tree is finite and acyclic by construction: every child
// Context is created with an explicit parent and never mutates it.
type Context struct {
	DisplayNameValue string
	Parent           *Context
	EntryPos         *rterror.Position
	ImportCWD        string
	SymbolTable      *SymbolTable
}

// NewContext builds a Context. entryPos may be nil (the root context
// has no call site).
func NewContext(displayName string, parent *Context, entryPos *rterror.Position) *Context {
	return &Context{DisplayNameValue: displayName, Parent: parent, EntryPos: entryPos}
}

// FrameOf converts a possibly-nil *Context into an rterror.Frame
// without producing a typed-nil interface.
func FrameOf(ctx *Context) rterror.Frame {
	if ctx == nil {
		return nil
	}
	return ctx
}

// DisplayName implements rterror.Frame.
func (c *Context) DisplayName() string { return c.DisplayNameValue }

// EntryPosition implements rterror.Frame.
func (c *Context) EntryPosition() (rterror.Position, bool) {
	if c.EntryPos == nil {
		return rterror.Position{}, false
	}
	return *c.EntryPos, true
}

// ParentFrame implements rterror.Frame.
func (c *Context) ParentFrame() (rterror.Frame, bool) {
	if c.Parent == nil {
		return nil, false
	}
	return c.Parent, true
}
