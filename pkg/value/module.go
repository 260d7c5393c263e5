package value

import (
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
)

// Module is the reification of a require()d script: its name and the
// symbol table its program-level context ended up with.
type Module struct {
	base
	Name        string
	SymbolTable *SymbolTable
}

func NewModule(name string, table *SymbolTable) *Module {
	return &Module{Name: name, SymbolTable: table}
}

func (m *Module) Kind() Kind                         { return KindModule }
func (m *Module) SetPos(s, e rterror.Position) Value { m.setPos(s, e); return m }
func (m *Module) SetContext(ctx *Context) Value      { m.setContext(ctx); return m }
func (m *Module) Truthy() bool                       { return true }
func (m *Module) String() string                     { return fmt.Sprintf("<module %s>", m.Name) }
func (m *Module) Doc() string                        { return fmt.Sprintf("<module %s>", m.Name) }

// PyAPI is the host-bridge payload: a snippet of host code handed to
// the pyapi primitive. This build carries the value so the security
// gate and error plumbing stay exercised, without an attached bridge.
type PyAPI struct {
	base
	Code string
}

func NewPyAPI(code string) *PyAPI { return &PyAPI{Code: code} }

func (p *PyAPI) Kind() Kind                         { return KindPyAPI }
func (p *PyAPI) SetPos(s, e rterror.Position) Value { p.setPos(s, e); return p }
func (p *PyAPI) SetContext(ctx *Context) Value      { p.setContext(ctx); return p }
func (p *PyAPI) Truthy() bool                       { return true }
func (p *PyAPI) String() string                     { return "<pyapi>" }
