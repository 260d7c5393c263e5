package value

import (
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
)

// Class is a user-defined class: a name and a symbol table holding its
// methods (and any class-level attributes). The table's parent is the
// defining context's table, so method bodies can still reach globals.
type Class struct {
	base
	Name        string
	SymbolTable *SymbolTable
}

func NewClass(name string, table *SymbolTable) *Class {
	return &Class{Name: name, SymbolTable: table}
}

func (c *Class) Kind() Kind                         { return KindClass }
func (c *Class) SetPos(s, e rterror.Position) Value { c.setPos(s, e); return c }
func (c *Class) SetContext(ctx *Context) Value      { c.setContext(ctx); return c }
func (c *Class) Truthy() bool                       { return true }
func (c *Class) String() string                     { return fmt.Sprintf("<class %s>", c.Name) }

func (c *Class) Doc() string {
	if doc, ok := c.SymbolTable.Get("__doc__"); ok {
		return doc.String()
	}
	return fmt.Sprintf("<class %s>", c.Name)
}

// Call constructs an Instance, runs __constructor__ when the class
// declares one, and yields the instance (spec.md §4.3).
func (c *Class) Call(ev Evaluator, args []Value, kwargs map[string]Value, callContext *Context) *RTResult {
	res := NewRTResult()

	inst := NewInstance(c)
	inst.SetPos(c.posStart, c.posEnd).SetContext(callContext)

	if ctor, ok := c.SymbolTable.Get("__constructor__"); ok {
		fn, isFn := ctor.(*Function)
		if !isFn {
			return res.Failure(rterror.NewRuntime(c.posStart, c.posEnd,
				fmt.Sprintf("__constructor__ of class %s is not a function", c.Name), FrameOf(callContext)))
		}
		res.Register(fn.Bind(inst.Ctx).Call(ev, args, kwargs, callContext))
		if res.ShouldReturn() {
			return res
		}
	} else if len(args) > 0 || len(kwargs) > 0 {
		return res.Failure(rterror.NewRuntime(c.posStart, c.posEnd,
			fmt.Sprintf("too many args passed into '%s'", c.Name), FrameOf(callContext)))
	}
	return res.Success(inst)
}

// Instance is a user-class instance. Its symbol table chains to the
// class's, so attribute lookup falls through instance → class; the
// instance Context carries `this` for bound methods.
type Instance struct {
	base
	ParentClass *Class
	SymbolTable *SymbolTable
	Ctx         *Context
}

func NewInstance(class *Class) *Instance {
	inst := &Instance{ParentClass: class}
	inst.SymbolTable = NewSymbolTable(class.SymbolTable)
	inst.Ctx = NewContext(fmt.Sprintf("<%s instance>", class.Name), class.Context(), nil)
	inst.Ctx.SymbolTable = inst.SymbolTable
	if parent := class.Context(); parent != nil {
		inst.Ctx.ImportCWD = parent.ImportCWD
	}
	inst.SymbolTable.Set("this", inst)
	return inst
}

func (i *Instance) Kind() Kind                         { return KindInstance }
func (i *Instance) SetPos(s, e rterror.Position) Value { i.setPos(s, e); return i }
func (i *Instance) SetContext(ctx *Context) Value      { i.setContext(ctx); return i }
func (i *Instance) Truthy() bool                       { return true }

func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.ParentClass.Name)
}

// Attr resolves name through instance then class, binding Functions
// to the instance context on the way out.
func (i *Instance) Attr(name string) (Value, bool) {
	v, ok := i.SymbolTable.Get(name)
	if !ok {
		return nil, false
	}
	if fn, isFn := v.(*Function); isFn {
		return fn.Bind(i.Ctx), true
	}
	return v, true
}

// Operator resolves one of the reserved __op__ hook names, bound to
// the instance, or ok=false when the class does not define it.
func (i *Instance) Operator(name string) (*Function, bool) {
	v, ok := i.SymbolTable.Get(name)
	if !ok {
		return nil, false
	}
	fn, isFn := v.(*Function)
	if !isFn {
		return nil, false
	}
	return fn.Bind(i.Ctx), true
}
