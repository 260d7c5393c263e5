package value

import (
	"fmt"

	"github.com/kristofer/radon/pkg/rterror"
)

// OperatorFunc is a protocol hook (__constructor__, __add__, __index__,
// …) on a built-in instance. The arguments are the raw operand Values;
// type checking happens inside the hook via its declared arg spec.
type OperatorFunc func(args []Value) *RTResult

// BuiltInInstance hosts one native object behind the language-level
// protocol: an operator table, a method table, and the optional
// display and length hooks. The host state itself lives inside the
// closures the registering class installed — the instance never
// inspects it.
type BuiltInInstance struct {
	base
	ParentClass *BuiltInClass
	ops         map[string]OperatorFunc
	methods     map[string]*BuiltInFunction
	displayHook func() string
	lenHook     func() int
}

func NewBuiltInInstance(class *BuiltInClass) *BuiltInInstance {
	return &BuiltInInstance{
		ParentClass: class,
		ops:         make(map[string]OperatorFunc),
		methods:     make(map[string]*BuiltInFunction),
	}
}

func (i *BuiltInInstance) Kind() Kind                         { return KindBuiltInInstance }
func (i *BuiltInInstance) SetPos(s, e rterror.Position) Value { i.setPos(s, e); return i }
func (i *BuiltInInstance) SetContext(ctx *Context) Value      { i.setContext(ctx); return i }
func (i *BuiltInInstance) Truthy() bool                       { return true }
func (i *BuiltInInstance) Doc() string                        { return i.ParentClass.Doc() }

// String consults the __string_display__ hook when the class installed
// one.
func (i *BuiltInInstance) String() string {
	if i.displayHook != nil {
		return i.displayHook()
	}
	return fmt.Sprintf("<%s instance>", i.ParentClass.Name)
}

// SetOperator installs a protocol hook; called by the registration
// framework (pkg/builtinclass) during construction.
func (i *BuiltInInstance) SetOperator(name string, fn OperatorFunc) { i.ops[name] = fn }

// SetMethod installs a regular method.
func (i *BuiltInInstance) SetMethod(name string, fn *BuiltInFunction) { i.methods[name] = fn }

// SetDisplayHook installs __string_display__.
func (i *BuiltInInstance) SetDisplayHook(fn func() string) { i.displayHook = fn }

// SetLenHook installs __len__.
func (i *BuiltInInstance) SetLenHook(fn func() int) { i.lenHook = fn }

// Operator resolves a protocol hook by reserved name.
func (i *BuiltInInstance) Operator(name string) (OperatorFunc, bool) {
	fn, ok := i.ops[name]
	return fn, ok
}

// Len reports the __len__ hook's result, ok=false when absent.
func (i *BuiltInInstance) Len() (int, bool) {
	if i.lenHook == nil {
		return 0, false
	}
	return i.lenHook(), true
}

// Attr resolves a method on the instance, falling through to the
// parent class's symbol table for anything the instance does not
// carry itself (spec.md §4.5).
func (i *BuiltInInstance) Attr(name string) (Value, bool) {
	if m, ok := i.methods[name]; ok {
		return m, true
	}
	if i.ParentClass.SymbolTable != nil {
		return i.ParentClass.SymbolTable.Get(name)
	}
	return nil, false
}

// MethodNames lists the instance's method names, for dir().
func (i *BuiltInInstance) MethodNames() []string {
	names := make([]string, 0, len(i.methods))
	for k := range i.methods {
		names = append(names, k)
	}
	return names
}

// BuiltInClass is the factory for one kind of host-backed instance.
// NewInstance builds a fully-wired BuiltInInstance around fresh host
// state; the class keeps a symbol table of the prototype's methods so
// dir() can enumerate them without constructing anything.
type BuiltInClass struct {
	base
	Name        string
	DocString   string
	SymbolTable *SymbolTable
	NewInstance func(cls *BuiltInClass) *BuiltInInstance
}

func NewBuiltInClass(name, doc string, newInstance func(cls *BuiltInClass) *BuiltInInstance) *BuiltInClass {
	c := &BuiltInClass{Name: name, DocString: doc, NewInstance: newInstance}
	c.SymbolTable = NewSymbolTable(nil)
	proto := newInstance(c)
	for _, m := range proto.methods {
		c.SymbolTable.Set(m.Name, m)
	}
	return c
}

func (c *BuiltInClass) Kind() Kind                         { return KindBuiltInClass }
func (c *BuiltInClass) SetPos(s, e rterror.Position) Value { c.setPos(s, e); return c }
func (c *BuiltInClass) SetContext(ctx *Context) Value      { c.setContext(ctx); return c }
func (c *BuiltInClass) Truthy() bool                       { return true }
func (c *BuiltInClass) String() string                     { return fmt.Sprintf("<built-in class %s>", c.Name) }
func (c *BuiltInClass) Doc() string                        { return c.DocString }

// Call materializes a BuiltInInstance and runs its __constructor__
// hook with args (spec.md §4.3).
func (c *BuiltInClass) Call(_ Evaluator, args []Value, kwargs map[string]Value, callContext *Context) *RTResult {
	res := NewRTResult()
	if len(kwargs) > 0 {
		return res.Failure(rterror.NewRuntime(c.posStart, c.posEnd,
			"Keyword arguments are not yet supported for built-in functions.", FrameOf(callContext)))
	}
	inst := c.NewInstance(c)
	inst.SetPos(c.posStart, c.posEnd).SetContext(callContext)

	if ctor, ok := inst.Operator("__constructor__"); ok {
		res.Register(ctor(args))
		if res.ShouldReturn() {
			return res
		}
	}
	return res.Success(inst)
}
