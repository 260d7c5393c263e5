package value

import "github.com/kristofer/radon/pkg/rterror"

// RTResult is the uniform execution envelope every evaluation step
// returns (spec.md §4.1): a value, an error, and the control-flow
// flags that drive early unwinding for return/break/continue/
// continue_outer/exit. It is a plain mutable record; it never fails.
type RTResult struct {
	Value                   Value
	Error                   *rterror.Error
	FuncReturnValue         Value
	LoopShouldContinue      bool
	LoopShouldContinueOuter bool
	LoopShouldBreak         bool
	ShouldExit              bool
}

// NewRTResult returns a cleared envelope.
func NewRTResult() *RTResult { return &RTResult{} }

func (r *RTResult) reset() {
	r.Value = nil
	r.Error = nil
	r.FuncReturnValue = nil
	r.LoopShouldContinue = false
	r.LoopShouldContinueOuter = false
	r.LoopShouldBreak = false
	r.ShouldExit = false
}

// Register absorbs child's error and control-flow flags into r and
// hands back child's value, so a visitor can write
//
//	v := res.Register(r.visit(node, ctx))
//	if res.ShouldReturn() { return res }
//
// between every step.
func (r *RTResult) Register(child *RTResult) Value {
	r.Error = child.Error
	r.FuncReturnValue = child.FuncReturnValue
	r.LoopShouldContinue = child.LoopShouldContinue
	r.LoopShouldContinueOuter = child.LoopShouldContinueOuter
	r.LoopShouldBreak = child.LoopShouldBreak
	r.ShouldExit = child.ShouldExit
	return child.Value
}

// Success clears every flag and carries v.
func (r *RTResult) Success(v Value) *RTResult {
	r.reset()
	r.Value = v
	return r
}

// SuccessReturn marks a `return v` unwinding through enclosing forms.
func (r *RTResult) SuccessReturn(v Value) *RTResult {
	r.reset()
	r.FuncReturnValue = v
	return r
}

// SuccessContinue marks a `continue`.
func (r *RTResult) SuccessContinue() *RTResult {
	r.reset()
	r.LoopShouldContinue = true
	return r
}

// SuccessContinueOuter marks a `continue_outer`.
func (r *RTResult) SuccessContinueOuter() *RTResult {
	r.reset()
	r.LoopShouldContinueOuter = true
	return r
}

// SuccessBreak marks a `break`.
func (r *RTResult) SuccessBreak() *RTResult {
	r.reset()
	r.LoopShouldBreak = true
	return r
}

// SuccessExit marks an `exit()`; unlike an error it unwinds every
// frame without being reported.
func (r *RTResult) SuccessExit(v Value) *RTResult {
	r.reset()
	r.Value = v
	r.ShouldExit = true
	return r
}

// Failure carries err.
func (r *RTResult) Failure(err *rterror.Error) *RTResult {
	r.reset()
	r.Error = err
	return r
}

// ShouldReturn reports whether evaluation must stop unwinding the
// current form: an error or any control-flow flag is set. A bare
// expression value never trips it.
func (r *RTResult) ShouldReturn() bool {
	return r.Error != nil ||
		r.FuncReturnValue != nil ||
		r.LoopShouldContinue ||
		r.LoopShouldContinueOuter ||
		r.LoopShouldBreak ||
		r.ShouldExit
}
