package value

import (
	"testing"

	"github.com/kristofer/radon/pkg/rterror"
)

func TestRTResult_SuccessClearsFlags(t *testing.T) {
	res := NewRTResult()
	res.SuccessBreak()
	if !res.ShouldReturn() {
		t.Fatal("break flag should trip ShouldReturn")
	}
	res.Success(NewInt(1))
	if res.ShouldReturn() {
		t.Fatal("Success must clear every flag")
	}
	if res.Value == nil {
		t.Fatal("Success must carry the value")
	}
}

func TestRTResult_ExactlyOneFlagSet(t *testing.T) {
	pos := rterror.Position{File: "<test>"}
	cases := []struct {
		name string
		set  func(r *RTResult)
	}{
		{"error", func(r *RTResult) { r.Failure(rterror.New(rterror.KindRuntime, pos, pos, "boom")) }},
		{"return", func(r *RTResult) { r.SuccessReturn(NewNull()) }},
		{"break", func(r *RTResult) { r.SuccessBreak() }},
		{"continue", func(r *RTResult) { r.SuccessContinue() }},
		{"continue_outer", func(r *RTResult) { r.SuccessContinueOuter() }},
		{"exit", func(r *RTResult) { r.SuccessExit(NewNull()) }},
	}
	for _, tt := range cases {
		r := NewRTResult()
		tt.set(r)
		if !r.ShouldReturn() {
			t.Fatalf("%s: ShouldReturn false", tt.name)
		}
		count := 0
		if r.Error != nil {
			count++
		}
		if r.FuncReturnValue != nil {
			count++
		}
		if r.LoopShouldBreak {
			count++
		}
		if r.LoopShouldContinue {
			count++
		}
		if r.LoopShouldContinueOuter {
			count++
		}
		if r.ShouldExit {
			count++
		}
		if count != 1 {
			t.Fatalf("%s: expected exactly one flag set, got %d", tt.name, count)
		}
	}
}

func TestRTResult_RegisterPropagatesFlags(t *testing.T) {
	child := NewRTResult()
	child.SuccessReturn(NewInt(42))

	parent := NewRTResult()
	parent.Register(child)
	if !parent.ShouldReturn() {
		t.Fatal("Register must absorb the return flag")
	}
	if parent.FuncReturnValue == nil {
		t.Fatal("Register must absorb the return value")
	}
}

func TestRTResult_RegisterReturnsChildValue(t *testing.T) {
	child := NewRTResult()
	child.Success(NewInt(7))

	parent := NewRTResult()
	v := parent.Register(child)
	if parent.ShouldReturn() {
		t.Fatal("plain value must not trip ShouldReturn")
	}
	n, ok := v.(*Number)
	if !ok || n.Int != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}
