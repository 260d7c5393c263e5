package rterror

import (
	"strings"
	"testing"
)

// fakeFrame is a minimal Frame chain for traceback tests.
type fakeFrame struct {
	name   string
	entry  *Position
	parent *fakeFrame
}

func (f *fakeFrame) DisplayName() string { return f.name }

func (f *fakeFrame) EntryPosition() (Position, bool) {
	if f.entry == nil {
		return Position{}, false
	}
	return *f.entry, true
}

func (f *fakeFrame) ParentFrame() (Frame, bool) {
	if f.parent == nil {
		return nil, false
	}
	return f.parent, true
}

func TestPositionAdvance(t *testing.T) {
	p := NewPosition("f.rn", 0, 0, 0)
	p = p.Advance('a')
	if p.Line != 0 || p.Column != 1 || p.Index != 1 {
		t.Fatalf("after 'a': %+v", p)
	}
	p = p.Advance('\n')
	if p.Line != 1 || p.Column != 0 || p.Index != 2 {
		t.Fatalf("after newline: %+v", p)
	}
}

func TestPositionRedact(t *testing.T) {
	p := NewPosition("/secret/f.rn", 3, 1, 40)
	r := p.Redact("[REDACTED]")
	if r.File != "[REDACTED]" || r.Line != 3 {
		t.Fatalf("redacted: %+v", r)
	}
}

func TestError_LabelUsesTag(t *testing.T) {
	err := NewTagged("TypeError", Position{}, Position{}, "bad type")
	if got := err.Error(); got != "TypeError: bad type" {
		t.Fatalf("got %q", got)
	}
	err2 := New(KindInvalidSyntax, Position{}, Position{}, "oops")
	if got := err2.Error(); got != "InvalidSyntaxError: oops" {
		t.Fatalf("got %q", got)
	}
}

func TestError_TracebackWalksFrames(t *testing.T) {
	rootEntry := Position{File: "main.rn", Line: 4}
	root := &fakeFrame{name: "<program>"}
	callee := &fakeFrame{name: "f", entry: &rootEntry, parent: root}

	err := NewRuntime(Position{File: "main.rn", Line: 9}, Position{File: "main.rn", Line: 9}, "boom", callee)
	rendered := err.Error()

	if !strings.Contains(rendered, "Traceback (most recent call last):") {
		t.Fatalf("missing header: %q", rendered)
	}
	progIdx := strings.Index(rendered, "in <program>")
	fIdx := strings.Index(rendered, "in f")
	if progIdx == -1 || fIdx == -1 {
		t.Fatalf("missing frames: %q", rendered)
	}
	if progIdx > fIdx {
		t.Fatalf("innermost frame must come last: %q", rendered)
	}
	if !strings.Contains(rendered, "line 10, in f") {
		t.Fatalf("innermost line wrong: %q", rendered)
	}
	if !strings.Contains(rendered, "line 5, in <program>") {
		t.Fatalf("call-site line wrong: %q", rendered)
	}
	if !strings.HasSuffix(rendered, "RTError: boom") {
		t.Fatalf("missing message: %q", rendered)
	}
}
