package rterror

import (
	"fmt"
	"strings"
)

// Kind tags the category of an Error. spec.md §7 lists the stable set;
// "Error" is the generic tag-bearing kind used for TypeError, NameError,
// IndexError and friends (the Tag field carries the specific name).
type Kind string

const (
	KindInvalidSyntax      Kind = "InvalidSyntaxError"
	KindExpectedChar       Kind = "ExpectedCharError"
	KindIllegalChar        Kind = "IllegalCharError"
	KindRuntime            Kind = "RTError"
	KindModuleNotFound     Kind = "RNModuleNotFoundError"
	KindGeneric            Kind = "Error"
)

// Frame is the minimal view of a call/module Context an Error needs to
// render a traceback, without rterror importing the value package
// (which itself needs to construct Errors). pkg/value.Context implements
// this interface.
type Frame interface {
	DisplayName() string
	EntryPosition() (Position, bool)
	ParentFrame() (Frame, bool)
}

// Error is a typed runtime/syntax error: a start/end Position, a Kind,
// a human message, and an optional Tag (the concrete TypeError/NameError/
// etc. name when Kind is KindGeneric), plus the Context the error was
// raised in so a traceback can be rendered one frame per ancestor
// Context (spec.md §6, "Error wire form").
type Error struct {
	Start   Position
	End     Position
	Kind    Kind
	Tag     string
	Message string
	Context Frame
}

// New builds an Error with no attached Context (used by the lexer and
// parser, which run before any Context exists).
func New(kind Kind, start, end Position, message string) *Error {
	return &Error{Kind: kind, Start: start, End: end, Message: message}
}

// NewTagged builds a generic-kind Error carrying a specific tag such as
// "TypeError" or "NameError".
func NewTagged(tag string, start, end Position, message string) *Error {
	return &Error{Kind: KindGeneric, Tag: tag, Start: start, End: end, Message: message}
}

// NewTaggedCtx is NewTagged with an attached Context for traceback
// rendering.
func NewTaggedCtx(tag string, start, end Position, message string, ctx Frame) *Error {
	return &Error{Kind: KindGeneric, Tag: tag, Start: start, End: end, Message: message, Context: ctx}
}

// NewRuntime builds an RTError with an attached Context, the kind
// produced by nearly every built-in and call-protocol failure.
func NewRuntime(start, end Position, message string, ctx Frame) *Error {
	return &Error{Kind: KindRuntime, Start: start, End: end, Message: message, Context: ctx}
}

// NewModuleNotFound builds an RNModuleNotFoundError.
func NewModuleNotFound(start, end Position, message string, ctx Frame) *Error {
	return &Error{Kind: KindModuleNotFound, Start: start, End: end, Message: message, Context: ctx}
}

// label returns the wire-form error name: the Kind, or Tag when Kind is
// the generic bucket.
func (e *Error) label() string {
	if e.Kind == KindGeneric && e.Tag != "" {
		return e.Tag
	}
	return string(e.Kind)
}

// Error implements the standard error interface and also doubles as
// the traceback renderer described in spec.md §6:
//
//	<Traceback>
//	File <fn>, line <L>, in <ctx_name>
//	  ...
//	<ErrorKind>: <message>
//
// with one frame per Context ancestor, innermost frame last.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Context != nil {
		b.WriteString(e.traceback())
	}
	b.WriteString(fmt.Sprintf("%s: %s", e.label(), e.Message))
	return b.String()
}

// traceback renders one "File ..., line ..., in ..." line per ancestor
// Context, oldest first, mirroring the teacher's RuntimeError.Error()
// frame-walking loop in pkg/vm/errors.go (reversed there because the
// VM's call stack grows the opposite direction).
func (e *Error) traceback() string {
	type line struct {
		pos  Position
		name string
	}
	var lines []line
	pos := e.Start
	ctx := e.Context
	for ctx != nil {
		lines = append(lines, line{pos: pos, name: ctx.DisplayName()})
		if entryPos, ok := ctx.EntryPosition(); ok {
			pos = entryPos
		}
		next, ok := ctx.ParentFrame()
		if !ok {
			break
		}
		ctx = next
	}

	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for i := len(lines) - 1; i >= 0; i-- {
		b.WriteString(fmt.Sprintf("  File %s, line %d, in %s\n", lines[i].pos.File, lines[i].pos.Line+1, lines[i].name))
	}
	return b.String()
}
