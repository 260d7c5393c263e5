package builtin

import (
	"fmt"
	"os"
	"strconv"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

func ioBuiltins() []Builtin {
	return []Builtin{
		{
			Name: "print", ArgNames: []string{"value"},
			Doc:     "print(value) writes value's display form to stdout with a trailing newline.",
			Handler: execPrint,
		},
		{
			Name: "print_ret", ArgNames: []string{"value"},
			Doc:     "print_ret(value) returns value's display form as a string; no I/O.",
			Handler: execPrintRet,
		},
		{
			Name: "input", ArgNames: []string{"value"},
			Doc:     "input(prompt) writes prompt and reads one line from stdin.",
			Handler: execInput,
		},
		{
			Name: "input_int", ArgNames: []string{},
			Doc:     "input_int() reads lines from stdin until one parses as an integer.",
			Handler: execInputInt,
		},
		{
			Name: "clear", ArgNames: []string{},
			Doc:     "clear() clears the terminal.",
			Handler: execClear,
		},
		{
			Name: "help", ArgNames: []string{"obj"},
			Doc:     "help(obj) prints obj's self-documentation.",
			Handler: execHelp,
		},
		{
			Name: "license", ArgNames: []string{},
			Doc:     "license() prints the interpreter's LICENSE text.",
			Handler: execLicense,
		},
		{
			Name: "credits", ArgNames: []string{},
			Doc:     "credits() prints the project credits.",
			Handler: execCredits,
		},
		{
			Name: "copyright", ArgNames: []string{},
			Doc:     "copyright() prints the copyright notice.",
			Handler: execCopyright,
		},
	}
}

func execPrint(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	fmt.Fprintln(Stdout, arg(exec, "value").String())
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execPrintRet(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	s := value.NewString(arg(exec, "value").String()).SetContext(exec)
	return value.NewRTResult().Success(s)
}

func execInput(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	fmt.Fprint(Stdout, arg(exec, "value").String())
	line, err := readLine()
	if err != nil {
		start, end := fn.Pos()
		return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
			"Failed to read from stdin", value.FrameOf(exec)))
	}
	return value.NewRTResult().Success(value.NewString(line).SetContext(exec))
}

func execInputInt(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	for {
		line, err := readLine()
		if err != nil {
			start, end := fn.Pos()
			return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
				"Failed to read from stdin", value.FrameOf(exec)))
		}
		n, perr := strconv.ParseInt(line, 10, 64)
		if perr != nil {
			fmt.Fprintf(Stdout, "'%s' must be an integer. Try again!\n", line)
			continue
		}
		return value.NewRTResult().Success(value.NewInt(n).SetContext(exec))
	}
}

func execClear(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	fmt.Fprint(Stdout, "\033[H\033[2J")
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execHelp(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	obj := arg(exec, "obj")
	if obj.Kind() == value.KindNull {
		start, end := fn.Pos()
		return value.NewRTResult().Failure(rterror.NewTaggedCtx("TypeError", start, end,
			"Argument is null", value.FrameOf(exec)))
	}
	doc := obj.Doc()
	if doc == "" {
		doc = obj.String()
	}
	fmt.Fprintln(Stdout, doc)
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execLicense(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	text, err := os.ReadFile("LICENSE")
	if err != nil {
		start, end := fn.Pos()
		return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
			"Failed to read LICENSE", value.FrameOf(exec)))
	}
	fmt.Fprintln(Stdout, string(text))
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execCredits(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	fmt.Fprintln(Stdout, "Project by Md. Almas Ali (github.com/Almas-Ali)")
	fmt.Fprintln(Stdout, "Contributors:\n\tangelcaru (github.com/angelcaru)\n\tVardan2009 (github.com/Vardan2009)")
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}

func execCopyright(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
	fmt.Fprintln(Stdout, "Copyright (c) 2023-2024 Radon Software Foundation.\nAll Rights Reserved.")
	return value.NewRTResult().Success(value.NewNull().SetContext(exec))
}
