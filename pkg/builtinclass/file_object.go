package builtinclass

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

type fileState struct {
	path   string
	file   *os.File
	closed bool
}

func (s *fileState) close() error {
	if s.closed || s.file == nil {
		return nil
	}
	s.closed = true
	return s.file.Close()
}

// FileClass exposes host files: File(path, mode="r") with read, write,
// close and is_closed; there is no readline method. The handle is released by close() or,
// failing that, by the finalizer when the instance is collected.
func FileClass() *value.BuiltInClass {
	return newClass("File", "Built-in file object: File(path, mode=\"r\").", func(inst *value.BuiltInInstance) {
		state := &fileState{}

		inst.SetOperator("__constructor__", func(args []value.Value) *value.RTResult {
			checked, err := CheckArgs("File", []value.Kind{value.KindString, value.KindString},
				[]value.Value{nil, value.NewString("r")}, args)
			if err != nil {
				return value.NewRTResult().Failure(err)
			}
			path := checked[0].(*value.String).Value
			mode := checked[1].(*value.String).Value

			var f *os.File
			var oerr error
			switch mode {
			case "r":
				f, oerr = os.Open(path)
			case "w":
				f, oerr = os.Create(path)
			case "a":
				f, oerr = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			case "r+":
				f, oerr = os.OpenFile(path, os.O_RDWR, 0o644)
			default:
				return value.NewRTResult().Failure(rterror.NewRuntime(
					argPos(args), argPos(args),
					fmt.Sprintf("Invalid file mode %q", mode), nil))
			}
			if oerr != nil {
				return value.NewRTResult().Failure(rterror.NewRuntime(
					argPos(args), argPos(args),
					fmt.Sprintf("Failed to open file %q: %s", path, oerr), nil))
			}
			state.path = path
			state.file = f
			// Scoped release: close() is the contract, the finalizer is
			// the backstop when a script drops the handle without it.
			runtime.SetFinalizer(state, func(s *fileState) { _ = s.close() })
			return value.NewRTResult().Success(value.NewNull())
		})

		inst.SetDisplayHook(func() string { return fmt.Sprintf("<File %s>", state.path) })

		inst.SetMethod("read", method("read", nil, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				if state.closed || state.file == nil {
					return fileClosedErr(fn, exec, state.path)
				}
				data, rerr := io.ReadAll(state.file)
				if rerr != nil {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						fmt.Sprintf("Failed to read file %q: %s", state.path, rerr), value.FrameOf(exec)))
				}
				return value.NewRTResult().Success(value.NewString(string(data)))
			}))
		inst.SetMethod("write", method("write", []string{"data"}, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				if state.closed || state.file == nil {
					return fileClosedErr(fn, exec, state.path)
				}
				data, err := stringArg(fn, exec, "data", "Cannot write a non-string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				n, werr := state.file.WriteString(data)
				if werr != nil {
					start, end := fn.Pos()
					return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
						fmt.Sprintf("Failed to write file %q: %s", state.path, werr), value.FrameOf(exec)))
				}
				return value.NewRTResult().Success(value.NewInt(int64(n)))
			}))
		inst.SetMethod("close", method("close", nil, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				_ = state.close()
				return value.NewRTResult().Success(value.NewNull())
			}))
		inst.SetMethod("is_closed", method("is_closed", nil, nil,
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				return value.NewRTResult().Success(value.NewBoolean(state.closed))
			}))
	})
}

func fileClosedErr(fn *value.BuiltInFunction, exec *value.Context, path string) *value.RTResult {
	start, end := fn.Pos()
	return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
		fmt.Sprintf("I/O operation on closed file %q", path), value.FrameOf(exec)))
}

// argPos picks a position for constructor errors from the first
// operand when one exists.
func argPos(args []value.Value) rterror.Position {
	if len(args) > 0 {
		start, _ := args[0].Pos()
		return start
	}
	return rterror.Position{}
}
