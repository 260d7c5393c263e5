package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kristofer/radon/pkg/config"
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// requireFunction builds the require built-in as a closure over the
// loaded configuration and the Run entry point — it cannot live in
// pkg/builtin's static table without an import cycle.
func requireFunction(cfg config.Config) *value.BuiltInFunction {
	return value.NewBuiltInFunction("require", []string{"module"}, nil,
		func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
			res := value.NewRTResult()
			start, end := fn.Pos()

			moduleVal, ok := exec.SymbolTable.Get("module")
			if !ok {
				return res.Failure(rterror.NewRuntime(start, end, "Missing module name", value.FrameOf(exec)))
			}
			moduleStr, isStr := moduleVal.(*value.String)
			if !isStr {
				return res.Failure(rterror.NewRuntime(start, end,
					"Second argument must be string", value.FrameOf(exec)))
			}
			module := moduleStr.Value

			var path string
			if cfg.IsStdlib(module) {
				path = cfg.StdlibPath(module)
			} else {
				if filepath.Ext(module) != ".rn" {
					return res.Failure(rterror.NewRuntime(start, end,
						"A Radon script must have a .rn extension", value.FrameOf(exec)))
				}
				resolved := module
				if !filepath.IsAbs(resolved) && exec.ImportCWD != "" {
					resolved = filepath.Join(exec.ImportCWD, resolved)
				}
				// The original resolves the real path only to rejoin its
				// own directory with its own file name — the same file.
				// Preserved as-is.
				abs, aerr := filepath.Abs(resolved)
				if aerr != nil {
					abs = resolved
				}
				path = filepath.Join(filepath.Dir(abs), filepath.Base(abs))
			}

			script, rerr := os.ReadFile(path)
			if rerr != nil {
				return res.Failure(rterror.NewModuleNotFound(start, end,
					fmt.Sprintf("No module named '%s'\n%s", module, rerr), value.FrameOf(exec)))
			}

			// No parent context: the module runs in a fresh program-level
			// context sharing the global symbol table, which is how its
			// top-level names become visible to the caller.
			_, runErr, shouldExit := Run(path, string(script),
				WithEntryPos(start), WithImportCWD(filepath.Dir(path)))
			if runErr != nil {
				return res.Failure(rterror.NewRuntime(start, end,
					fmt.Sprintf("Failed to finish executing script %q\n%s", path, runErr.Error()),
					value.FrameOf(exec)))
			}
			if shouldExit {
				return res.SuccessExit(value.NewNull().SetContext(exec))
			}
			return res.Success(value.NewNull().SetContext(exec))
		})
}

// exitFunction builds the exit built-in: it returns with the exit flag
// set, unwinding every frame without an error.
func exitFunction() *value.BuiltInFunction {
	return value.NewBuiltInFunction("exit", nil, nil,
		func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
			return value.NewRTResult().SuccessExit(value.NewNull().SetContext(exec))
		})
}
