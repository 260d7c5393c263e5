package builtinclass

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/value"
)

// httpClient sends every request; I/O-bearing built-ins block the
// interpreter for their duration (spec.md §5), so a plain client with
// no timeout matches the original's behavior.
var httpClient = http.DefaultClient

// RequestsClass is the blocking HTTP client: Requests() with get(url,
// headers={}) and post(url, data="", headers={}), both returning the
// response body as a string.
func RequestsClass() *value.BuiltInClass {
	return newClass("Requests", "Built-in HTTP client: get(url, headers={}) and post(url, data=\"\", headers={}).", func(inst *value.BuiltInInstance) {
		inst.SetOperator("__constructor__", func(args []value.Value) *value.RTResult {
			if _, err := CheckArgs("Requests", nil, nil, args); err != nil {
				return value.NewRTResult().Failure(err)
			}
			return value.NewRTResult().Success(value.NewNull())
		})

		inst.SetMethod("get", method("get", []string{"url", "headers"},
			[]value.Value{nil, value.NewHashMap()},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				url, err := stringArg(fn, exec, "url", "URL must be a string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				req, herr := http.NewRequest(http.MethodGet, url, nil)
				if herr != nil {
					return requestErr(fn, exec, url, herr)
				}
				if err := applyHeaders(fn, exec, req); err != nil {
					return value.NewRTResult().Failure(err)
				}
				return doRequest(fn, exec, req)
			}))

		inst.SetMethod("post", method("post", []string{"url", "data", "headers"},
			[]value.Value{nil, value.NewString(""), value.NewHashMap()},
			func(fn *value.BuiltInFunction, _ value.Evaluator, exec *value.Context) *value.RTResult {
				url, err := stringArg(fn, exec, "url", "URL must be a string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				data, err := stringArg(fn, exec, "data", "POST data must be a string")
				if err != nil {
					return value.NewRTResult().Failure(err)
				}
				req, herr := http.NewRequest(http.MethodPost, url, strings.NewReader(data))
				if herr != nil {
					return requestErr(fn, exec, url, herr)
				}
				if err := applyHeaders(fn, exec, req); err != nil {
					return value.NewRTResult().Failure(err)
				}
				return doRequest(fn, exec, req)
			}))
	})
}

func applyHeaders(fn *value.BuiltInFunction, exec *value.Context, req *http.Request) *rterror.Error {
	v, ok := exec.SymbolTable.Get("headers")
	if !ok {
		return nil
	}
	headers, isMap := v.(*value.HashMap)
	if !isMap {
		start, end := fn.Pos()
		return rterror.NewRuntime(start, end, "Headers must be a hashmap", value.FrameOf(exec))
	}
	for _, e := range headers.Entries() {
		key, keyOk := e[0].(*value.String)
		val, valOk := e[1].(*value.String)
		if !keyOk || !valOk {
			start, end := fn.Pos()
			return rterror.NewRuntime(start, end, "Header names and values must be strings", value.FrameOf(exec))
		}
		req.Header.Set(key.Value, val.Value)
	}
	return nil
}

func doRequest(fn *value.BuiltInFunction, exec *value.Context, req *http.Request) *value.RTResult {
	resp, err := httpClient.Do(req)
	if err != nil {
		return requestErr(fn, exec, req.URL.String(), err)
	}
	defer resp.Body.Close()
	body, rerr := io.ReadAll(resp.Body)
	if rerr != nil {
		return requestErr(fn, exec, req.URL.String(), rerr)
	}
	return value.NewRTResult().Success(value.NewString(string(body)))
}

func requestErr(fn *value.BuiltInFunction, exec *value.Context, url string, err error) *value.RTResult {
	start, end := fn.Pos()
	return value.NewRTResult().Failure(rterror.NewRuntime(start, end,
		fmt.Sprintf("Request to %q failed: %s", url, err), value.FrameOf(exec)))
}
