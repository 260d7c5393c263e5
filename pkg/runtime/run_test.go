package runtime_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kristofer/radon/pkg/builtin"
	"github.com/kristofer/radon/pkg/rterror"
	"github.com/kristofer/radon/pkg/runtime"
	"github.com/kristofer/radon/pkg/value"
)

// captureStdout swaps the built-ins' output stream for the duration of
// one test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := builtin.Stdout
	builtin.Stdout = &buf
	t.Cleanup(func() { builtin.Stdout = old })
	return &buf
}

func TestRun_Print(t *testing.T) {
	out := captureStdout(t)
	v, err, _ := runtime.Run("<test>", `print("hi")`)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "hi\n" {
		t.Fatalf("stdout = %q", out.String())
	}
	if v.Kind() != value.KindNull {
		t.Fatalf("print result = %v", v)
	}
}

func TestRun_PrintIntCast(t *testing.T) {
	out := captureStdout(t)
	_, err, _ := runtime.Run("<test>", `print(int("42")+1)`)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "43\n" {
		t.Fatalf("stdout = %q", out.String())
	}
}

func TestRun_ArrChunk(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "let chunk_input = [1,2,3,4,5]\narr_chunk(chunk_input, 2)")
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != "[[1, 2], [3, 4], [5]]" {
		t.Fatalf("got %s", got)
	}
}

func TestRun_ArrChunkConcatEqualsInput(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "arr_chunk([1,2,3,4,5,6,7], 3)")
	if err != nil {
		t.Fatal(err)
	}
	chunks := v.(*value.Array)
	var flat []value.Value
	for _, c := range chunks.Elements {
		inner := c.(*value.Array)
		if len(inner.Elements) > 3 {
			t.Fatalf("chunk too long: %s", inner.String())
		}
		flat = append(flat, inner.Elements...)
	}
	if len(flat) != 7 {
		t.Fatalf("concatenation length = %d", len(flat))
	}
	for i, el := range flat {
		if el.(*value.Number).Int != int64(i+1) {
			t.Fatalf("flat[%d] = %v", i, el)
		}
	}
}

func TestRun_StringClassUpper(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "let upper_s = String(\"Hello\")\nupper_s.upper()")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.String).Value != "HELLO" {
		t.Fatalf("got %q", v.String())
	}
}

func TestRun_RequireMissingModule(t *testing.T) {
	_, err, _ := runtime.Run("<test>", `require("not_a_module.rn")`)
	if err == nil {
		t.Fatal("expected RNModuleNotFoundError")
	}
	if err.Kind != rterror.KindModuleNotFound {
		t.Fatalf("kind = %s", err.Kind)
	}
	if !strings.Contains(err.Message, "No module named 'not_a_module.rn'") {
		t.Fatalf("message = %q", err.Message)
	}
}

func TestRun_RequireWrongExtension(t *testing.T) {
	_, err, _ := runtime.Run("<test>", `require("module.txt")`)
	if err == nil || !strings.Contains(err.Message, "A Radon script must have a .rn extension") {
		t.Fatalf("got %v", err)
	}
}

func TestRun_RequireInstallsNames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mymod.rn")
	script := "let required_export = 42\nfun required_fn(x) -> x * 2"
	if werr := os.WriteFile(path, []byte(script), 0o644); werr != nil {
		t.Fatal(werr)
	}

	src := "require(\"" + path + "\")\nrequired_fn(required_export)"
	v, err, _ := runtime.Run("<test>", src)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Number).Int != 84 {
		t.Fatalf("got %v", v)
	}
}

func TestRun_RequireReturnsNull(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.rn")
	if werr := os.WriteFile(path, []byte("let nothing_here = 1"), 0o644); werr != nil {
		t.Fatal(werr)
	}
	v, err, _ := runtime.Run("<test>", "require(\""+path+"\")")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != value.KindNull {
		t.Fatalf("require result = %v", v)
	}
}

func TestRun_RequireWrapsScriptError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.rn")
	if werr := os.WriteFile(path, []byte("undefined_name"), 0o644); werr != nil {
		t.Fatal(werr)
	}
	_, err, _ := runtime.Run("<test>", "require(\""+path+"\")")
	if err == nil || !strings.Contains(err.Message, "Failed to finish executing script") {
		t.Fatalf("got %v", err)
	}
}

func TestRun_ExitPropagates(t *testing.T) {
	out := captureStdout(t)
	_, err, shouldExit := runtime.Run("<test>", "fun quits() { exit() }\nquits()\nprint(\"after\")")
	if err != nil {
		t.Fatal(err)
	}
	if !shouldExit {
		t.Fatal("exit flag must propagate out of the call")
	}
	if strings.Contains(out.String(), "after") {
		t.Fatal("statements after exit must not run")
	}
}

func TestRun_ExitPropagatesThroughRequire(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quitter.rn")
	if werr := os.WriteFile(path, []byte("exit()"), 0o644); werr != nil {
		t.Fatal(werr)
	}
	_, err, shouldExit := runtime.Run("<test>", "require(\""+path+"\")")
	if err != nil {
		t.Fatal(err)
	}
	if !shouldExit {
		t.Fatal("exit must propagate through require")
	}
}

func TestRun_HidePathsRedactsErrors(t *testing.T) {
	_, err, _ := runtime.Run("/secret/location.rn", "undefined_name", runtime.WithHiddenPaths())
	if err == nil {
		t.Fatal("expected NameError")
	}
	if strings.Contains(err.Error(), "/secret/location.rn") {
		t.Fatalf("path leaked: %s", err.Error())
	}
	if !strings.Contains(err.Error(), "[REDACTED]") {
		t.Fatalf("sentinel missing: %s", err.Error())
	}
}

func TestRun_SyntaxErrorShortCircuits(t *testing.T) {
	_, err, shouldExit := runtime.Run("<test>", "let = 3")
	if err == nil || err.Kind != rterror.KindInvalidSyntax {
		t.Fatalf("got %v", err)
	}
	if shouldExit {
		t.Fatal("syntax error must not set exit")
	}
}

func TestRun_TypePredicatesAndCasts(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"is_num(1)", "true"},
		{"is_int(1)", "true"},
		{"is_int(1.5)", "false"},
		{"is_float(1.5)", "true"},
		{"is_str(\"x\")", "true"},
		{"is_bool(true)", "true"},
		{"is_array([1])", "true"},
		{"is_fun(print)", "true"},
		{"is_null(null)", "true"},
		{"bool(0)", "false"},
		{"bool(\"\")", "false"},
		{"bool([])", "false"},
		{"bool(\"x\")", "true"},
		{"str(42)", "42"},
		{"float(2)", "2.0"},
		{"int(\"7\") + 1", "8"},
	}
	for _, tt := range cases {
		v, err, _ := runtime.Run("<test>", tt.src)
		if err != nil {
			t.Fatalf("%s: %v", tt.src, err)
		}
		if v.String() != tt.want {
			t.Errorf("%s = %s, want %s", tt.src, v.String(), tt.want)
		}
	}
}

func TestRun_LenDispatch(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{`len("hello")`, 5},
		{"len([1,2,3])", 3},
		{`len(String("four"))`, 4},
		{`len({"a": 1, "b": 2})`, 2},
	}
	for _, tt := range cases {
		v, err, _ := runtime.Run("<test>", tt.src)
		if err != nil {
			t.Fatalf("%s: %v", tt.src, err)
		}
		if v.(*value.Number).Int != tt.want {
			t.Errorf("%s = %v, want %d", tt.src, v, tt.want)
		}
	}

	_, err, _ := runtime.Run("<test>", "len(1)")
	if err == nil || err.Tag != "TypeError" {
		t.Fatalf("len(1) error = %v", err)
	}
}

func TestRun_LenUserLenHook(t *testing.T) {
	src := `class Sized {
	fun __constructor__(n) {
		this.n = n
	}
	fun __len__() -> this.n
}
len(Sized(9))`
	v, err, _ := runtime.Run("<test>", src)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Number).Int != 9 {
		t.Fatalf("got %v", v)
	}
}

func TestRun_StringHelpers(t *testing.T) {
	v, err, _ := runtime.Run("<test>", `str_find("hello", "ll")`)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Number).Int != 2 {
		t.Fatalf("str_find = %v", v)
	}

	v, err, _ = runtime.Run("<test>", `str_get("hello", 1)`)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.String).Value != "e" {
		t.Fatalf("str_get = %q", v.String())
	}

	_, err, _ = runtime.Run("<test>", `str_get("hi", 99)`)
	if err == nil {
		t.Fatal("out-of-bounds str_get must fail")
	}
}

func TestRun_ArrayHelpersMutateInPlace(t *testing.T) {
	src := `let helper_arr = [1, 2]
arr_append(helper_arr, 3)
arr_extend(helper_arr, [4, 5])
arr_pop(helper_arr, 0)
helper_arr`
	v, err, _ := runtime.Run("<test>", src)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "[2, 3, 4, 5]" {
		t.Fatalf("got %s", v.String())
	}
}

func TestRun_ArrPopDefaultsToLast(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "let pop_arr = [1, 2, 3]\narr_pop(pop_arr)")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Number).Int != 3 {
		t.Fatalf("got %v", v)
	}
}

func TestRun_PrintRetNoIO(t *testing.T) {
	out := captureStdout(t)
	v, err, _ := runtime.Run("<test>", "print_ret(12)")
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("print_ret wrote %q", out.String())
	}
	if v.(*value.String).Value != "12" {
		t.Fatalf("got %v", v)
	}
}

func TestRun_TimeNowIsFloat(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "time_now()")
	if err != nil {
		t.Fatal(err)
	}
	n := v.(*value.Number)
	if n.IsInt || n.Float <= 0 {
		t.Fatalf("time_now = %v", v)
	}
}

func TestRun_TypeBuiltin(t *testing.T) {
	v, err, _ := runtime.Run("<test>", "type(1)")
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != value.KindType {
		t.Fatalf("got %v", v)
	}
}

func TestRun_KwargsRejectedForBuiltins(t *testing.T) {
	_, err, _ := runtime.Run("<test>", "print(value: 1)")
	if err == nil || !strings.Contains(err.Message, "Keyword arguments are not yet supported") {
		t.Fatalf("got %v", err)
	}
}

func TestRun_PyAPIDeniedByDefault(t *testing.T) {
	_, err, _ := runtime.Run("<test>", `pyapi("1+1", {})`)
	if err == nil {
		t.Fatal("pyapi must be denied in non-interactive runs")
	}
	if !strings.Contains(err.Message, "pyapi_access") {
		t.Fatalf("got %v", err)
	}
}

func TestRun_JsonRoundTrip(t *testing.T) {
	src := `let parser_j = Json()
let parsed = parser_j.parse("{\"a\": [1, 2], \"b\": \"x\"}")
parsed["a"][1]`
	v, err, _ := runtime.Run("<test>", src)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.Number).Int != 2 {
		t.Fatalf("got %v", v)
	}

	v, err, _ = runtime.Run("<test>", `Json().stringify([1, "two"])`)
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.String).Value != `[1,"two"]` {
		t.Fatalf("stringify = %q", v.String())
	}
}

func TestRun_FileReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	src := "let wf = File(\"" + path + "\", \"w\")\nwf.write(\"hello file\")\nwf.close()\nwf.is_closed()"
	v, err, _ := runtime.Run("<test>", src)
	if err != nil {
		t.Fatal(err)
	}
	if !v.(*value.Boolean).Value {
		t.Fatal("is_closed must report true after close")
	}

	v, err, _ = runtime.Run("<test>", "File(\""+path+"\").read()")
	if err != nil {
		t.Fatal(err)
	}
	if v.(*value.String).Value != "hello file" {
		t.Fatalf("read back %q", v.String())
	}
}

func TestRun_DirOnModuleSorted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dirmod.rn")
	script := `let zeta = 1
let alpha = 2
fun mfunc() -> 1
class MClass {
	fun __constructor__() {
		this.x = 0
	}
}`
	if werr := os.WriteFile(path, []byte(script), 0o644); werr != nil {
		t.Fatal(werr)
	}
	// The module's names land in the shared global scope; dir() over a
	// reified Module sees the same table.
	if _, err, _ := runtime.Run("<test>", "require(\""+path+"\")"); err != nil {
		t.Fatal(err)
	}

	table := runtime.GlobalSymbolTable()
	module := value.NewModule("dirmod", table)

	exec := value.NewContext("<dir>", nil, nil)
	exec.SymbolTable = value.NewSymbolTable(nil)
	exec.SymbolTable.Set("obj", module)

	dirFnVal, ok := table.Get("dir")
	if !ok {
		t.Fatal("dir builtin missing")
	}
	res := dirFnVal.(*value.BuiltInFunction).Call(nil, []value.Value{module}, nil, exec)
	if res.Error != nil {
		t.Fatal(res.Error)
	}
	names := res.Value.(*value.Array)

	var got []string
	for _, el := range names.Elements {
		got = append(got, el.(*value.String).Value)
	}
	indexOf := func(s string) int {
		for i, g := range got {
			if g == s {
				return i
			}
		}
		return -1
	}
	for _, want := range []string{"alpha", "zeta", "mfunc", "MClass"} {
		if indexOf(want) == -1 {
			t.Fatalf("dir output missing %q: %v", want, got)
		}
	}
	// Partition order: variables before functions before classes; each
	// partition sorted.
	if !(indexOf("alpha") < indexOf("zeta")) {
		t.Fatalf("variables unsorted: %v", got)
	}
	if !(indexOf("zeta") < indexOf("mfunc") && indexOf("mfunc") < indexOf("MClass")) {
		t.Fatalf("partition order wrong: %v", got)
	}
	for _, reserved := range []string{"true", "false", "null"} {
		if indexOf(reserved) != -1 {
			t.Fatalf("%q must be excluded from dir: %v", reserved, got)
		}
	}
}

func TestRun_DirRejectsPrimitives(t *testing.T) {
	_, err, _ := runtime.Run("<test>", "dir(1)")
	if err == nil || err.Tag != "TypeError" {
		t.Fatalf("got %v", err)
	}
}

func TestRun_HelpPrintsDoc(t *testing.T) {
	out := captureStdout(t)
	_, err, _ := runtime.Run("<test>", "help(String)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "String") {
		t.Fatalf("help output = %q", out.String())
	}
}

func TestGlobalSymbolTable_StableNames(t *testing.T) {
	table := runtime.GlobalSymbolTable()
	names := []string{
		"null", "true", "false", "print", "print_ret", "input", "input_int",
		"clear", "cls", "require", "exit", "len",
		"is_num", "is_int", "is_float", "is_str", "is_bool", "is_array", "is_fun", "is_null",
		"arr_append", "arr_pop", "arr_extend", "arr_len", "arr_chunk", "arr_get",
		"str_len", "str_find", "str_get",
		"int", "float", "str", "bool", "type",
		"pyapi", "time_now", "license", "credits", "copyright", "help", "dir",
		"File", "String", "Json", "Requests", "builtins",
	}
	for _, n := range names {
		if _, ok := table.Get(n); !ok {
			t.Errorf("global %q missing", n)
		}
	}
}

func TestGlobalSymbolTable_Singleton(t *testing.T) {
	if runtime.GlobalSymbolTable() != runtime.GlobalSymbolTable() {
		t.Fatal("global symbol table must be a process singleton")
	}
}
