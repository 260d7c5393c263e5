package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kristofer/radon/pkg/runtime"
	"github.com/kristofer/radon/pkg/value"
)

const version = "0.1.0"

func main() {
	args := os.Args[1:]
	hidePaths := false

	var script string
	for _, a := range args {
		switch a {
		case "--hide-paths":
			hidePaths = true
		case "version", "-v", "--version":
			fmt.Printf("radon version %s\n", version)
			return
		case "help", "-h", "--help":
			printUsage()
			return
		default:
			if script == "" {
				script = a
			} else {
				fmt.Fprintf(os.Stderr, "Error: unexpected argument %q\n", a)
				printUsage()
				os.Exit(1)
			}
		}
	}

	if script == "" {
		runREPL()
		return
	}
	runFile(script, hidePaths)
}

func printUsage() {
	fmt.Println("radon - a small dynamically-typed scripting language")
	fmt.Println("\nUsage:")
	fmt.Println("  radon                      Start interactive REPL")
	fmt.Println("  radon <file.rn>            Run a script")
	fmt.Println("  radon <file.rn> --hide-paths")
	fmt.Println("                             Run with file paths redacted in errors")
	fmt.Println("  radon version              Show version")
	fmt.Println("  radon help                 Show this help")
}

func runFile(path string, hidePaths bool) {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot read %s: %s\n", path, err)
		os.Exit(1)
	}

	var opts []runtime.RunOption
	if hidePaths {
		opts = append(opts, runtime.WithHiddenPaths())
	}
	_, rerr, _ := runtime.Run(path, string(text), opts...)
	if rerr != nil {
		fmt.Fprintln(os.Stderr, rerr.Error())
		os.Exit(1)
	}
	os.Exit(0)
}

func runREPL() {
	fmt.Printf("radon %s\n", version)
	fmt.Println(`Type "help", "copyright", "credits" or "license" for more information.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(">>> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err, shouldExit := runtime.Run("<stdin>", line)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			continue
		}
		if shouldExit {
			return
		}
		if result != nil && result.Kind() != value.KindNull {
			fmt.Println(result.String())
		}
	}
}
