// Package security is the single interception point for
// capability-bearing primitives (spec.md §4.7). The only capability
// tag today is "pyapi_access", consulted by the pyapi built-in.
package security

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var allowed = map[string]bool{}

// Allow pre-approves capability tags; pkg/runtime feeds it the
// configured allow-list at bootstrap.
func Allow(capabilities []string) {
	for _, c := range capabilities {
		allowed[c] = true
	}
}

// Reset clears every prior Allow, for tests.
func Reset() { allowed = map[string]bool{} }

// Prompt decides whether capability may be exercised: an allow-listed
// tag passes; otherwise the operator is asked when stdin is a
// terminal; non-interactive runs deny by default.
func Prompt(capability string) bool {
	if allowed[capability] {
		return true
	}
	if !stdinIsTerminal() {
		return false
	}
	fmt.Fprintf(os.Stderr, "Allow capability %q? [y/N] ", capability)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	if answer == "y" || answer == "yes" {
		allowed[capability] = true
		return true
	}
	return false
}

func stdinIsTerminal() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
