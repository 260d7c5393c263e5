package security

import "testing"

func TestPrompt_AllowList(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Allow([]string{"pyapi_access"})
	if !Prompt("pyapi_access") {
		t.Fatal("allow-listed capability must pass")
	}
}

func TestPrompt_DeniesUnknownNonInteractive(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Test runs have no terminal on stdin, so the interactive branch
	// is skipped and the default is deny.
	if stdinIsTerminal() {
		t.Skip("stdin is a terminal")
	}
	if Prompt("unknown_capability") {
		t.Fatal("unknown capability must be denied by default")
	}
}
