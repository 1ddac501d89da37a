// Command semver-merge resolves one conflicting version value from the
// command line using the semver merge strategies.
//
// Usage:
//
//	semver-merge resolve 1.2.3 1.3.0                       # prints 1.3.0
//	semver-merge resolve --strategy min --strict=false 1.2.3 1.2.3-beta.1
//	semver-merge resolve --fallback error --prefer-valid=false foo bar
//	semver-merge resolve --config .semver-merge.yaml --missing-theirs 1.2.3
//	semver-merge strategies
//
// Exit status is 0 when a value was selected, 1 on failure, and 3 when
// the strategy defers (continue).
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}
