package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	semvermerge "github.com/albertocavalcante/go-semver-merge"
	"github.com/albertocavalcante/go-semver-merge/config"
)

// Exit codes beyond the usual 0/1.
const (
	exitFail     = 1
	exitContinue = 3
)

// exitError carries a non-zero exit status whose message, if any, has
// already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type resolveFlags struct {
	strategy         string
	strict           bool
	fallback         string
	preferValid      bool
	preferRange      bool
	workspacePattern string
	configPath       string
	missingOurs      bool
	missingTheirs    bool
	verbose          bool
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "semver-merge",
		Short:         "Resolve conflicting version strings",
		Long:          "Decides which of two conflicting version values survives a merge, using semantic version precedence and a configurable fallback.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newResolveCmd())
	root.AddCommand(newStrategiesCmd())
	return root
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the registered strategy keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := semvermerge.New()
			if err != nil {
				return err
			}
			for _, ns := range p.Strategies() {
				fmt.Fprintln(cmd.OutOrStdout(), ns.Name)
			}
			return nil
		},
	}
}

func newResolveCmd() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve [OURS] [THEIRS]",
		Short: "Pick the surviving version of a conflict",
		Long: `Runs one strategy over the ours and theirs values and prints the selected value.

Strategies: max, min, ours, theirs (or the full semver-* keys).
Use --missing-ours or --missing-theirs when a side is absent; the remaining
positional argument is the other side.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, f, args)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.strategy, "strategy", "s", "max", "strategy: max, min, ours or theirs")
	fs.BoolVar(&f.strict, "strict", true, "accept only MAJOR.MINOR.PATCH")
	fs.StringVar(&f.fallback, "fallback", string(semvermerge.FallbackContinue), "action when no valid version decides: ours, theirs, continue or error")
	fs.BoolVar(&f.preferValid, "prefer-valid", true, "take the only valid side when exactly one is valid")
	fs.BoolVar(&f.preferRange, "prefer-range", false, "reserved for range merging")
	fs.StringVar(&f.workspacePattern, "workspace-pattern", "", "reserved workspace rule pattern")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML or JSON file with plugin options")
	fs.BoolVar(&f.missingOurs, "missing-ours", false, "treat ours as absent")
	fs.BoolVar(&f.missingTheirs, "missing-theirs", false, "treat theirs as absent")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log decisions to stderr")

	return cmd
}

func runResolve(cmd *cobra.Command, f resolveFlags, args []string) error {
	ours, theirs, err := candidates(f, args)
	if err != nil {
		return err
	}

	name, err := strategyKey(f.strategy)
	if err != nil {
		return err
	}

	var opts []semvermerge.Option
	if f.verbose {
		opts = append(opts, semvermerge.WithLogger(newLogger(cmd.ErrOrStderr())))
	}
	p, err := semvermerge.New(opts...)
	if err != nil {
		return err
	}

	if f.configPath != "" {
		partial, err := config.LoadFile(f.configPath)
		if err != nil {
			return err
		}
		p.Init(partial)
	}

	update, err := flagOverrides(cmd, f)
	if err != nil {
		return err
	}
	if !update.IsEmpty() {
		p.Init(update)
	}

	out, err := p.Resolve(name, ours, theirs)
	if err != nil {
		return err
	}

	switch out.Status {
	case semvermerge.StatusOK:
		if out.Value != nil {
			fmt.Fprintln(cmd.OutOrStdout(), out.Value)
		}
		return nil
	case semvermerge.StatusFail:
		fmt.Fprintln(cmd.ErrOrStderr(), out.Reason)
		return &exitError{code: exitFail}
	default:
		return &exitError{code: exitContinue}
	}
}

// candidates maps positional arguments onto ours and theirs, leaving a
// side nil when it is marked missing.
func candidates(f resolveFlags, args []string) (ours, theirs any, err error) {
	want := 2
	if f.missingOurs {
		want--
	}
	if f.missingTheirs {
		want--
	}
	if len(args) != want {
		return nil, nil, fmt.Errorf("expected %d version argument(s), got %d", want, len(args))
	}

	rest := args
	if !f.missingOurs {
		ours, rest = rest[0], rest[1:]
	}
	if !f.missingTheirs {
		theirs = rest[0]
	}
	return ours, theirs, nil
}

// strategyKey accepts short names and full registration keys.
func strategyKey(s string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(name, "semver-") {
		name = "semver-" + name
	}
	if _, ok := semvermerge.Lookup(name); !ok {
		return "", fmt.Errorf("%w: %q", semvermerge.ErrUnknownStrategy, s)
	}
	return name, nil
}

// flagOverrides collects the flags the user set explicitly, so they win
// over the config file while unset flags leave it alone.
func flagOverrides(cmd *cobra.Command, f resolveFlags) (semvermerge.PartialConfig, error) {
	var p semvermerge.PartialConfig
	fs := cmd.Flags()

	if fs.Changed("strict") {
		p.Strict = &f.strict
	}
	if fs.Changed("fallback") {
		a, err := semvermerge.ParseFallback(f.fallback)
		if err != nil {
			return p, err
		}
		s := string(a)
		p.Fallback = &s
	}
	if fs.Changed("prefer-valid") {
		p.PreferValid = &f.preferValid
	}
	if fs.Changed("prefer-range") {
		p.PreferRange = &f.preferRange
	}
	if fs.Changed("workspace-pattern") {
		p.WorkspacePattern = &f.workspacePattern
	}
	return p, nil
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
