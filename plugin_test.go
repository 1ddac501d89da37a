package semvermerge

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestStrategiesOrder(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []string{StrategyMax, StrategyMin, StrategyOurs, StrategyTheirs}
	got := p.Strategies()
	if len(got) != len(want) {
		t.Fatalf("Strategies() returned %d entries, want %d", len(got), len(want))
	}
	for i, ns := range got {
		if ns.Name != want[i] {
			t.Errorf("Strategies()[%d] = %q, want %q", i, ns.Name, want[i])
		}
		if ns.Strategy == nil {
			t.Errorf("Strategies()[%d] has nil strategy", i)
		}
	}

	// Mutating the returned slice does not affect the registry.
	got[0].Name = "changed"
	if p.Strategies()[0].Name != StrategyMax {
		t.Error("Strategies() exposed the internal table")
	}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{StrategyMax, StrategyMin, StrategyOurs, StrategyTheirs} {
		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) not found", name)
		}
	}
	if _, ok := Lookup("semver-latest"); ok {
		t.Error("Lookup(semver-latest) found an unregistered strategy")
	}
}

func TestNewOptions(t *testing.T) {
	p, err := New(
		WithStrict(false),
		WithFallback(FallbackError),
		WithPreferValid(false),
		WithPreferRange(true),
		WithWorkspacePattern("workspaces:*"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := Config{
		Strict:           false,
		Fallback:         FallbackError,
		PreferValid:      false,
		PreferRange:      true,
		WorkspacePattern: "workspaces:*",
	}
	if got := p.Config(); got != want {
		t.Errorf("Config() = %+v, want %+v", got, want)
	}
}

func TestNewDefaults(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := p.Config(); got != DefaultConfig() {
		t.Errorf("Config() = %+v, want %+v", got, DefaultConfig())
	}
}

func TestNewRejectsUnknownFallback(t *testing.T) {
	_, err := New(WithFallback("sometimes"))
	if !errors.Is(err, ErrUnknownFallback) {
		t.Errorf("New(WithFallback(sometimes)) error = %v, want ErrUnknownFallback", err)
	}

	_, err = New(WithConfig(Config{Strict: true}))
	if !errors.Is(err, ErrUnknownFallback) {
		t.Errorf("New(WithConfig(empty fallback)) error = %v, want ErrUnknownFallback", err)
	}
}

func TestInitMergesFieldByField(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	p.Init(PartialConfig{Strict: boolPtr(false)})
	p.Init(PartialConfig{Fallback: strPtr("error")})

	got := p.Config()
	want := Config{Strict: false, Fallback: FallbackError, PreferValid: true}
	if got != want {
		t.Errorf("Config() after two Init calls = %+v, want %+v", got, want)
	}

	// Reserved options are accepted without changing decisions.
	p.Init(PartialConfig{PreferRange: boolPtr(true), WorkspacePattern: strPtr("workspaces:*")})
	out, err := p.Resolve(StrategyMin, "1.2.3", "1.2.3-beta.1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusOK || out.Value != "1.2.3-beta.1" {
		t.Errorf("Resolve(min) = %v, want ok(1.2.3-beta.1)", out)
	}
}

func TestInitUnknownFallbackBecomesContinue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := New(WithLogger(logger), WithFallback(FallbackError))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	cfg := p.Init(PartialConfig{Fallback: strPtr("explode"), PreferValid: boolPtr(false)})
	if cfg.Fallback != FallbackContinue {
		t.Errorf("Init() Fallback = %q, want continue", cfg.Fallback)
	}
	if !strings.Contains(buf.String(), "unknown fallback action") {
		t.Errorf("expected a warning in the log, got %q", buf.String())
	}

	out, err := p.Resolve(StrategyMax, "foo", "bar")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusContinue {
		t.Errorf("Resolve() = %v, want continue", out)
	}
}

func TestInitFallbackCaseInsensitive(t *testing.T) {
	p, _ := New()
	if cfg := p.Init(PartialConfig{Fallback: strPtr("  Theirs ")}); cfg.Fallback != FallbackTheirs {
		t.Errorf("Init() Fallback = %q, want theirs", cfg.Fallback)
	}
}

func TestPluginResolveUnknownStrategy(t *testing.T) {
	p, _ := New()
	if _, err := p.Resolve("semver-latest", "1.0.0", "2.0.0"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Resolve(semver-latest) error = %v, want ErrUnknownStrategy", err)
	}
	if _, err := p.Bind("semver-latest"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Bind(semver-latest) error = %v, want ErrUnknownStrategy", err)
	}
	if _, err := Resolve("semver-latest", "1.0.0", "2.0.0", DefaultConfig()); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("package Resolve(semver-latest) error = %v, want ErrUnknownStrategy", err)
	}
}

func TestBindKeepsSnapshot(t *testing.T) {
	p, _ := New()
	maxFn, err := p.Bind(StrategyMax)
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}

	p.Init(PartialConfig{PreferValid: boolPtr(false), Fallback: strPtr("error")})

	// The bound function still uses preferValid=true.
	if out := maxFn("1.2.3", "banana"); out.Status != StatusOK || out.Value != "1.2.3" {
		t.Errorf("bound max = %v, want ok(1.2.3)", out)
	}

	// The plugin itself sees the new configuration.
	out, _ := p.Resolve(StrategyMax, "1.2.3", "banana")
	if out.Status != StatusFail || out.Reason != ReasonNoValidSemver {
		t.Errorf("Resolve(max) = %v, want fail", out)
	}
}

func TestPackageResolveNormalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fallback = "whatever"
	cfg.PreferValid = false

	out, err := Resolve(StrategyOurs, "foo", "bar", cfg)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if out.Status != StatusContinue {
		t.Errorf("Resolve() = %v, want continue", out)
	}
}

func TestConcurrentResolveAndInit(t *testing.T) {
	p, _ := New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if i == 0 && j%10 == 0 {
					p.Init(PartialConfig{Strict: boolPtr(j%20 == 0)})
				}
				out, err := p.Resolve(StrategyMax, "1.2.3", "1.3.0")
				if err != nil || out.Status != StatusOK || out.Value != "1.3.0" {
					t.Errorf("Resolve() = %v, %v", out, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}
