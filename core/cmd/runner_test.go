package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	coreconfig "github.com/m3rciful/healthmode/core/config"
	coretelegram "github.com/m3rciful/healthmode/core/telegram"
)

type stubConfig struct{ core *coreconfig.Config }

func (s stubConfig) CoreConfig() *coreconfig.Config { return s.core }

type stubApp struct{ opts coretelegram.RunOptions }

func (s stubApp) TelegramRunOptions() (coretelegram.RunOptions, error) { return s.opts, nil }

func TestResolveConfigPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(existing, []byte("telegram: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("HM_CONFIG", "")
	if got, err := ResolveConfigPath("HM_CONFIG", existing); err != nil || got != existing {
		t.Fatalf("existing default: %q, %v", got, err)
	}
	if got, err := ResolveConfigPath("HM_CONFIG", filepath.Join(dir, "absent.yaml")); err != nil || got != "" {
		t.Fatalf("missing default: %q, %v", got, err)
	}
	t.Setenv("HM_CONFIG", "/etc/healthmode.yaml")
	if got, _ := ResolveConfigPath("HM_CONFIG", existing); got != "/etc/healthmode.yaml" {
		t.Fatalf("env override: %q", got)
	}
}

func TestRunWiresLifecycleHooks(t *testing.T) {
	t.Setenv("HM_CONFIG", "")
	var loadedPath string
	var started, stopped bool

	err := Run(Options{
		ConfigEnvVar:      "HM_CONFIG",
		DefaultConfigPath: filepath.Join(t.TempDir(), "absent.yaml"),
		LoadConfig: func(path string) (ConfigCarrier, error) {
			loadedPath = path
			return stubConfig{core: &coreconfig.Config{}}, nil
		},
		Bootstrap: func(ConfigCarrier) (TelegramApp, error) {
			return stubApp{opts: coretelegram.RunOptions{
				OnStart: func(context.Context, coretelegram.Runtime) error { started = true; return nil },
				OnStop:  func(context.Context, coretelegram.Runtime) error { stopped = true; return nil },
			}}, nil
		},
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			return opts.OnStop(ctx, coretelegram.Runtime{})
		},
	})
	if err != nil {
		t.Fatalf("Run() err = %v", err)
	}
	if loadedPath != "" {
		t.Fatalf("env-only mode expected, got path %q", loadedPath)
	}
	if !started || !stopped {
		t.Fatalf("hooks: started=%v stopped=%v", started, stopped)
	}
}

func TestRunRequiresLoaders(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Fatal("missing LoadConfig must fail")
	}
	if err := Run(Options{LoadConfig: func(string) (ConfigCarrier, error) { return nil, nil }}); err == nil {
		t.Fatal("missing Bootstrap must fail")
	}
}
