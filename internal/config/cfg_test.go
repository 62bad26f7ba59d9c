package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dsrosen6/gnome-monitor-config/internal/manager"
)

func TestInitConfig_CreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gmc", "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("initializing config: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected default config file to be written: %v", err)
	}

	if cfg.Path() != path {
		t.Errorf("expected path %s, got %s", path, cfg.Path())
	}
	if cfg.LabelLinger != 20*time.Second {
		t.Errorf("expected 20s label linger, got %s", cfg.LabelLinger)
	}
	if m, _ := cfg.Method(); m != manager.MethodTemporary {
		t.Errorf("expected temporary default method, got %s", m)
	}
	if l, _ := cfg.Level(); l != slog.LevelInfo {
		t.Errorf("expected info level, got %s", l)
	}
	if want := filepath.Join(filepath.Dir(path), "layouts.toml"); cfg.LayoutFile != want {
		t.Errorf("expected layout file %s, got %s", want, cfg.LayoutFile)
	}

	// A second load reads the file it just wrote.
	again, err := InitConfig(path)
	if err != nil {
		t.Fatalf("reloading config: %v", err)
	}
	if again.LabelLinger != cfg.LabelLinger || again.DefaultMethod != cfg.DefaultMethod {
		t.Errorf("reloaded config differs: %+v vs %+v", again, cfg)
	}
}

func TestInitConfig_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `log_level = "debug"
default_method = "persistent"
label_linger = "5s"
layout_file = "/tmp/screens.toml"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("initializing config: %v", err)
	}

	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("expected debug level, got %s", l)
	}
	if m, _ := cfg.Method(); m != manager.MethodPersistent {
		t.Errorf("expected persistent method, got %s", m)
	}
	if cfg.LabelLinger != 5*time.Second {
		t.Errorf("expected 5s, got %s", cfg.LabelLinger)
	}
	if cfg.LayoutFile != "/tmp/screens.toml" {
		t.Errorf("unexpected layout file %s", cfg.LayoutFile)
	}
}

func TestInitConfig_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`default_method = "persistent"`+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GMC_DEFAULT_METHOD", "verify")
	t.Setenv("GMC_LABEL_LINGER", "1m")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("initializing config: %v", err)
	}

	if m, _ := cfg.Method(); m != manager.MethodVerify {
		t.Errorf("expected env to override method, got %s", m)
	}
	if cfg.LabelLinger != time.Minute {
		t.Errorf("expected env to override linger, got %s", cfg.LabelLinger)
	}
}

func TestInitConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad method": `default_method = "sometimes"`,
		"bad level":  `log_level = "loud"`,
		"negative":   `label_linger = "-1s"`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(data+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}

			if _, err := InitConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestConfig_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg.DefaultMethod = "persistent"
	cfg.LabelLinger = 3 * time.Second
	if err := cfg.Write(); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	again, err := InitConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if again.DefaultMethod != "persistent" || again.LabelLinger != 3*time.Second {
		t.Errorf("written config not read back: %+v", again)
	}
}
