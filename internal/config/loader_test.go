package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edupipe.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoaderDefaults(t *testing.T) {
	path := writeConfig(t, `
version: "1"
platform:
  id: acme
transport:
  lrs:
    url: https://lrs.example/xapi/statements
    username: key
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	cfg := l.Config()

	if cfg.Platform.App != "acme" {
		t.Errorf("Platform.App = %q, want fallback to id", cfg.Platform.App)
	}
	if cfg.Engine.Workers != 16 {
		t.Errorf("Engine.Workers = %d, want default 16", cfg.Engine.Workers)
	}
	if cfg.Engine.QueueDepth != 4096 {
		t.Errorf("Engine.QueueDepth = %d, want default 4096", cfg.Engine.QueueDepth)
	}
	if cfg.Engine.EmitTimeoutMs != 5000 {
		t.Errorf("Engine.EmitTimeoutMs = %d, want default 5000", cfg.Engine.EmitTimeoutMs)
	}
	if cfg.Transport.TimeoutMs != 10000 {
		t.Errorf("Transport.TimeoutMs = %d, want default 10000", cfg.Transport.TimeoutMs)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoaderExpandsEnv(t *testing.T) {
	t.Setenv("TEST_LRS_PASSWORD", "s3cret")
	path := writeConfig(t, `
version: "1"
platform:
  id: acme
transport:
  lrs:
    url: https://lrs.example/xapi/statements
    username: key
    password: ${TEST_LRS_PASSWORD}
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}
	if got := l.Config().Transport.LRS.Password; got != "s3cret" {
		t.Errorf("Password = %q, want expanded env value", got)
	}
}

func TestLoaderReloadNotifies(t *testing.T) {
	path := writeConfig(t, `
version: "1"
platform:
  id: acme
transport:
  caliper:
    url: https://events.example/caliper
`)
	l, err := NewLoader(path)
	if err != nil {
		t.Fatalf("NewLoader: %v", err)
	}

	var seen *Config
	l.OnChange(func(cfg *Config) { seen = cfg })

	if err := os.WriteFile(path, []byte(`
version: "2"
platform:
  id: acme
transport:
  caliper:
    url: https://events.example/caliper
`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := l.Reload()
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if cfg.Version != "2" {
		t.Errorf("Version = %q, want 2", cfg.Version)
	}
	if seen == nil || seen.Version != "2" {
		t.Error("OnChange callback not invoked with new config")
	}
	if l.Config() != cfg {
		t.Error("Config() should return the reloaded config")
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "missing platform id",
			cfg: Config{
				Version:   "1",
				Transport: TransportConf{Caliper: CaliperConf{URL: "https://x"}},
			},
			want: "platform.id",
		},
		{
			name: "no endpoint",
			cfg:  Config{Version: "1", Platform: PlatformConf{ID: "acme"}},
			want: "transport.lrs.url or transport.caliper.url",
		},
		{
			name: "lrs url without username",
			cfg: Config{
				Version:   "1",
				Platform:  PlatformConf{ID: "acme"},
				Transport: TransportConf{LRS: LRSConf{URL: "https://x"}},
			},
			want: "transport.lrs.username",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.cfg)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}
