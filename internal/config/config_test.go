package config

import (
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ListenAddr != "127.0.0.1:8977" {
		t.Fatalf("listen = %q", cfg.App.ListenAddr)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("size = %dx%d, want terminal-driven zeroes", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter || cfg.Features.Verbose || cfg.Logging.Trace {
		t.Fatalf("boolean defaults should be off")
	}
}

func TestLoadArgsEnvOverridesDefaults(t *testing.T) {
	env := []string{
		"TAB_MERGE_CONTROL_LISTEN=0.0.0.0:9000",
		"TAB_MERGE_CONTROL_WIDTH=120",
		"TAB_MERGE_CONTROL_FOOTER=true",
		"TAB_MERGE_CONTROL_TRACE=1",
		"TAB_MERGE_CONTROL_LOG_FILE=/tmp/bridge.log",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ListenAddr != "0.0.0.0:9000" {
		t.Fatalf("listen = %q", cfg.App.ListenAddr)
	}
	if cfg.App.Width != 120 {
		t.Fatalf("width = %d", cfg.App.Width)
	}
	if !cfg.App.ShowFooter || !cfg.Logging.Trace {
		t.Fatalf("env booleans not applied: %+v", cfg)
	}
	if cfg.Logging.FilePath != "/tmp/bridge.log" {
		t.Fatalf("log file = %q", cfg.Logging.FilePath)
	}
}

func TestLoadArgsFlagsBeatEnv(t *testing.T) {
	env := []string{"TAB_MERGE_CONTROL_LISTEN=0.0.0.0:9000", "TAB_MERGE_CONTROL_WIDTH=120"}
	cfg, err := LoadArgs([]string{"-listen", "127.0.0.1:8111", "-width", "90"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.ListenAddr != "127.0.0.1:8111" {
		t.Fatalf("listen = %q, want the flag value", cfg.App.ListenAddr)
	}
	if cfg.App.Width != 90 {
		t.Fatalf("width = %d, want the flag value", cfg.App.Width)
	}
}

func TestLoadArgsRejectsBadValues(t *testing.T) {
	if _, err := LoadArgs([]string{"-listen", "  "}, nil); err == nil {
		t.Fatalf("blank listen address should fail")
	}
	if _, err := LoadArgs([]string{"-width", "-5"}, nil); err == nil {
		t.Fatalf("negative width should fail")
	}
	if _, err := LoadArgs([]string{"-height", "-1"}, nil); err == nil {
		t.Fatalf("negative height should fail")
	}
	if _, err := LoadArgs([]string{"-no-such-flag"}, nil); err == nil {
		t.Fatalf("unknown flag should fail")
	}
}

func TestLoadArgsIgnoresMalformedEnvNumbers(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"TAB_MERGE_CONTROL_WIDTH=wide", "TAB_MERGE_CONTROL_FOOTER=maybe"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 0 {
		t.Fatalf("width = %d, want fallback on a bad value", cfg.App.Width)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("footer should fall back to off")
	}
}

func TestLoadArgsRecordsFlagsAndArgs(t *testing.T) {
	args := []string{"-verbose", "-listen", "127.0.0.1:8222"}
	cfg, err := LoadArgs(args, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.Flags["verbose"] != "true" || cfg.Flags["listen"] != "127.0.0.1:8222" {
		t.Fatalf("flags = %v", cfg.Flags)
	}
	if strings.Join(cfg.Args, " ") != strings.Join(args, " ") {
		t.Fatalf("args = %v", cfg.Args)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	cfg.App.ListenAddr = " "
	if err := Validate(cfg); err == nil {
		t.Fatalf("blank listen address should fail validation")
	}
}
