package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/pslog"
)

func TestRootSubcommands(t *testing.T) {
	root := newRootCmd()
	want := []string{"run", "contexts", "crds", "config", "doctor", "version"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected root command to include %s", name)
		}
	}
}

func TestVersionCommandOutput(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(out.String(), "kubedeck") {
		t.Fatalf("unexpected version output: %q", out.String())
	}
}

func TestContextsCommandMock(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"contexts", "--mock", "--config", filepath.Join(t.TempDir(), "config.yaml")})
	if err := root.Execute(); err != nil {
		t.Fatalf("contexts: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "gke") && !strings.Contains(output, "cluster-1") {
		t.Fatalf("expected mock contexts in output:\n%s", output)
	}
	if !strings.Contains(output, "PROVIDER") {
		t.Fatalf("expected table header:\n%s", output)
	}
}

func TestCRDsCommandMock(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"crds", "--mock", "--config", filepath.Join(t.TempDir(), "config.yaml")})
	if err := root.Execute(); err != nil {
		t.Fatalf("crds: %v", err)
	}
	output := out.String()
	if !strings.Contains(output, "cert-manager.io") || !strings.Contains(output, "Certificate") {
		t.Fatalf("expected mock definitions in output:\n%s", output)
	}
	if !strings.Contains(output, "PLURAL") {
		t.Fatalf("expected table header:\n%s", output)
	}
}

func TestConfigCommandWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--output", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("config: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(data), "config_version") {
		t.Fatalf("unexpected config contents:\n%s", data)
	}
}

func TestLogLevelParsing(t *testing.T) {
	cases := map[string]pslog.Level{
		"trace":   pslog.TraceLevel,
		"DEBUG":   pslog.DebugLevel,
		"warning": pslog.WarnLevel,
		"error":   pslog.ErrorLevel,
		"bogus":   pslog.InfoLevel,
		"":        pslog.InfoLevel,
	}
	for input, want := range cases {
		if got := logLevel(input); got != want {
			t.Errorf("logLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
