package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const digestA = "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb"

func TestHashCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"quiet", []string{"hash", "-q", " A "}, digestA + "\n"},
		{"verbose", []string{"hash", "A"}, digestA + `  "A" -> "a"` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Execute failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestHashRequiresArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected error without answers")
	}
}

func TestCheckBundledConfig(t *testing.T) {
	path := filepath.Join("..", "..", "assets", "config", "quiz.yaml")

	var out bytes.Buffer
	if err := checkConfig(&out, path, false); err != nil {
		t.Fatalf("checkConfig failed: %v", err)
	}
	if !strings.Contains(out.String(), "6 levels") || !strings.Contains(out.String(), "WARN") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	// 默认配置的摘要都是占位值，严格模式下失败
	if err := checkConfig(&bytes.Buffer{}, path, true); err == nil {
		t.Error("expected strict check to fail on placeholder digests")
	}

	if err := checkConfig(&bytes.Buffer{}, filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
		t.Error("expected error for a missing file")
	}
}
