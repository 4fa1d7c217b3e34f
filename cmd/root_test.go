package cmd

import (
	"testing"

	"github.com/ytget/img2pdf/internal/config"
)

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd("test")

	tests := []struct {
		name     string
		expected string
	}{
		{"config", config.DefaultConfigPath()},
		{"backend", ""},
		{"log-level", "4"},
	}

	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		if flag == nil {
			t.Errorf("Flag --%s not registered", tt.name)
			continue
		}
		if flag.DefValue != tt.expected {
			t.Errorf("Flag --%s default = %q, expected %q", tt.name, flag.DefValue, tt.expected)
		}
	}
}

func TestNewRootCmd_ParsesOverrides(t *testing.T) {
	cmd := NewRootCmd("test")
	if err := cmd.ParseFlags([]string{"--backend", "/usr/bin/img2pdf-backend", "--log-level", "2"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	if v, _ := cmd.Flags().GetString("backend"); v != "/usr/bin/img2pdf-backend" {
		t.Errorf("backend = %q", v)
	}
	if v, _ := cmd.Flags().GetInt("log-level"); v != 2 {
		t.Errorf("log-level = %d", v)
	}
	if !cmd.Flags().Changed("log-level") {
		t.Error("log-level should be marked as changed")
	}
}
