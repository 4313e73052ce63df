package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"pagecomposer/internal/compose"
	"pagecomposer/internal/models"
)

func TestHashTokenCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{"argument", []string{"s3cret"}, ""},
		{"stdin", nil, "s3cret\n"},
		{"stdin without newline", nil, "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			hashTokenCmd.SetOut(&out)
			hashTokenCmd.SetIn(strings.NewReader(tt.stdin))
			if err := hashTokenCmd.RunE(hashTokenCmd, tt.args); err != nil {
				t.Fatalf("RunE: %v", err)
			}
			hash := strings.TrimSpace(out.String())
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")); err != nil {
				t.Errorf("hash does not match token: %v", err)
			}
		})
	}
}

func TestHashTokenCmd_Empty(t *testing.T) {
	hashTokenCmd.SetIn(strings.NewReader("\n"))
	if err := hashTokenCmd.RunE(hashTokenCmd, nil); err == nil {
		t.Error("expected an error for an empty token")
	}
}

func TestTemplatesCmd(t *testing.T) {
	var out bytes.Buffer
	templatesCmd.SetOut(&out)

	templatesJSON = false
	if err := templatesCmd.RunE(templatesCmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	table := out.String()
	for _, tmpl := range compose.BuiltinTemplates() {
		if !strings.Contains(table, tmpl.ID) {
			t.Errorf("table is missing %s", tmpl.ID)
		}
	}

	out.Reset()
	templatesJSON = true
	t.Cleanup(func() { templatesJSON = false })
	if err := templatesCmd.RunE(templatesCmd, nil); err != nil {
		t.Fatalf("RunE: %v", err)
	}
	var got []models.Template
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(compose.BuiltinTemplates()) {
		t.Errorf("templates = %d", len(got))
	}
}
