package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestBuildErrorKeepsMessage(t *testing.T) {
	inner := fmt.Errorf("unexpected token")
	err := NewBuildError(KindCompiler, "App.vue", inner)

	if err.Error() != "unexpected token" {
		t.Errorf("Error() = %q, want %q", err.Error(), "unexpected token")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() should reach the wrapped error")
	}
	if KindOf(fmt.Errorf("wrapped: %w", err)) != KindCompiler {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindCompiler)
	}
	if KindOf(inner) != 0 {
		t.Errorf("KindOf() on plain error should be 0")
	}
}

func TestStructuralMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "missing script",
			err:      MissingScriptError("App.vue"),
			sentinel: ErrMissingScript,
			want:     "vuejs: target component 'App.vue' must have a <script> section",
		},
		{
			name:     "unsupported lang",
			err:      UnsupportedStyleLangError("App.vue", "less"),
			sentinel: ErrUnsupportedStyleLang,
			want:     "vuejs: target 'App.vue' requires unsupported <style> lang attribute 'less'",
		},
		{
			name:     "bad extension",
			err:      InvalidExtensionError("App.js"),
			sentinel: ErrInvalidExtension,
			want:     "vuejs: target 'App.js' must have .vue extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v) = false", tt.sentinel)
			}
		})
	}
}
