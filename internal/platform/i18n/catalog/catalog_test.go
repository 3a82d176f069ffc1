package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedHasExpectedLocales(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	for _, locale := range []string{BaseLocale, "pt-BR"} {
		if !bundle.HasLocale(locale) {
			t.Fatalf("expected locale %s", locale)
		}
	}
	if got, ok := bundle.Message("pt-BR", "templateadmin.button.no"); !ok || got != "Não" {
		t.Fatalf("pt-BR no button = %q (%v)", got, ok)
	}
}

func TestEmbeddedLocalesShareKeys(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	base := bundle.locales[BaseLocale]
	for _, locale := range bundle.Locales() {
		for key := range base {
			if _, ok := bundle.locales[locale][key]; !ok {
				t.Fatalf("locale %s is missing key %q", locale, key)
			}
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	tempDir := t.TempDir()
	mustWriteFile(t, filepath.Join(tempDir, "locales/en-US/templateadmin.yaml"), `locale: "en-US"
namespace: "templateadmin"
messages:
  "templateadmin.only_base": "base"
`)
	mustWriteFile(t, filepath.Join(tempDir, "locales/pt-BR/templateadmin.yaml"), `locale: "pt-BR"
namespace: "templateadmin"
messages:
  "templateadmin.other": "outro"
`)

	bundle, err := LoadFromFS(os.DirFS(tempDir))
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	if got, ok := bundle.Message("pt-BR", "templateadmin.only_base"); !ok || got != "base" {
		t.Fatalf("fallback message = %q (%v), want base", got, ok)
	}
}

func TestLoadFromFSRejectsInvalidCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name: "locale_mismatch",
			path: "locales/en-US/templateadmin.yaml",
			content: `locale: "pt-BR"
namespace: "templateadmin"
messages:
  "templateadmin.a": "a"
`,
		},
		{
			name: "key_outside_namespace",
			path: "locales/en-US/templateadmin.yaml",
			content: `locale: "en-US"
namespace: "templateadmin"
messages:
  "core.a": "a"
`,
		},
		{
			name: "missing_base_locale",
			path: "locales/pt-BR/templateadmin.yaml",
			content: `locale: "pt-BR"
namespace: "templateadmin"
messages:
  "templateadmin.a": "a"
`,
		},
		{
			name:    "not_yaml",
			path:    "locales/en-US/templateadmin.yaml",
			content: "locale: [unterminated",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tempDir := t.TempDir()
			mustWriteFile(t, filepath.Join(tempDir, tc.path), tc.content)
			if _, err := LoadFromFS(os.DirFS(tempDir)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func mustWriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
