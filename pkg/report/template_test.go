package report

import (
	"os"
	"path/filepath"
	"testing"

	errs "github.com/realassist/crimereport/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()

	if err := tmpl.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if tmpl.Brand != "RealAssist Property" || tmpl.FileName != "report.pdf" {
		t.Errorf("template = %+v", tmpl)
	}
	if tmpl.CaptureScale != 5 || tmpl.Band != DefaultBand {
		t.Errorf("capture scale %v band %+v", tmpl.CaptureScale, tmpl.Band)
	}

	tmpl.RuleColors[0] = Color{1, 2, 3}
	if DefaultRuleColors[0] != (Color{148, 0, 211}) {
		t.Error("DefaultTemplate shares the rule color slice")
	}
}

func TestLoadTemplate(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		wantBrand string
		wantLeft  string
		wantRules int
	}{
		{
			name: "toml",
			file: "brand.toml",
			content: `brand = "Acme Realty"
left_header = "Acme"
rule_colors = [[255, 0, 0], [0, 255, 0]]
`,
			wantBrand: "Acme Realty",
			wantLeft:  "Acme",
			wantRules: 2,
		},
		{
			name: "yaml",
			file: "brand.yaml",
			content: `brand: Acme Realty
date_color: [10, 20, 30]
`,
			wantBrand: "Acme Realty",
			wantLeft:  DefaultLeftHeader,
			wantRules: 3,
		},
		{
			name:      "empty yml",
			file:      "brand.yml",
			content:   "",
			wantBrand: DefaultBrand,
			wantLeft:  DefaultLeftHeader,
			wantRules: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := LoadTemplate(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("LoadTemplate() error: %v", err)
			}
			if tmpl.Brand != tt.wantBrand || tmpl.LeftHeader != tt.wantLeft {
				t.Errorf("brand %q left %q, want %q %q", tmpl.Brand, tmpl.LeftHeader, tt.wantBrand, tt.wantLeft)
			}
			if len(tmpl.RuleColors) != tt.wantRules {
				t.Errorf("got %d rule colors, want %d", len(tmpl.RuleColors), tt.wantRules)
			}
			if tmpl.RightHeader != DefaultRightHeader {
				t.Errorf("RightHeader = %q, want default", tmpl.RightHeader)
			}
		})
	}
}

func TestLoadTemplateYAMLColor(t *testing.T) {
	tmpl, err := LoadTemplate(writeFile(t, "c.yaml", "date_color: [10, 20, 30]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if tmpl.DateColor != (Color{10, 20, 30}) {
		t.Errorf("DateColor = %v", tmpl.DateColor)
	}
}

func TestLoadTemplateEmptyPath(t *testing.T) {
	tmpl, err := LoadTemplate("")
	if err != nil || tmpl.Brand != DefaultBrand {
		t.Errorf("LoadTemplate(\"\") = %+v, %v", tmpl, err)
	}
}

func TestLoadTemplateErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "none.toml") }},
		{"unknown format", func(t *testing.T) string { return writeFile(t, "brand.json", "{}") }},
		{"bad toml", func(t *testing.T) string { return writeFile(t, "brand.toml", "brand = ") }},
		{"bad color", func(t *testing.T) string { return writeFile(t, "brand.toml", "rule_colors = [[300, 0, 0]]\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplate(tt.path(t))
			if !errs.Is(err, errs.ErrCodeInvalidTemplate) {
				t.Errorf("LoadTemplate() error = %v, want INVALID_TEMPLATE", err)
			}
		})
	}
}
