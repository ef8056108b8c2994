package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	errs "github.com/realassist/crimereport/pkg/errors"
)

// Fixed template values.
const (
	DefaultLeftHeader   = "RealAssist.AI"
	DefaultRightHeader  = "123 Main Street, Denver, NH 02820-4007"
	DefaultBrand        = "RealAssist Property"
	DefaultCaptureScale = 5.0

	// FileName is the name every exported report is delivered under.
	FileName = "report.pdf"
)

// DefaultRuleColors are the decorative rule segments, left to right.
var DefaultRuleColors = []Color{
	{148, 0, 211},
	{75, 0, 130},
	{0, 0, 255},
}

// Template is the fixed page template. All lengths are in millimetres, font
// sizes in points.
type Template struct {
	LeftHeader  string
	RightHeader string
	Brand       string

	Margin       float64
	HeaderY      float64 // header baseline
	SeparatorY   float64 // rule under the header band
	FooterOffset float64 // footer baseline, from the page bottom
	RuleOffset   float64 // decorative rule, from the page bottom
	LineWidth    float64

	HeaderSize      float64
	RightHeaderSize float64
	FooterSize      float64

	DateColor     Color
	ContrastColor Color
	RuleColors    []Color

	Band         Band
	CaptureScale float64
	FileName     string
}

// DefaultTemplate returns the standard report template.
func DefaultTemplate() Template {
	return Template{
		LeftHeader:      DefaultLeftHeader,
		RightHeader:     DefaultRightHeader,
		Brand:           DefaultBrand,
		Margin:          10,
		HeaderY:         20,
		SeparatorY:      25,
		FooterOffset:    10,
		RuleOffset:      15,
		LineWidth:       0.5,
		HeaderSize:      14,
		RightHeaderSize: 8,
		FooterSize:      8,
		DateColor:       Blue,
		ContrastColor:   Black,
		RuleColors:      append([]Color(nil), DefaultRuleColors...),
		Band:            DefaultBand,
		CaptureScale:    DefaultCaptureScale,
		FileName:        FileName,
	}
}

// Validate checks the template for values the renderer cannot draw.
func (t Template) Validate() error {
	if len(t.RuleColors) == 0 {
		return errs.New(errs.ErrCodeInvalidTemplate, "decorative rule needs at least one color")
	}
	for i, c := range t.RuleColors {
		if !c.Valid() {
			return errs.New(errs.ErrCodeInvalidTemplate, "rule color %d out of range: %v", i, c)
		}
	}
	if !t.DateColor.Valid() || !t.ContrastColor.Valid() {
		return errs.New(errs.ErrCodeInvalidTemplate, "footer colors out of range")
	}
	if t.Margin < 0 || t.LineWidth <= 0 {
		return errs.New(errs.ErrCodeInvalidTemplate, "invalid margin or line width")
	}
	if t.CaptureScale <= 0 {
		return errs.New(errs.ErrCodeInvalidTemplate, "capture scale must be positive")
	}
	if t.FileName == "" {
		return errs.New(errs.ErrCodeInvalidTemplate, "file name is required")
	}
	return nil
}

// Branding is the part of a template that can be overridden from a file.
// Zero fields keep the default.
type Branding struct {
	LeftHeader    string  `toml:"left_header" yaml:"left_header"`
	RightHeader   string  `toml:"right_header" yaml:"right_header"`
	Brand         string  `toml:"brand" yaml:"brand"`
	DateColor     *Color  `toml:"date_color" yaml:"date_color"`
	ContrastColor *Color  `toml:"contrast_color" yaml:"contrast_color"`
	RuleColors    []Color `toml:"rule_colors" yaml:"rule_colors"`
}

// Apply overlays b on t.
func (b Branding) Apply(t Template) Template {
	if b.LeftHeader != "" {
		t.LeftHeader = b.LeftHeader
	}
	if b.RightHeader != "" {
		t.RightHeader = b.RightHeader
	}
	if b.Brand != "" {
		t.Brand = b.Brand
	}
	if b.DateColor != nil {
		t.DateColor = *b.DateColor
	}
	if b.ContrastColor != nil {
		t.ContrastColor = *b.ContrastColor
	}
	if len(b.RuleColors) > 0 {
		t.RuleColors = append([]Color(nil), b.RuleColors...)
	}
	return t
}

// LoadTemplate reads branding overrides from a .toml, .yaml or .yml file and
// applies them to the default template. An empty path returns the defaults.
func LoadTemplate(path string) (Template, error) {
	t := DefaultTemplate()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "read template %s", path)
	}

	var b Branding
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &b)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &b)
	default:
		return Template{}, errs.New(errs.ErrCodeInvalidTemplate, "unsupported template format %q", ext)
	}
	if err != nil {
		return Template{}, errs.Wrap(errs.ErrCodeInvalidTemplate, err, "parse template %s", path)
	}

	t = b.Apply(t)
	if err := t.Validate(); err != nil {
		return Template{}, fmt.Errorf("template %s: %w", path, err)
	}
	return t, nil
}
