package styles

import (
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/scline/collegevis/internal/plot"
)

// ThemeFile is a custom theme definition loaded from YAML. The series list
// replaces the plot palette and must name exactly as many colors as the
// palette holds; the UI colors are optional and override individually.
type ThemeFile struct {
	// Name is the theme's display name (e.g. "Solarized Dark")
	Name string `yaml:"name"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Series replaces the seven-color series palette, in cycle order.
	Series []SeriesColor `yaml:"series,omitempty"`
	// UI overrides individual interface colors.
	UI UIColors `yaml:"ui,omitempty"`
}

// SeriesColor is one palette entry: a short name and its hex value.
type SeriesColor struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// UIColors are the overridable interface colors, hex format (#RRGGBB).
type UIColors struct {
	Primary string `yaml:"primary,omitempty"`
	Warning string `yaml:"warning,omitempty"`
	Error   string `yaml:"error,omitempty"`
	Muted   string `yaml:"muted,omitempty"`
	Text    string `yaml:"text,omitempty"`
	Border  string `yaml:"border,omitempty"`
}

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LoadThemeFile reads and validates a theme file without applying it.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}
	if err := theme.validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}

func (t *ThemeFile) validate() error {
	if t.Version != "" && t.Version != "1" {
		return fmt.Errorf("unsupported theme version %q", t.Version)
	}
	if n := len(t.Series); n != 0 && n != plot.PaletteSize {
		return fmt.Errorf("theme names %d series colors, need %d", n, plot.PaletteSize)
	}
	for _, c := range t.Series {
		if !hexColorRe.MatchString(c.Hex) {
			return fmt.Errorf("series color %q has invalid hex %q", c.Name, c.Hex)
		}
	}
	for name, hex := range t.uiOverrides() {
		if hex != "" && !hexColorRe.MatchString(hex) {
			return fmt.Errorf("ui color %q has invalid hex %q", name, hex)
		}
	}
	return nil
}

func (t *ThemeFile) uiOverrides() map[string]string {
	return map[string]string{
		"primary": t.UI.Primary,
		"warning": t.UI.Warning,
		"error":   t.UI.Error,
		"muted":   t.UI.Muted,
		"text":    t.UI.Text,
		"border":  t.UI.Border,
	}
}

// Apply installs the theme: the series palette feeds the plot package and
// the UI overrides rewrite the package style variables.
func (t *ThemeFile) Apply() error {
	if len(t.Series) > 0 {
		colors := make([]plot.Color, len(t.Series))
		for i, c := range t.Series {
			colors[i] = plot.Color{Name: c.Name, Hex: c.Hex}
		}
		if !plot.SetColors(colors) {
			return fmt.Errorf("palette rejected %d series colors", len(colors))
		}
	}

	if t.UI.Primary != "" {
		PrimaryColor = lipgloss.Color(t.UI.Primary)
		Primary = Primary.Foreground(PrimaryColor)
		Title = Title.Foreground(PrimaryColor)
		Selected = Selected.Background(PrimaryColor)
		ZoneActive = ZoneActive.Foreground(PrimaryColor)
		HelpKey = HelpKey.Foreground(PrimaryColor)
	}
	if t.UI.Warning != "" {
		WarningColor = lipgloss.Color(t.UI.Warning)
		Warning = Warning.Foreground(WarningColor)
	}
	if t.UI.Error != "" {
		ErrorColor = lipgloss.Color(t.UI.Error)
		Error = Error.Foreground(ErrorColor)
	}
	if t.UI.Muted != "" {
		MutedColor = lipgloss.Color(t.UI.Muted)
		Muted = Muted.Foreground(MutedColor)
		Unselected = Unselected.Foreground(MutedColor)
		ZoneInactive = ZoneInactive.Foreground(MutedColor)
		HelpBar = HelpBar.Foreground(MutedColor)
	}
	if t.UI.Text != "" {
		TextColor = lipgloss.Color(t.UI.Text)
		StatusBar = StatusBar.Foreground(TextColor)
		Selected = Selected.Foreground(TextColor)
	}
	if t.UI.Border != "" {
		BorderColor = lipgloss.Color(t.UI.Border)
		Canvas = Canvas.BorderForeground(BorderColor)
	}
	return nil
}

// LoadTheme reads a theme file and applies it in one step.
func LoadTheme(path string) error {
	theme, err := LoadThemeFile(path)
	if err != nil {
		return err
	}
	return theme.Apply()
}
