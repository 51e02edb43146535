package gui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jesseduffield/gocui"
	"github.com/marjoballabani/lazyvault/pkg/config"
)

type Theme struct {
	ActiveBorderColor   gocui.Attribute
	InactiveBorderColor gocui.Attribute
	OptionsTextColor    gocui.Attribute
	SelectedLineBgColor gocui.Attribute
	FilterBorderColor   gocui.Attribute
	DisabledTextColor   gocui.Attribute
}

func NewTheme(cfg config.ThemeConfig) *Theme {
	return &Theme{
		ActiveBorderColor:   parseColor(cfg.ActiveBorderColor),
		InactiveBorderColor: parseColor(cfg.InactiveBorderColor),
		OptionsTextColor:    parseColor(cfg.OptionsTextColor),
		SelectedLineBgColor: parseColor(cfg.SelectedLineBgColor),
		FilterBorderColor:   parseColor(cfg.FilterBorderColor),
		DisabledTextColor:   parseColor(cfg.DisabledTextColor),
	}
}

func parseColor(colorSpec []string) gocui.Attribute {
	if len(colorSpec) == 0 {
		return gocui.ColorDefault
	}

	var attr gocui.Attribute

	for _, spec := range colorSpec {
		spec = strings.ToLower(strings.TrimSpace(spec))

		switch spec {
		case "bold":
			attr |= gocui.AttrBold
		case "underline":
			attr |= gocui.AttrUnderline
		case "reverse":
			attr |= gocui.AttrReverse
		default:
			attr |= parseColorValue(spec)
		}
	}

	return attr
}

func parseColorValue(color string) gocui.Attribute {
	// Handle hex colors
	if strings.HasPrefix(color, "#") {
		return parseHexColor(color)
	}

	// Named colors
	switch color {
	case "default":
		return gocui.ColorDefault
	case "black":
		return gocui.ColorBlack
	case "red":
		return gocui.ColorRed
	case "green":
		return gocui.ColorGreen
	case "yellow":
		return gocui.ColorYellow
	case "blue":
		return gocui.ColorBlue
	case "magenta":
		return gocui.ColorMagenta
	case "cyan":
		return gocui.ColorCyan
	case "white":
		return gocui.ColorWhite
	default:
		// Try parsing as a number (256 color)
		if n, err := strconv.Atoi(color); err == nil && n >= 0 && n < 256 {
			return gocui.Attribute(n) | gocui.AttrIsValidColor
		}
		return gocui.ColorDefault
	}
}

func parseHexColor(hex string) gocui.Attribute {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return gocui.ColorDefault
	}

	r, err := strconv.ParseInt(hex[0:2], 16, 64)
	if err != nil {
		return gocui.ColorDefault
	}
	g, err := strconv.ParseInt(hex[2:4], 16, 64)
	if err != nil {
		return gocui.ColorDefault
	}
	b, err := strconv.ParseInt(hex[4:6], 16, 64)
	if err != nil {
		return gocui.ColorDefault
	}

	return gocui.NewRGBColor(int32(r), int32(g), int32(b))
}

// GetAnsiColorCode returns ANSI escape code for the active border color
func (t *Theme) GetAnsiColorCode() string {
	return attributeToAnsi(t.ActiveBorderColor)
}

// FilterAnsiColorCode is used for the search prompt.
func (t *Theme) FilterAnsiColorCode() string {
	return attributeToAnsi(t.FilterBorderColor)
}

// DisabledAnsiColorCode dims rows that cannot be applied, such as disabled
// organizations.
func (t *Theme) DisabledAnsiColorCode() string {
	return attributeToAnsi(t.DisabledTextColor)
}

// attributeToAnsi maps a gocui color to a foreground escape. Named colors are
// palette entries 0-7, so they share the 256-color form. ColorDefault falls
// back to cyan.
func attributeToAnsi(attr gocui.Attribute) string {
	switch {
	case attr&gocui.AttrIsRGBColor != 0:
		rgb := uint32(attr & 0xFFFFFF)
		return fmt.Sprintf("\033[38;2;%d;%d;%dm", (rgb>>16)&0xFF, (rgb>>8)&0xFF, rgb&0xFF)
	case attr&gocui.AttrIsValidColor != 0:
		return fmt.Sprintf("\033[38;5;%dm", uint32(attr&0xFF))
	default:
		return "\033[36m"
	}
}
