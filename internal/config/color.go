package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color is a packed 0xRRGGBB value. In YAML it may be written as a hex string
// ("0xFF66C4", "#FF66C4"), a plain integer, or an [r, g, b] triple.
type Color uint32

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var rgb [3]int
		if err := node.Decode(&rgb); err != nil {
			return fmt.Errorf("line %d: color triple: %w", node.Line, err)
		}
		for _, ch := range rgb {
			if ch < 0 || ch > 255 {
				return fmt.Errorf("line %d: color channel %d out of range", node.Line, ch)
			}
		}
		*c = Color(rgb[0]<<16 | rgb[1]<<8 | rgb[2])
		return nil
	case yaml.ScalarNode:
		parsed, err := parseHexColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	default:
		return fmt.Errorf("line %d: unsupported color value", node.Line)
	}
}

// MarshalYAML writes the colour back as a hex string.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c Color) String() string {
	return fmt.Sprintf("0x%06X", uint32(c))
}

// RGB returns the packed value.
func (c Color) RGB() uint32 {
	return uint32(c) & 0xFFFFFF
}

func parseHexColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	base := 10
	switch {
	case strings.HasPrefix(s, "#"):
		s, base = s[1:], 16
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s, base = s[2:], 16
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("color %q exceeds 0xFFFFFF", s)
	}
	return Color(v), nil
}
