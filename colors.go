package gograph

import (
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// namedColors maps the accepted color names to RGBA values. Single
// letters follow the usual plotting shorthand, the rest are common CSS
// names. Render backends convert these to their own color types.
var namedColors = map[string]color.RGBA{
	"k":         {0x00, 0x00, 0x00, 0xff},
	"black":     {0x00, 0x00, 0x00, 0xff},
	"w":         {0xff, 0xff, 0xff, 0xff},
	"white":     {0xff, 0xff, 0xff, 0xff},
	"r":         {0xff, 0x00, 0x00, 0xff},
	"red":       {0xff, 0x00, 0x00, 0xff},
	"g":         {0x00, 0x80, 0x00, 0xff},
	"green":     {0x00, 0x80, 0x00, 0xff},
	"b":         {0x00, 0x00, 0xff, 0xff},
	"blue":      {0x00, 0x00, 0xff, 0xff},
	"c":         {0x00, 0xff, 0xff, 0xff},
	"cyan":      {0x00, 0xff, 0xff, 0xff},
	"m":         {0xff, 0x00, 0xff, 0xff},
	"magenta":   {0xff, 0x00, 0xff, 0xff},
	"y":         {0xff, 0xff, 0x00, 0xff},
	"yellow":    {0xff, 0xff, 0x00, 0xff},
	"gray":      {0x80, 0x80, 0x80, 0xff},
	"grey":      {0x80, 0x80, 0x80, 0xff},
	"silver":    {0xc0, 0xc0, 0xc0, 0xff},
	"orange":    {0xff, 0xa5, 0x00, 0xff},
	"gold":      {0xff, 0xd7, 0x00, 0xff},
	"brown":     {0xa5, 0x2a, 0x2a, 0xff},
	"maroon":    {0x80, 0x00, 0x00, 0xff},
	"olive":     {0x80, 0x80, 0x00, 0xff},
	"lime":      {0x00, 0xff, 0x00, 0xff},
	"teal":      {0x00, 0x80, 0x80, 0xff},
	"navy":      {0x00, 0x00, 0x80, 0xff},
	"purple":    {0x80, 0x00, 0x80, 0xff},
	"violet":    {0xee, 0x82, 0xee, 0xff},
	"orchid":    {0xda, 0x70, 0xd6, 0xff},
	"pink":      {0xff, 0xc0, 0xcb, 0xff},
	"salmon":    {0xfa, 0x80, 0x72, 0xff},
	"coral":     {0xff, 0x7f, 0x50, 0xff},
	"tomato":    {0xff, 0x63, 0x47, 0xff},
	"crimson":   {0xdc, 0x14, 0x3c, 0xff},
	"chocolate": {0xd2, 0x69, 0x1e, 0xff},
	"khaki":     {0xf0, 0xe6, 0x8c, 0xff},
	"skyblue":   {0x87, 0xce, 0xeb, 0xff},
	"steelblue": {0x46, 0x82, 0xb4, 0xff},
	"seagreen":  {0x2e, 0x8b, 0x57, 0xff},
	"turquoise": {0x40, 0xe0, 0xd0, 0xff},
	"indigo":    {0x4b, 0x00, 0x82, 0xff},
	"plum":      {0xdd, 0xa0, 0xdd, 0xff},
}

// ParseColor resolves a color option. It accepts the palette names above
// and hex notation (#RRGGBB or #RRGGBBAA).
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		if c, ok := parseHexColor(name); ok {
			return c, nil
		}
		return color.RGBA{}, &OptionError{Option: "color", Value: s, Reason: "hex colors are #RRGGBB or #RRGGBBAA"}
	}
	return color.RGBA{}, &OptionError{Option: "color", Value: s, Valid: ColorNames()}
}

// ColorNames returns the accepted color names, sorted.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseHexColor(s string) (color.RGBA, bool) {
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, false
	}
	parse := func(b string) (uint8, bool) {
		v, err := strconv.ParseUint(b, 16, 8)
		if err != nil {
			return 0, false
		}
		return uint8(v), true
	}
	r, okR := parse(hex[0:2])
	g, okG := parse(hex[2:4])
	b, okB := parse(hex[4:6])
	if !okR || !okG || !okB {
		return color.RGBA{}, false
	}
	a := uint8(0xff)
	if len(hex) == 8 {
		var okA bool
		a, okA = parse(hex[6:8])
		if !okA {
			return color.RGBA{}, false
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, true
}

// HexColor formats c as #RRGGBB, or #RRGGBBAA when not fully opaque.
// Backends that take string colors (echarts) use it.
func HexColor(c color.RGBA) string {
	const digits = "0123456789abcdef"
	out := make([]byte, 0, 9)
	out = append(out, '#')
	for _, b := range []uint8{c.R, c.G, c.B} {
		out = append(out, digits[b>>4], digits[b&0x0f])
	}
	if c.A != 0xff {
		out = append(out, digits[c.A>>4], digits[c.A&0x0f])
	}
	return string(out)
}
