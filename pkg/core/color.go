package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque RGB colour with one byte per channel.
type Color struct {
	R, G, B uint8
}

// Common colours.
var (
	White = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Black = Color{}
)

// RGB builds a Color from a packed 0xRRGGBB integer. Bits above the low 24 are ignored.
func RGB(v uint64) Color {
	return Color{
		R: uint8((v >> 16) & 0xFF),
		G: uint8((v >> 8) & 0xFF),
		B: uint8(v & 0xFF),
	}
}

// Hex returns the colour as six uppercase hex digits ("RRGGBB").
func (c Color) Hex() string {
	return EncodeColor(c)
}

func (c Color) String() string {
	return "#" + EncodeColor(c)
}

// EncodeColor renders c as "RRGGBB": two zero-padded uppercase digits per channel, no '#'.
func EncodeColor(c Color) string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// DecodeColor parses a hexadecimal colour, with or without a leading '#'.
// Surrounding whitespace is ignored; a sign is not a hex digit.
//
// Malformed or empty text decodes to black and is reported with a
// *ColorParseError. Callers that only need the value may ignore the error.
func DecodeColor(text string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(text), "#")
	if raw == "" {
		return Black, &ColorParseError{Text: text, Err: errEmptyColor}
	}

	v, err := strconv.ParseUint(raw, 16, 64)
	if err != nil {
		return Black, &ColorParseError{Text: text, Err: err}
	}

	return RGB(v), nil
}
