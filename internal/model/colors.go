package model

// Color is a brick color name from the fixed palette.
type Color string

const (
	ColorRed       Color = "red"
	ColorOrange    Color = "orange"
	ColorYellow    Color = "yellow"
	ColorLime      Color = "lime"
	ColorGreen     Color = "green"
	ColorDarkGreen Color = "dark_green"
	ColorCyan      Color = "cyan"
	ColorLightBlue Color = "light_blue"
	ColorBlue      Color = "blue"
	ColorDarkBlue  Color = "dark_blue"
	ColorPurple    Color = "purple"
	ColorMagenta   Color = "magenta"
	ColorPink      Color = "pink"
	ColorBrown     Color = "brown"
	ColorTan       Color = "tan"
	ColorWhite     Color = "white"
	ColorLightGray Color = "light_gray"
	ColorDarkGray  Color = "dark_gray"
	ColorBlack     Color = "black"
)

// Palette is the fixed color palette, in stable order. Index 0 is reserved
// for "empty" in RLE payloads, so palette ids are 1-based.
var Palette = []Color{
	ColorRed, ColorOrange, ColorYellow, ColorLime, ColorGreen,
	ColorDarkGreen, ColorCyan, ColorLightBlue, ColorBlue, ColorDarkBlue,
	ColorPurple, ColorMagenta, ColorPink, ColorBrown, ColorTan,
	ColorWhite, ColorLightGray, ColorDarkGray, ColorBlack,
}

var paletteIndex = func() map[Color]uint16 {
	m := make(map[Color]uint16, len(Palette))
	for i, c := range Palette {
		m[c] = uint16(i + 1)
	}
	return m
}()

// PaletteID returns the 1-based palette id for c, or 0 if unknown.
func PaletteID(c Color) uint16 {
	return paletteIndex[c]
}

// ColorByID is the inverse of PaletteID. id 0 and out-of-range ids return "".
func ColorByID(id uint16) Color {
	if id == 0 || int(id) > len(Palette) {
		return ""
	}
	return Palette[id-1]
}

func (c Color) Valid() bool {
	_, ok := paletteIndex[c]
	return ok
}
