package gograph

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColorNames(t *testing.T) {
	c, err := ParseColor("r")
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, c)

	c, err = ParseColor("SteelBlue")
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x46, G: 0x82, B: 0xb4, A: 0xff}, c)
}

func TestParseColorHex(t *testing.T) {
	c, err := ParseColor("#ff8000")
	assert.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0x80, A: 0xff}, c)

	c, err = ParseColor("#ff800080")
	assert.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)
}

func TestParseColorUnknown(t *testing.T) {
	_, err := ParseColor("blurple")
	assert.Error(t, err)
	assert.True(t, IsOption(err))
	assert.Contains(t, err.Error(), "must be one of")

	_, err = ParseColor("#12345")
	assert.True(t, IsOption(err))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#ff0000", HexColor(color.RGBA{R: 0xff, A: 0xff}))
	assert.Equal(t, "#00800080", HexColor(color.RGBA{G: 0x80, A: 0x80}))
}
