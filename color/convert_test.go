package color_test

import (
	"errors"
	"testing"

	"bennypowers.dev/csscolor/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		in       color.Components
		from, to color.Model
		want     color.Components
	}{
		{"identity normalizes", color.Components{10.4, 20.6, 300, 0.126}, color.RGBA, color.RGBA, color.Components{10, 21, 255, 0.13}},
		{"rgba to hsla", color.Components{255, 0, 0, 0.5}, color.RGBA, color.HSLA, color.Components{0, 100, 50, 0.5}},
		{"rgba to hsva", color.Components{0, 0, 255, 1}, color.RGBA, color.HSVA, color.Components{240, 100, 100, 1}},
		{"hsla to rgba", color.Components{240, 100, 50, 1}, color.HSLA, color.RGBA, color.Components{0, 0, 255, 1}},
		{"hsva to rgba", color.Components{120, 100, 100, 0.2}, color.HSVA, color.RGBA, color.Components{0, 255, 0, 0.2}},
		{"hsva to hsla", color.Components{0, 100, 100, 1}, color.HSVA, color.HSLA, color.Components{0, 100, 50, 1}},
		{"hsla to hsva", color.Components{120, 100, 50, 1}, color.HSLA, color.HSVA, color.Components{120, 100, 100, 1}},
		{"gray keeps its hue", color.Components{200, 0, 40, 1}, color.HSLA, color.HSVA, color.Components{200, 0, 40, 1}},
		{"hue 360 wraps to red", color.Components{360, 100, 50, 1}, color.HSLA, color.RGBA, color.Components{255, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := color.Convert(tt.in, tt.from, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvertUnknownModel(t *testing.T) {
	_, err := color.Convert(color.Components{}, "cmyk", color.RGBA)
	assert.True(t, errors.Is(err, color.ErrUnknownModel))

	_, err = color.Convert(color.Components{}, color.RGBA, "lab")
	assert.True(t, errors.Is(err, color.ErrUnknownModel))
}

func TestConvertRoundTrip(t *testing.T) {
	for _, name := range color.Names() {
		rgba := color.MustParse(name, color.RGBA)
		for _, via := range []color.Model{color.HSLA, color.HSVA} {
			mid, err := color.Convert(rgba, color.RGBA, via)
			require.NoError(t, err)
			back, err := color.Convert(mid, via, color.RGBA)
			require.NoError(t, err)
			for i := range 3 {
				// whole-degree hue costs up to ~2 units per channel
				assert.InDelta(t, rgba[i], back[i], 4, "%s via %s channel %d", name, via, i)
			}
			assert.Equal(t, rgba.Alpha(), back.Alpha())
		}
	}
}
