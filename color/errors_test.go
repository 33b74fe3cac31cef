package color_test

import (
	"errors"
	"fmt"
	"testing"

	"bennypowers.dev/csscolor/color"
	"github.com/stretchr/testify/assert"
)

func TestInvalidColorStringError(t *testing.T) {
	err := color.NewInvalidColorStringError("bleu")
	assert.Equal(t, `invalid color string "bleu"`, err.Error())
	assert.True(t, errors.Is(err, color.ErrInvalidColorString))

	wrapped := fmt.Errorf("line 3: %w", err)
	var target *color.InvalidColorStringError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "bleu", target.Input)
}

func TestUnknownModelError(t *testing.T) {
	err := color.NewUnknownModelError("cmyk")
	assert.Contains(t, err.Error(), `"cmyk"`)
	assert.Contains(t, err.Error(), "rgba, hsla, hsva")
	assert.True(t, errors.Is(err, color.ErrUnknownModel))
	assert.False(t, errors.Is(err, color.ErrInvalidColorString))
}
