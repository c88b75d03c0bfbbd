package screen_test

import (
	"image/color"
	"testing"
	"time"

	"github.com/plus3/ecscam/host"
	"github.com/plus3/ecscam/screen"
	"github.com/stretchr/testify/assert"
)

func TestFadeTransition(t *testing.T) {
	fade := screen.NewFadeTransition(400*time.Millisecond, color.White)
	step := host.GameTime{Elapsed: 100 * time.Millisecond}

	want := []struct {
		state screen.FadeState
		value float64
	}{
		{screen.FadeOut, 0.5},
		{screen.FadeIn, 1},
		{screen.FadeIn, 0.5},
		{screen.FadeDone, 0},
		{screen.FadeDone, 0},
	}

	assert.Equal(t, 0.0, fade.Value())
	assert.False(t, fade.Halfway())
	for i, w := range want {
		fade.Update(step)
		assert.Equal(t, w.state, fade.State(), "tick %d", i)
		assert.InDelta(t, w.value, fade.Value(), 1e-9, "tick %d", i)
	}
	assert.True(t, fade.Halfway())
	assert.True(t, fade.Done())
}

func TestFadeOverlay(t *testing.T) {
	fade := screen.NewFadeTransition(time.Second, color.RGBA{R: 200, G: 100, A: 255})
	fade.Update(host.GameTime{Elapsed: 250 * time.Millisecond})

	r, g, b, a := fade.Overlay().RGBA()
	assert.Equal(t, uint32(0xffff/2), a)
	assert.InDelta(t, 200*0x101/2, r, 1)
	assert.InDelta(t, 100*0x101/2, g, 1)
	assert.Zero(t, b)

	black := &screen.FadeTransition{Duration: time.Second}
	black.Update(host.GameTime{Elapsed: 500 * time.Millisecond})
	_, _, _, a = black.Overlay().RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestFadeZeroDuration(t *testing.T) {
	fade := screen.NewFadeTransition(0, nil)
	assert.True(t, fade.Done())
	assert.True(t, fade.Halfway())
	assert.Zero(t, fade.Value())
}
