package stage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glimmer/internal/config"
	"glimmer/internal/driver"
	"glimmer/internal/stage"
)

func newUniverse(t *testing.T, channels int) (*stage.Universe, *driver.Sim) {
	t.Helper()
	drv := driver.NewSim()
	u, err := stage.NewUniverse("stage", channels, drv)
	require.NoError(t, err)
	return u, drv
}

func TestUpdateThenSendRGB(t *testing.T) {
	u, drv := newUniverse(t, 3)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 0, Type: "rgb", Hue: "rgb(255,0,0)",
	}, u)
	require.NoError(t, err)

	require.NoError(t, ch.Update())
	require.NoError(t, u.Send())
	assert.Equal(t, []byte{255, 0, 0}, drv.LastFrame())
}

func TestUpdateWritesOnlyItsWindow(t *testing.T) {
	u, _ := newUniverse(t, 9)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 3, Type: "rgb", Hue: "white",
	}, u)
	require.NoError(t, err)
	require.NoError(t, ch.Update())

	buf := u.Data()
	assert.Equal(t, []byte{0, 0, 0}, buf[0:3])
	assert.Equal(t, []byte{255, 255, 255}, buf[3:6])
	assert.Equal(t, []byte{0, 0, 0}, buf[6:9])
}

func TestUpdateHSVMode(t *testing.T) {
	u, _ := newUniverse(t, 3)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 0, Type: "hsv", Hue: "hsv(360,100,100)",
	}, u)
	require.NoError(t, err)
	require.NoError(t, ch.Update())

	buf := u.Data()
	assert.Equal(t, byte(0), buf[0]) // 360 wraps to 0
	assert.Equal(t, byte(255), buf[1])
	assert.Equal(t, byte(255), buf[2])
}

func TestCandleBrightnessBoundedAndMoving(t *testing.T) {
	u, _ := newUniverse(t, 3)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 0, Type: "hsv", Hue: "candle",
		Effect: "candle", Level: []float64{50, 100},
	}, u)
	require.NoError(t, err)

	buf := u.Data()
	seen := map[byte]bool{}
	for i := 0; i < 100; i++ {
		require.NoError(t, ch.Update())
		v := buf[2]
		assert.GreaterOrEqual(t, v, byte(50), "tick %d", i)
		assert.LessOrEqual(t, v, byte(150), "tick %d", i)
		seen[v] = true
	}
	assert.Greater(t, len(seen), 1, "brightness constant over 100 ticks")
}

func TestUpdateBadHueWritesNothing(t *testing.T) {
	u, _ := newUniverse(t, 3)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 0, Type: "rgb", Hue: "not-a-color",
	}, u)
	require.NoError(t, err)

	require.Error(t, ch.Update())
	assert.Equal(t, []byte{0, 0, 0}, u.Data())
}

func TestUpdateUnknownModeWritesNothing(t *testing.T) {
	u, _ := newUniverse(t, 3)
	ch, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 0, Type: "cmyk", Hue: "red",
	}, u)
	require.NoError(t, err)

	require.Error(t, ch.Update())
	assert.Equal(t, []byte{0, 0, 0}, u.Data())
}

func TestChannelBoundsCheckedAtWiring(t *testing.T) {
	u, _ := newUniverse(t, 3)
	_, err := stage.NewChannel(config.Channel{
		Universe: "stage", Channel: 1, Type: "rgb", Hue: "red",
	}, u)
	require.Error(t, err)

	_, err = stage.NewChannel(config.Channel{
		Universe: "stage", Channel: -1, Type: "rgb", Hue: "red",
	}, u)
	require.Error(t, err)
}
