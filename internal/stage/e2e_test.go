package stage_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"glimmer/internal/config"
	"glimmer/internal/driver"
	"glimmer/internal/engine"
	"glimmer/internal/sacn"
	"glimmer/internal/stage"

	"github.com/rs/zerolog"
)

// TestEndToEndSACN runs the whole pipeline: config → wiring → engine ticks →
// E1.31 packets on a loopback socket.
func TestEndToEndSACN(t *testing.T) {
	lc, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer lc.Close()

	cfg := &config.Config{
		FPS: 60,
		Universes: []config.Universe{
			{Name: "stage", Protocol: "sacn", Address: lc.LocalAddr().String(), Universe: 1, Channels: 3},
		},
		Channels: []config.Channel{
			{Universe: "stage", Channel: 0, Type: "rgb", Hue: "rgb(255,0,0)"},
		},
	}
	rig, err := stage.Build(cfg, func(uc config.Universe) (driver.Driver, error) {
		tx, err := sacn.NewTransmitter(uc.Address, uc.Universe, uc.Channels, sacn.Options{Preview: true})
		if err != nil {
			return nil, err
		}
		return tx, nil
	})
	require.NoError(t, err)
	defer rig.Close()

	eng := engine.New(
		[]engine.Updater{rig.Channels[0]},
		[]engine.Sender{rig.Universes[0]},
		cfg.FPS, zerolog.Nop(),
	)
	done := make(chan struct{})
	go func() {
		eng.Run()
		close(done)
	}()
	defer func() {
		eng.RequestStop()
		<-done
	}()

	recv := make([]byte, 1024)
	_ = lc.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, _, err := lc.ReadFromUDP(recv)
	require.NoError(t, err)
	require.Equal(t, []byte{255, 0, 0}, recv[n-3:n])
	require.Equal(t, []byte{255, 0, 0}, rig.Universes[0].Data())
}
