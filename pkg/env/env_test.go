package env

import (
	"context"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmpp.go/pkg/cmpp/transport"
)

func TestParseConfig(t *testing.T) {
	conf := *Default()
	require.NoError(t, conf.Parse([]byte(`
link:
  url: sim://?channels=2
  channel: 2
  timeout: 200ms
  retries: 3
axis:
  pulses_per_revolution: 400
  displacement_per_tooth_x100: 508
  teeth: 16
mqtt:
  status_interval: 2s
`)))
	require.Equal(t, "sim://?channels=2", conf.Link.URL)
	require.Equal(t, 2, conf.Link.Channel)
	require.Equal(t, 200*time.Millisecond, conf.Link.Timeout)
	require.Equal(t, 3, conf.Link.Retries)
	require.Equal(t, 2*time.Second, conf.MQTT.StatusInterval)
	require.Equal(t, Default().MQTT.URL, conf.MQTT.URL)
	mp, ok := conf.Mechanics()
	require.True(t, ok)
	require.Equal(t, transport.DefaultMechanicalProperties, mp)

	require.Error(t, conf.Parse([]byte("link: [")))
}

func TestFlagsOverrideFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "cmpp-env")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "cmpp.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("link:\n  url: sim://\n  channel: 4\n"), 0644))

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	SetupFlags(fs)
	require.NoError(t, fs.Parse([]string{"-config", path, "-channel", "0", "-id", "panel"}))
	defer func() { configFile = "" }()

	conf, err := NewConfigFrom(fs)
	require.NoError(t, err)
	require.Equal(t, "sim://", conf.Link.URL)
	require.Equal(t, 0, conf.Link.Channel)
	require.Equal(t, "panel", conf.MQTT.ID)
}

func TestNewEnvSim(t *testing.T) {
	dir, err := ioutil.TempDir("", "cmpp-env")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	conf := *Default()
	conf.Link.URL = "sim://?channels=1"
	conf.Link.Channel = 1
	conf.EEPROM.Path = filepath.Join(dir, "eeprom.bin")
	env, err := conf.NewEnv()
	require.NoError(t, err)
	defer env.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go env.Run(ctx)

	require.Equal(t, int64(4921), env.Transport.Mechanics.PulsesPerMmX100())
	_, err = env.Transport.PosicaoFinal().Set(250)
	require.NoError(t, err)
	v, err := env.Transport.PosicaoFinal().Get()
	require.NoError(t, err)
	// 250mm is 12302.5 pulses, truncated on the way to the device
	require.InDelta(t, 250, v, 1)

	_, err = os.Stat(conf.EEPROM.Path)
	require.NoError(t, err)
}

func TestNewEnvInvalidChannel(t *testing.T) {
	conf := *Default()
	conf.Link.URL = "sim://"
	conf.Link.Channel = 64
	_, err := conf.NewEnv()
	require.Error(t, err)
}
