package sh

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cmpp.go/pkg/env"
)

func TestReconnect(t *testing.T) {
	conf := *env.Default()
	conf.EEPROM.Path = ""
	conf.Link.URL = "sim://?channels=0"
	conf.Link.Channel = 0
	s, err := New(&conf)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Connect())
	require.True(t, s.Connected())
	s.Store().Programs[0].PosicaoFinal = 1234

	// reconnecting replaces the running link
	require.NoError(t, s.Connect())
	require.True(t, s.Connected())
	require.Equal(t, uint16(1234), s.Store().Programs[0].PosicaoFinal)

	conf.Link.URL = "nowhere://"
	require.Error(t, s.Connect())
	require.False(t, s.Connected())
	require.Nil(t, s.Transport())
	require.Equal(t, uint16(1234), s.Store().Programs[0].PosicaoFinal)
	require.NoError(t, s.Store().SaveAll())

	conf.Link.URL = "sim://?channels=0"
	require.NoError(t, s.Connect())
	require.NotNil(t, s.Transport())
	require.NoError(t, s.Disconnect())
	require.False(t, s.Connected())
	require.Equal(t, uint16(1234), s.Store().Programs[0].PosicaoFinal)
}
