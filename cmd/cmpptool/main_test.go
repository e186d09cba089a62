package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestImageCommands(t *testing.T) {
	dir, err := ioutil.TempDir("", "cmpptool")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	image := filepath.Join(dir, "eeprom.bin")

	run(t, newInitCmd(), "--eeprom", image)
	out := run(t, newDumpCmd(), "--eeprom", image, "programa0")
	require.Contains(t, out, "programa0:\n")
	require.Contains(t, out, "  posicao_final: 500\n")
	require.NotContains(t, out, "eixo:")

	run(t, newSetCmd(), "--eeprom", image, "programa1", "posicao_final", "123")
	out = run(t, newDumpCmd(), "--eeprom", image, "programa1")
	require.Contains(t, out, "  posicao_final: 123\n")

	out = run(t, newDumpCmd(), "--eeprom", image, "--raw")
	require.Contains(t, out, "00000000")

	cmd := newSetCmd()
	cmd.SetOut(ioutil.Discard)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs([]string{"--eeprom", image, "programa1", "nothing", "1"})
	require.Error(t, cmd.Execute())
}

func TestInitOverCorruptImage(t *testing.T) {
	dir, err := ioutil.TempDir("", "cmpptool")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	image := filepath.Join(dir, "eeprom.bin")

	run(t, newInitCmd(), "--eeprom", image)
	run(t, newSetCmd(), "--eeprom", image, "programa0", "posicao_final", "123")

	// start_auto_avanco of programa0 is the first cursor after 18 words
	f, err := os.OpenFile(image, os.O_RDWR, 0644)
	require.NoError(t, err)
	_, err = f.WriteAt([]byte{0xEE}, 38)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	run(t, newInitCmd(), "--eeprom", image)
	out := run(t, newDumpCmd(), "--eeprom", image, "programa0")
	require.Contains(t, out, "  posicao_final: 500\n")
}

func TestParamsCmd(t *testing.T) {
	out := run(t, newParamsCmd())
	require.Contains(t, out, "posicao_atual")
	require.Contains(t, out, "ro")
}

func TestRequireImage(t *testing.T) {
	os.Unsetenv("CMPP_EEPROM")
	cmd := newDumpCmd()
	cmd.SetOut(ioutil.Discard)
	cmd.SetErr(ioutil.Discard)
	cmd.SetArgs([]string{})
	require.Error(t, cmd.Execute())
}
