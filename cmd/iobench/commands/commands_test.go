package commands

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Commands(t *testing.T) {

	t.Run("test root", func(t *testing.T) {
		b := bytes.NewBufferString("")
		rootCmd.SetOut(b)
		rootCmd.SetArgs([]string{"help"})
		assert.NoError(t, rootCmd.Execute())
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "Available Commands")
		assert.Contains(t, string(output), "serve")
	})

	t.Run("Run", func(t *testing.T) {
		dir := t.TempDir()
		cmd := NewRunCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "run", cmd.Use)
		assert.Equal(t, "intSlice", cmd.Flag("block-sizes").Value.Type())
		assert.Equal(t, "int64", cmd.Flag("size").Value.Type())
		assert.Equal(t, "string", cmd.Flag("index-type").Value.Type())

		b := bytes.NewBufferString("")
		cmd.SetOut(b)
		cmd.SetArgs([]string{"--dir=" + dir, "--size=4099", "--block-sizes=64,8", "--verify"})
		require.NoError(t, cmd.Execute())
		output, _ := io.ReadAll(b)
		assert.Contains(t, string(output), "trials: 12, failed: 0, scratch files: 6")

		report, err := os.ReadFile(filepath.Join(dir, "fileData.csv"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(report)), "\n")
		assert.Equal(t, 13, len(lines))
		assert.Equal(t, "operation,strategy,blockSize,fileSizeInBytes,durationInMs", lines[0])
	})

	t.Run("RunInvalidIndexType", func(t *testing.T) {
		cmd := NewRunCommand()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--dir=" + t.TempDir(), "--index-type=nonono"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported index type")
	})

	t.Run("RunInvalidOptions", func(t *testing.T) {
		cmd := NewRunCommand()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--dir=" + t.TempDir(), "--block-sizes=5,5"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "duplicated block size")
	})

	t.Run("Serve", func(t *testing.T) {
		cmd := NewServeCommand()
		assert.True(t, cmd.HasLocalFlags())
		assert.Equal(t, "serve", cmd.Use)
		assert.Equal(t, "string", cmd.Flag("addr").Value.Type())

		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--index-type=nonono"})
		err := cmd.Execute()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported index type")

		cmd = NewServeCommand()
		cmd.SetOut(io.Discard)
		cmd.SetArgs([]string{"--dir=" + t.TempDir()})
		err = cmd.Execute()
		assert.True(t, os.IsNotExist(err))
	})
}

func TestParseIndexType(t *testing.T) {
	for _, name := range []string{"btree", "ART", "bptree"} {
		_, err := parseIndexType(name)
		assert.NoError(t, err)
	}
	_, err := parseIndexType("hash")
	assert.Error(t, err)
}
