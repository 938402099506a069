package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.bin"), make([]byte, 100), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), os.ModePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.bin"), make([]byte, 24), 0644))

	size, err := DirSize(dir)
	assert.Nil(t, err)
	assert.Equal(t, int64(124), size)

	_, err = DirSize(filepath.Join(dir, "missing"))
	assert.NotNil(t, err)
}

func TestAvailableDiskSize(t *testing.T) {
	diskSize, err := AvailableDiskSize(t.TempDir())
	assert.Nil(t, err)
	assert.Greater(t, diskSize, uint64(0))
	t.Log(diskSize / 1024 / 1024 / 1024)

	wdSize, err := AvailableDiskSize("")
	assert.Nil(t, err)
	assert.Greater(t, wdSize, uint64(0))

	_, err = AvailableDiskSize("/path/does/not/exist")
	assert.NotNil(t, err)
}
