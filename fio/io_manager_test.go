package fio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIOManager(t *testing.T) {
	dir := t.TempDir()

	std, err := NewIOManager(filepath.Join(dir, "std.bin"), StandardFIO, WriteMode, 0)
	require.NoError(t, err)
	assert.IsType(t, &FileIO{}, std)
	assert.Nil(t, std.Close())

	buf, err := NewIOManager(filepath.Join(dir, "buf.bin"), BufferedFIO, WriteMode, 0)
	require.NoError(t, err)
	assert.IsType(t, &BufferedIO{}, buf)
	assert.Nil(t, buf.Close())

	// MMap 只支持读
	_, err = NewIOManager(filepath.Join(dir, "std.bin"), MemoryMap, WriteMode, 0)
	assert.Equal(t, ErrReadOnly, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "mmap.bin"), []byte("m"), DataFilePerm))
	mm, err := NewIOManager(filepath.Join(dir, "mmap.bin"), MemoryMap, ReadMode, 0)
	require.NoError(t, err)
	assert.IsType(t, &MMap{}, mm)
	assert.Nil(t, mm.Close())

	assert.Panics(t, func() {
		_, _ = NewIOManager(filepath.Join(dir, "x.bin"), 42, ReadMode, 0)
	})
}
