package fio

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFileIOManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0001.bin")
	fio, err := NewFileIOManager(path, WriteMode)
	assert.Nil(t, err)
	assert.NotNil(t, fio)
	assert.Nil(t, fio.Close())

	// 读模式下文件必须存在
	_, err = NewFileIOManager(filepath.Join(t.TempDir(), "missing.bin"), ReadMode)
	assert.NotNil(t, err)
}

func TestFileIO_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0001.bin")
	fio, err := NewFileIOManager(path, WriteMode)
	assert.Nil(t, err)

	n, err := fio.Write([]byte(""))
	assert.Equal(t, 0, n)
	assert.Nil(t, err)

	n, err = fio.Write([]byte("bitcask"))
	assert.Equal(t, 7, n)
	assert.Nil(t, err)

	err = fio.WriteByte('h')
	assert.Nil(t, err)

	size, err := fio.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(8), size)
	assert.Nil(t, fio.Close())

	// 写模式会截断已有的文件
	fio, err = NewFileIOManager(path, WriteMode)
	assert.Nil(t, err)
	size, err = fio.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), size)
	assert.Nil(t, fio.Close())
}

func TestFileIO_Read(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0001.bin")
	w, err := NewFileIOManager(path, WriteMode)
	assert.Nil(t, err)
	_, err = w.Write([]byte("key-abc"))
	assert.Nil(t, err)
	assert.Nil(t, w.Close())

	r, err := NewFileIOManager(path, ReadMode)
	assert.Nil(t, err)
	defer r.Close()

	c, err := r.ReadByte()
	assert.Nil(t, err)
	assert.Equal(t, byte('k'), c)

	b := make([]byte, 4)
	n, err := r.Read(b)
	assert.Nil(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("ey-a"), b)

	n, err = r.Read(b)
	assert.Nil(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []byte("bc"), b[:n])

	_, err = r.Read(b)
	assert.Equal(t, io.EOF, err)
	_, err = r.ReadByte()
	assert.Equal(t, io.EOF, err)
}

func TestFileIO_Close(t *testing.T) {
	path := filepath.Join(t.TempDir(), "0001.bin")
	fio, err := NewFileIOManager(path, WriteMode)
	assert.Nil(t, err)

	assert.Nil(t, fio.Close())
	// 重复关闭
	assert.Nil(t, fio.Close())
}
