package fio

import (
	"io"

	"golang.org/x/exp/mmap"
)

// MMap 内存文件映射, 只用于顺序读取
type MMap struct {
	readerAt *mmap.ReaderAt
	offset   int64
	closed   bool
}

// NewMMapIOManager 初始化 MMap IO
func NewMMapIOManager(fileName string) (*MMap, error) {
	readerAt, err := mmap.Open(fileName)
	if err != nil {
		return nil, err
	}
	return &MMap{readerAt: readerAt}, nil
}

func (mmap *MMap) Read(b []byte) (int, error) {
	if mmap.offset >= int64(mmap.readerAt.Len()) {
		return 0, io.EOF
	}
	n, err := mmap.readerAt.ReadAt(b, mmap.offset)
	mmap.offset += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (mmap *MMap) ReadByte() (byte, error) {
	if mmap.offset >= int64(mmap.readerAt.Len()) {
		return 0, io.EOF
	}
	c := mmap.readerAt.At(int(mmap.offset))
	mmap.offset++
	return c, nil
}

func (mmap *MMap) Write([]byte) (int, error) {
	return 0, ErrReadOnly
}

func (mmap *MMap) WriteByte(byte) error {
	return ErrReadOnly
}

func (mmap *MMap) Close() error {
	if mmap.closed {
		return nil
	}
	mmap.closed = true
	return mmap.readerAt.Close()
}

func (mmap *MMap) Size() (int64, error) {
	return int64(mmap.readerAt.Len()), nil
}
