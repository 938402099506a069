package fio

import (
	"os"
)

// FileIO 标准系统文件 IO, 不做任何缓冲
type FileIO struct {
	fd     *os.File
	one    [1]byte
	closed bool
}

// NewFileIOManager 初始化标准文件 IO
func NewFileIOManager(fileName string, mode OpenMode) (*FileIO, error) {
	flag := os.O_RDONLY
	if mode == WriteMode {
		flag = os.O_CREATE | os.O_TRUNC | os.O_WRONLY
	}
	fd, err := os.OpenFile(fileName, flag, DataFilePerm)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

func (fio *FileIO) Read(b []byte) (int, error) {
	return fio.fd.Read(b)
}

// ReadByte 每次调用都会触发一次系统调用
func (fio *FileIO) ReadByte() (byte, error) {
	if _, err := fio.fd.Read(fio.one[:]); err != nil {
		return 0, err
	}
	return fio.one[0], nil
}

func (fio *FileIO) Write(b []byte) (int, error) {
	return fio.fd.Write(b)
}

func (fio *FileIO) WriteByte(c byte) error {
	fio.one[0] = c
	_, err := fio.fd.Write(fio.one[:])
	return err
}

func (fio *FileIO) Close() error {
	if fio.closed {
		return nil
	}
	fio.closed = true
	return fio.fd.Close()
}

func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
