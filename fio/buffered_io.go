package fio

import (
	"bufio"

	"go.uber.org/multierr"
)

// BufferedIO 在标准文件 IO 外面包装一层缓冲
// 读模式下只使用 reader, 写模式下只使用 writer
type BufferedIO struct {
	file   *FileIO
	reader *bufio.Reader
	writer *bufio.Writer
}

// NewBufferedIOManager 初始化带缓冲的文件 IO
func NewBufferedIOManager(fileName string, mode OpenMode, bufferSize int) (*BufferedIO, error) {
	file, err := NewFileIOManager(fileName, mode)
	if err != nil {
		return nil, err
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	bio := &BufferedIO{file: file}
	if mode == WriteMode {
		bio.writer = bufio.NewWriterSize(file.fd, bufferSize)
	} else {
		bio.reader = bufio.NewReaderSize(file.fd, bufferSize)
	}
	return bio, nil
}

func (bio *BufferedIO) Read(b []byte) (int, error) {
	if bio.reader == nil {
		return 0, ErrWriteOnly
	}
	return bio.reader.Read(b)
}

func (bio *BufferedIO) ReadByte() (byte, error) {
	if bio.reader == nil {
		return 0, ErrWriteOnly
	}
	return bio.reader.ReadByte()
}

func (bio *BufferedIO) Write(b []byte) (int, error) {
	if bio.writer == nil {
		return 0, ErrReadOnly
	}
	return bio.writer.Write(b)
}

func (bio *BufferedIO) WriteByte(c byte) error {
	if bio.writer == nil {
		return ErrReadOnly
	}
	return bio.writer.WriteByte(c)
}

// Close 关闭前把缓冲区中剩余的数据刷到文件中
func (bio *BufferedIO) Close() error {
	if bio.file.closed {
		return nil
	}
	var err error
	if bio.writer != nil {
		err = bio.writer.Flush()
	}
	return multierr.Append(err, bio.file.Close())
}

// Size 返回文件中的大小加上还在缓冲区中未写入的字节数
func (bio *BufferedIO) Size() (int64, error) {
	size, err := bio.file.Size()
	if err != nil {
		return 0, err
	}
	if bio.writer != nil {
		size += int64(bio.writer.Buffered())
	}
	return size, nil
}
