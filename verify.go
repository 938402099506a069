package iobench

import (
	"errors"
	"fmt"
	"io"
	"iobench/data"
	"iobench/fio"

	"go.uber.org/multierr"
)

const verifyBlockSize = 4096

// VerifyTestData 通过内存映射检查测试文件的长度和内容是否与写入试验一致, 不计入试验耗时
func (b *Benchmark) VerifyTestData(strategy data.Strategy, numberOfBytesWritten int64, blockSize int) (err error) {
	fileName := ScratchFileName(b.options.DirPath, b.options.FilePrefix, strategy, blockSize)
	ioManager, err := fio.NewIOManager(fileName, fio.MemoryMap, fio.ReadMode, 0)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, ioManager.Close())
	}()

	size, err := ioManager.Size()
	if err != nil {
		return err
	}
	if size != numberOfBytesWritten {
		return fmt.Errorf("%w: %s has %d bytes, expected %d", ErrScratchFileCorrupted, fileName, size, numberOfBytesWritten)
	}

	expected := expectedFiller(strategy, numberOfBytesWritten, blockSize)
	buf := make([]byte, verifyBlockSize)
	var offset int64
	for {
		n, err := ioManager.Read(buf)
		for i := 0; i < n; i++ {
			if buf[i] != expected(offset) {
				return fmt.Errorf("%w: unexpected byte %q at offset %d in %s", ErrScratchFileCorrupted, buf[i], offset, fileName)
			}
			offset++
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// expectedFiller 返回文件中每个位置应该写入的字节
func expectedFiller(strategy data.Strategy, numberOfBytesWritten int64, blockSize int) func(offset int64) byte {
	if !strategy.BlockWise() {
		return func(int64) byte { return byteFiller }
	}
	fullBlocksEnd := numberOfBytesWritten / int64(blockSize) * int64(blockSize)
	return func(offset int64) byte {
		if offset < fullBlocksEnd {
			return blockFiller
		}
		return tailFiller
	}
}
