package iobench

import (
	"errors"
	"iobench/data"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchmark_VerifyTestData(t *testing.T) {
	opts := testOptions(t)
	bm, err := Open(opts)
	defer destroyBenchmark(bm)
	require.NoError(t, err)
	ctx := testContext()

	_, err = bm.ProduceTestData(ctx, data.BlockByBlockWithoutBufferedStream, 1003, 10)
	require.NoError(t, err)
	assert.Nil(t, bm.VerifyTestData(data.BlockByBlockWithoutBufferedStream, 1003, 10))

	// 长度不一致
	err = bm.VerifyTestData(data.BlockByBlockWithoutBufferedStream, 1004, 10)
	assert.True(t, errors.Is(err, ErrScratchFileCorrupted))

	// 内容被修改
	fileName := ScratchFileName(opts.DirPath, opts.FilePrefix, data.BlockByBlockWithoutBufferedStream, 10)
	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	content[1001] = 'b'
	require.NoError(t, os.WriteFile(fileName, content, 0644))
	err = bm.VerifyTestData(data.BlockByBlockWithoutBufferedStream, 1003, 10)
	assert.True(t, errors.Is(err, ErrScratchFileCorrupted))

	// 文件不存在
	err = bm.VerifyTestData(data.ByteByByteWithBufferedStream, 10, 0)
	assert.True(t, os.IsNotExist(err))
}

func TestExpectedFiller(t *testing.T) {
	byteWise := expectedFiller(data.ByteByByteWithBufferedStream, 10, 0)
	assert.Equal(t, byte('h'), byteWise(0))
	assert.Equal(t, byte('h'), byteWise(9))

	blockWise := expectedFiller(data.BlockByBlockWithBufferedStream, 12, 5)
	assert.Equal(t, byte('b'), blockWise(0))
	assert.Equal(t, byte('b'), blockWise(9))
	assert.Equal(t, byte('B'), blockWise(10))
	assert.Equal(t, byte('B'), blockWise(11))
}
