package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	// 正常情况
	r1, err := NewRecord(OperationWrite, BlockByBlockWithBufferedStream, 500, 1024, 3)
	assert.Nil(t, err)
	assert.Equal(t, 500, r1.BlockSize)
	assert.Equal(t, int64(1024), r1.FileSizeInBytes)

	// 逐字节, 块大小为 0
	r2, err := NewRecord(OperationRead, ByteByByteWithoutBufferedStream, 0, 10, 0)
	assert.Nil(t, err)
	assert.Equal(t, 0, r2.BlockSize)

	_, err = NewRecord(OperationWrite, BlockByBlockWithBufferedStream, -1, 1024, 3)
	assert.Equal(t, ErrInvalidBlockSize, err)
	_, err = NewRecord(OperationWrite, BlockByBlockWithBufferedStream, 5, 0, 3)
	assert.Equal(t, ErrInvalidFileSize, err)
	_, err = NewRecord(OperationWrite, BlockByBlockWithBufferedStream, 5, 10, -3)
	assert.Equal(t, ErrInvalidDuration, err)
}

func TestRecord_Key(t *testing.T) {
	r, err := NewRecord(OperationWrite, BlockByBlockWithBufferedStream, 50, 1024, 3)
	assert.Nil(t, err)
	assert.Equal(t, "WRITE-BlockByBlockWithBufferedStream-00050", string(r.Key()))
	assert.Equal(t, r.Key(), TrialKey(OperationWrite, BlockByBlockWithBufferedStream, 50))

	// 块大小补齐之后按字节序比较也是按数值有序的
	k5 := TrialKey(OperationRead, BlockByBlockWithBufferedStream, 5)
	k500 := TrialKey(OperationRead, BlockByBlockWithBufferedStream, 500)
	assert.Less(t, string(k5), string(k500))
}

func TestEncodeRecord(t *testing.T) {
	r1, _ := NewRecord(OperationWrite, BlockByBlockWithBufferedStream, 500, 10*1024*1024, 42)
	buf1 := EncodeRecord(r1)
	assert.NotNil(t, buf1)
	assert.Greater(t, len(buf1), 5)

	dec1, err := DecodeRecord(buf1)
	assert.Nil(t, err)
	assert.Equal(t, r1, dec1)

	r2, _ := NewRecord(OperationRead, ByteByByteWithoutBufferedStream, 0, 1, 0)
	buf2 := EncodeRecord(r2)
	assert.Equal(t, 5, len(buf2))
}

func TestDecodeRecord(t *testing.T) {
	_, err := DecodeRecord(nil)
	assert.Equal(t, ErrInvalidRecord, err)

	_, err = DecodeRecord([]byte{0, 3, 0x80, 0x80, 0x80})
	assert.Equal(t, ErrInvalidRecord, err)
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "WRITE", OperationWrite.String())
	assert.Equal(t, "READ", OperationRead.String())

	op, err := ParseOperation("READ")
	assert.Nil(t, err)
	assert.Equal(t, OperationRead, op)
	_, err = ParseOperation("read")
	assert.NotNil(t, err)
}
