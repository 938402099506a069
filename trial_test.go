package iobench

import (
	"iobench/data"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrialMatrix(t *testing.T) {
	trials := TrialMatrix([]int{500, 50, 5})
	assert.Equal(t, 16, len(trials))

	expected := []Trial{
		{data.OperationWrite, data.BlockByBlockWithBufferedStream, 500},
		{data.OperationWrite, data.BlockByBlockWithBufferedStream, 50},
		{data.OperationWrite, data.BlockByBlockWithBufferedStream, 5},
		{data.OperationWrite, data.ByteByByteWithBufferedStream, 0},
		{data.OperationWrite, data.BlockByBlockWithoutBufferedStream, 500},
		{data.OperationWrite, data.BlockByBlockWithoutBufferedStream, 50},
		{data.OperationWrite, data.BlockByBlockWithoutBufferedStream, 5},
		{data.OperationWrite, data.ByteByByteWithoutBufferedStream, 0},
	}
	assert.Equal(t, expected, trials[:8])
	for i, trial := range trials[8:] {
		assert.Equal(t, data.OperationRead, trial.Operation)
		assert.Equal(t, expected[i].Strategy, trial.Strategy)
		assert.Equal(t, expected[i].BlockSize, trial.BlockSize)
	}

	// 没有块大小时只有逐字节的试验
	assert.Equal(t, 4, len(TrialMatrix(nil)))
}

func TestTrial_Key(t *testing.T) {
	trial := Trial{Operation: data.OperationRead, Strategy: data.BlockByBlockWithBufferedStream, BlockSize: 5}
	assert.Equal(t, "READ-BlockByBlockWithBufferedStream-00005", string(trial.Key()))
	assert.Equal(t, "READ BlockByBlockWithBufferedStream (block size: 5)", trial.String())
}

func TestScratchFileName(t *testing.T) {
	name := ScratchFileName("/tmp/iobench", "test-data", data.ByteByByteWithoutBufferedStream, 0)
	assert.Equal(t, filepath.Join("/tmp/iobench", "test-data-ByteByByteWithoutBufferedStream-0.bin"), name)
}

func TestScratchFileCount(t *testing.T) {
	assert.Equal(t, 8, scratchFileCount([]int{500, 50, 5}))
	assert.Equal(t, 2, scratchFileCount(nil))
}
