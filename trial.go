package iobench

import (
	"fmt"
	"iobench/data"
	"path/filepath"
)

// Trial 一次试验的参数
type Trial struct {
	Operation data.Operation
	Strategy  data.Strategy
	BlockSize int
}

func (t Trial) String() string {
	return fmt.Sprintf("%s %s (block size: %d)", t.Operation, t.Strategy, t.BlockSize)
}

// Key 试验在结果索引中的 key
func (t Trial) Key() []byte {
	return data.TrialKey(t.Operation, t.Strategy, t.BlockSize)
}

// 先测试带缓冲的策略, 再测试不带缓冲的策略
var matrixStrategies = []data.Strategy{
	data.BlockByBlockWithBufferedStream,
	data.ByteByByteWithBufferedStream,
	data.BlockByBlockWithoutBufferedStream,
	data.ByteByByteWithoutBufferedStream,
}

// TrialMatrix 生成所有需要执行的试验, 先是所有的写入试验, 再是相同顺序的读取试验.
// 按块读写的策略对每个块大小各执行一次, 逐字节的策略块大小固定为 0
func TrialMatrix(blockSizes []int) []Trial {
	var trials []Trial
	for _, op := range []data.Operation{data.OperationWrite, data.OperationRead} {
		for _, strategy := range matrixStrategies {
			if !strategy.BlockWise() {
				trials = append(trials, Trial{Operation: op, Strategy: strategy, BlockSize: 0})
				continue
			}
			for _, blockSize := range blockSizes {
				trials = append(trials, Trial{Operation: op, Strategy: strategy, BlockSize: blockSize})
			}
		}
	}
	return trials
}

// ScratchFileName 测试文件路径, 同一组读写试验使用同一个文件
func ScratchFileName(dirPath, prefix string, strategy data.Strategy, blockSize int) string {
	return filepath.Join(dirPath, fmt.Sprintf("%s-%s-%d.bin", prefix, strategy, blockSize))
}
