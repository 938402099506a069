package iobench

import (
	"iobench/index"
	"os"
	"path/filepath"
)

type Options struct {
	// 测试文件和报告所在的目录
	DirPath string

	// 测试文件名前缀, 测试文件名为 {prefix}-{strategy}-{blockSize}.bin
	FilePrefix string

	// 每次写入试验写入的字节数
	FileSize int64

	// 按块读写时使用的块大小
	BlockSizes []int

	// 报告文件路径, 相对路径基于 DirPath
	ReportPath string

	// 缓冲流的缓冲区大小
	BufferSize int

	// 是否在每条报告记录写入后持久化报告文件
	SyncWrites bool

	// 是否在每次写入试验之后校验测试文件的内容, 校验不计入耗时
	VerifyWrites bool

	// 试验结果索引类型
	IndexType IndexType
}

type IndexType = index.IndexType

const (
	// Btree 索引
	Btree = index.Btree

	// ART Adaptive Radix Tree 自适应基数树索引
	ART = index.ART

	// BPlusTree B+ 树索引, 将试验结果持久化到数据目录
	BPlusTree = index.BPTree
)

var DefaultOptions = Options{
	DirPath:      filepath.Join(os.TempDir(), "iobench"),
	FilePrefix:   "test-data",
	FileSize:     10 * 1024 * 1024, // 10MB
	BlockSizes:   []int{500, 50, 5},
	ReportPath:   "fileData.csv",
	BufferSize:   8192,
	SyncWrites:   false,
	VerifyWrites: false,
	IndexType:    Btree,
}

// IteratorOptions 遍历试验结果的配置项
type IteratorOptions struct {
	// 遍历前缀为指定值的 key, 默认为空, 例如 "READ" 只遍历读试验
	Prefix []byte

	// 是否反向遍历, 默认 false 是正向
	Reverse bool
}

var DefaultIteratorOptions = IteratorOptions{
	Prefix:  nil,
	Reverse: false,
}
