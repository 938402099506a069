package index

import (
	"bytes"
	"iobench/data"

	"github.com/google/btree"
)

// Indexer 试验结果索引接口, key 为 data.TrialKey, 后续接入其他数据结构, 直接实现这个接口即可
type Indexer interface {
	// Put 向索引中存入 key 对应的试验记录, 返回被覆盖的旧记录
	Put(key []byte, record *data.Record) *data.Record

	// Get 根据 key 取出对应的试验记录
	Get(key []byte) *data.Record

	// Delete 根据 key 删除对应的试验记录
	Delete(key []byte) (*data.Record, bool)

	// Size 索引中的记录数量
	Size() int

	// Iterator 按 key 有序遍历的迭代器
	Iterator(reverse bool) Iterator

	// Close 关闭索引
	Close() error
}

type IndexType = int8

const (
	// Btree 索引
	Btree IndexType = iota + 1

	// ART Adaptive Radix Tree 自适应基数树索引
	ART

	// BPTree B+ 树索引, 结果会持久化到磁盘
	BPTree
)

// NewIndexer 根据类型初始化索引
func NewIndexer(typ IndexType, dirPath string, sync bool) (Indexer, error) {
	switch typ {
	case Btree:
		return NewBTree(), nil
	case ART:
		return NewART(), nil
	case BPTree:
		return NewBPlusTree(dirPath, sync)
	default:
		panic("unsupported index type")
	}
}

type Item struct {
	key    []byte
	record *data.Record
}

// Less 自定义 btree 中 key 的比较方法(排序规则)
func (ai *Item) Less(bi btree.Item) bool {
	return bytes.Compare(ai.key, bi.(*Item).key) == -1
}

// Iterator 通用索引迭代器
type Iterator interface {
	// Rewind 重新回到迭代器的起点
	Rewind()

	// Seek 根据传入的 key 查找到第一个大于(或小于)等于的目标 key, 从这个 key 开始遍历
	Seek(key []byte)

	// Next 跳转到下一个 key
	Next()

	// Valid 是否已经遍历完了所有的 key
	Valid() bool

	// Key 当前遍历位置的 key
	Key() []byte

	// Value 当前遍历位置的试验记录
	Value() *data.Record

	// Close 关闭迭代器, 释放相应资源
	Close()
}
