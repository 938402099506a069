package index

import (
	"bytes"
	"iobench/data"
	"sort"
)

// sliceIterator 内存索引的迭代器, 创建时把索引中的数据拷贝到数组中
type sliceIterator struct {
	currIndex int     // 当前遍历的下标位置
	reverse   bool    // 是否是反向遍历
	items     []*Item // 已按遍历方向排好序
}

func newSliceIterator(items []*Item, reverse bool) *sliceIterator {
	return &sliceIterator{reverse: reverse, items: items}
}

func (si *sliceIterator) Rewind() {
	si.currIndex = 0
}

func (si *sliceIterator) Seek(key []byte) {
	if si.reverse {
		si.currIndex = sort.Search(len(si.items), func(i int) bool {
			return bytes.Compare(si.items[i].key, key) <= 0
		})
	} else {
		si.currIndex = sort.Search(len(si.items), func(i int) bool {
			return bytes.Compare(si.items[i].key, key) >= 0
		})
	}
}

func (si *sliceIterator) Next() {
	si.currIndex += 1
}

func (si *sliceIterator) Valid() bool {
	return si.currIndex < len(si.items)
}

func (si *sliceIterator) Key() []byte {
	return si.items[si.currIndex].key
}

func (si *sliceIterator) Value() *data.Record {
	return si.items[si.currIndex].record
}

func (si *sliceIterator) Close() {
	si.items = nil
}
