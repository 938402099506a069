package iobench

import (
	"bytes"
	"iobench/data"
	"iobench/index"
)

// Iterator 按 key 有序遍历已记录的试验结果
type Iterator struct {
	indexIter index.Iterator // 索引迭代器
	options   IteratorOptions
}

// NewIterator 初始化迭代器, B+ 树索引的迭代器会持有一个只读事务, 使用完必须 Close
func (b *Benchmark) NewIterator(opts IteratorOptions) *Iterator {
	indexIter := b.index.Iterator(opts.Reverse)
	it := &Iterator{
		indexIter: indexIter,
		options:   opts,
	}
	it.skipToNext()
	return it
}

// Rewind 重新回到迭代器的起点, 即第一个数据
func (it *Iterator) Rewind() {
	it.indexIter.Rewind()
	it.skipToNext()
}

// Seek 根据传入的 key 查找到第一个大于(或小于)等于的目标 key, 从这个 key 开始遍历
func (it *Iterator) Seek(key []byte) {
	it.indexIter.Seek(key)
	it.skipToNext()
}

// Next 跳转到下一个 key
func (it *Iterator) Next() {
	it.indexIter.Next()
	it.skipToNext()
}

// Valid 是否有效, 即是否已经遍历完了所有的 key, 用于退出遍历
func (it *Iterator) Valid() bool {
	return it.indexIter.Valid()
}

// Key 当前遍历位置的 key
func (it *Iterator) Key() []byte {
	return it.indexIter.Key()
}

// Value 当前遍历位置的试验记录
func (it *Iterator) Value() data.Record {
	return *it.indexIter.Value()
}

// Close 关闭迭代器, 释放相应资源
func (it *Iterator) Close() {
	it.indexIter.Close()
}

// 跳过不满足前缀的 key
func (it *Iterator) skipToNext() {
	prefixLen := len(it.options.Prefix)
	if prefixLen == 0 {
		return
	}

	for ; it.indexIter.Valid(); it.indexIter.Next() {
		key := it.indexIter.Key()
		if prefixLen <= len(key) && bytes.Equal(it.options.Prefix, key[:prefixLen]) {
			break
		}
	}
}

// ListRecords 按 key 的顺序返回所有已记录的试验结果
func (b *Benchmark) ListRecords() []data.Record {
	iterator := b.NewIterator(DefaultIteratorOptions)
	defer iterator.Close()
	records := make([]data.Record, 0, b.index.Size())
	for ; iterator.Valid(); iterator.Next() {
		records = append(records, iterator.Value())
	}
	return records
}

// Fold 遍历所有的试验结果, 并执行用户指定的操作, 函数返回 false 时终止遍历
func (b *Benchmark) Fold(fn func(record data.Record) bool) {
	iterator := b.NewIterator(DefaultIteratorOptions)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		if !fn(iterator.Value()) {
			break
		}
	}
}
