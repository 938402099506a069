package index

import (
	"iobench/data"
	"sync"

	"github.com/google/btree"
)

// BTree 索引, 主要封装了 google 的 btree 库
// https://github.com/google/btree
type BTree struct {
	tree *btree.BTree
	lock *sync.RWMutex
}

// NewBTree 新建 BTree 索引结构
func NewBTree() *BTree {
	return &BTree{
		tree: btree.New(32),
		lock: new(sync.RWMutex),
	}
}

func (bt *BTree) Put(key []byte, record *data.Record) *data.Record {
	it := &Item{key: key, record: record}
	bt.lock.Lock()
	oldItem := bt.tree.ReplaceOrInsert(it)
	bt.lock.Unlock()
	if oldItem == nil {
		return nil
	}
	return oldItem.(*Item).record
}

func (bt *BTree) Get(key []byte) *data.Record {
	it := &Item{key: key}
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	btreeItem := bt.tree.Get(it)
	if btreeItem == nil {
		return nil
	}
	return btreeItem.(*Item).record
}

func (bt *BTree) Delete(key []byte) (*data.Record, bool) {
	it := &Item{key: key}
	bt.lock.Lock()
	oldItem := bt.tree.Delete(it)
	bt.lock.Unlock()
	if oldItem == nil {
		return nil, false
	}
	return oldItem.(*Item).record, true
}

func (bt *BTree) Size() int {
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return bt.tree.Len()
}

func (bt *BTree) Iterator(reverse bool) Iterator {
	if bt.tree == nil {
		return nil
	}
	bt.lock.RLock()
	defer bt.lock.RUnlock()
	return newBTreeIterator(bt.tree, reverse)
}

func (bt *BTree) Close() error {
	return nil
}

func newBTreeIterator(tree *btree.BTree, reverse bool) *sliceIterator {
	items := make([]*Item, 0, tree.Len())
	saveItem := func(it btree.Item) bool {
		items = append(items, it.(*Item))
		return true
	}
	if reverse {
		tree.Descend(saveItem)
	} else {
		tree.Ascend(saveItem)
	}
	return newSliceIterator(items, reverse)
}
