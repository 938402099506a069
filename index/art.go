package index

import (
	"iobench/data"
	"sync"

	goart "github.com/plar/go-adaptive-radix-tree"
)

// AdaptiveRadixTree 自适应基数树索引
// https://github.com/plar/go-adaptive-radix-tree
type AdaptiveRadixTree struct {
	tree goart.Tree
	lock *sync.RWMutex
}

// NewART 初始化自适应基数树索引
func NewART() *AdaptiveRadixTree {
	return &AdaptiveRadixTree{
		tree: goart.New(),
		lock: new(sync.RWMutex),
	}
}

func (art *AdaptiveRadixTree) Put(key []byte, record *data.Record) *data.Record {
	art.lock.Lock()
	oldValue, _ := art.tree.Insert(key, record)
	art.lock.Unlock()
	if oldValue == nil {
		return nil
	}
	return oldValue.(*data.Record)
}

func (art *AdaptiveRadixTree) Get(key []byte) *data.Record {
	art.lock.RLock()
	defer art.lock.RUnlock()
	value, found := art.tree.Search(key)
	if !found {
		return nil
	}
	return value.(*data.Record)
}

func (art *AdaptiveRadixTree) Delete(key []byte) (*data.Record, bool) {
	art.lock.Lock()
	oldValue, deleted := art.tree.Delete(key)
	art.lock.Unlock()
	if oldValue == nil {
		return nil, false
	}
	return oldValue.(*data.Record), deleted
}

func (art *AdaptiveRadixTree) Size() int {
	art.lock.RLock()
	size := art.tree.Size()
	art.lock.RUnlock()
	return size
}

func (art *AdaptiveRadixTree) Iterator(reverse bool) Iterator {
	art.lock.RLock()
	defer art.lock.RUnlock()
	return newARTIterator(art.tree, reverse)
}

func (art *AdaptiveRadixTree) Close() error {
	return nil
}

// ForEach 默认只遍历叶子节点, 顺序为 key 的字典序
func newARTIterator(tree goart.Tree, reverse bool) *sliceIterator {
	idx := 0
	if reverse {
		idx = tree.Size() - 1
	}
	items := make([]*Item, tree.Size())
	saveItem := func(node goart.Node) bool {
		items[idx] = &Item{
			key:    node.Key(),
			record: node.Value().(*data.Record),
		}
		if reverse {
			idx--
		} else {
			idx++
		}
		return true
	}
	tree.ForEach(saveItem)
	return newSliceIterator(items, reverse)
}
