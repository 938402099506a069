package index

import (
	"fmt"
	"iobench/data"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
	"go.uber.org/multierr"
)

const BPlusTreeIndexFileName = "results-index"

var indexBucketName = []byte("iobench-results")

// BPlusTree B+ 树索引, 试验结果会持久化到数据目录中
// 主要封装了 go.etcd.io/bbolt
type BPlusTree struct {
	tree *bbolt.DB
}

// NewBPlusTree 初始化 B+ 树索引
func NewBPlusTree(dirPath string, syncWrites bool) (*BPlusTree, error) {
	opts := *bbolt.DefaultOptions
	opts.NoSync = !syncWrites
	opts.Timeout = time.Second
	bptree, err := bbolt.Open(filepath.Join(dirPath, BPlusTreeIndexFileName), 0644, &opts)
	if err != nil {
		return nil, err
	}

	// 第一次打开时创建保存试验结果的 bucket
	err = bptree.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(indexBucketName)
		return err
	})
	if err != nil {
		return nil, multierr.Append(err, bptree.Close())
	}
	return &BPlusTree{tree: bptree}, nil
}

// update 在读写事务中操作结果所在的 bucket, 失败说明索引文件已损坏
func (bpt *BPlusTree) update(op string, fn func(bucket *bbolt.Bucket) error) {
	if err := bpt.tree.Update(func(tx *bbolt.Tx) error {
		return fn(tx.Bucket(indexBucketName))
	}); err != nil {
		panic(fmt.Sprintf("bptree %s: %v", op, err))
	}
}

func (bpt *BPlusTree) view(op string, fn func(bucket *bbolt.Bucket)) {
	if err := bpt.tree.View(func(tx *bbolt.Tx) error {
		fn(tx.Bucket(indexBucketName))
		return nil
	}); err != nil {
		panic(fmt.Sprintf("bptree %s: %v", op, err))
	}
}

func (bpt *BPlusTree) Put(key []byte, record *data.Record) *data.Record {
	var previous []byte
	bpt.update("put", func(bucket *bbolt.Bucket) error {
		previous = copyBytes(bucket.Get(key))
		return bucket.Put(key, data.EncodeRecord(*record))
	})
	return decodeValue(previous)
}

func (bpt *BPlusTree) Get(key []byte) *data.Record {
	var value []byte
	bpt.view("get", func(bucket *bbolt.Bucket) {
		value = copyBytes(bucket.Get(key))
	})
	return decodeValue(value)
}

func (bpt *BPlusTree) Delete(key []byte) (*data.Record, bool) {
	var removed []byte
	bpt.update("delete", func(bucket *bbolt.Bucket) error {
		removed = copyBytes(bucket.Get(key))
		if removed == nil {
			return nil
		}
		return bucket.Delete(key)
	})
	record := decodeValue(removed)
	return record, record != nil
}

func (bpt *BPlusTree) Size() int {
	var size int
	bpt.view("size", func(bucket *bbolt.Bucket) {
		size = bucket.Stats().KeyN
	})
	return size
}

func (bpt *BPlusTree) Iterator(reverse bool) Iterator {
	return newBptreeIterator(bpt.tree, reverse)
}

func (bpt *BPlusTree) Close() error {
	return bpt.tree.Close()
}

// bbolt 返回的字节数组只在事务内有效
func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	dst := make([]byte, len(b))
	copy(dst, b)
	return dst
}

func decodeValue(value []byte) *data.Record {
	if len(value) == 0 {
		return nil
	}
	record, err := data.DecodeRecord(value)
	if err != nil {
		panic(fmt.Sprintf("bptree decode: %v", err))
	}
	return &record
}

// bptreeIterator 在只读事务中遍历, 使用完必须 Close 释放事务
type bptreeIterator struct {
	tx        *bbolt.Tx
	cursor    *bbolt.Cursor
	reverse   bool
	currKey   []byte
	currValue []byte
}

func newBptreeIterator(tree *bbolt.DB, reverse bool) *bptreeIterator {
	tx, err := tree.Begin(false)
	if err != nil {
		panic(fmt.Sprintf("bptree iterator: %v", err))
	}
	bpi := &bptreeIterator{
		tx:      tx,
		cursor:  tx.Bucket(indexBucketName).Cursor(),
		reverse: reverse,
	}
	bpi.Rewind()
	return bpi
}

func (bpi *bptreeIterator) Rewind() {
	if bpi.reverse {
		bpi.currKey, bpi.currValue = bpi.cursor.Last()
	} else {
		bpi.currKey, bpi.currValue = bpi.cursor.First()
	}
}

func (bpi *bptreeIterator) Seek(key []byte) {
	bpi.currKey, bpi.currValue = bpi.cursor.Seek(key)
	if !bpi.reverse {
		return
	}
	// 反向遍历时定位到第一个小于等于 key 的位置
	if bpi.currKey == nil {
		bpi.currKey, bpi.currValue = bpi.cursor.Last()
	} else if string(bpi.currKey) > string(key) {
		bpi.currKey, bpi.currValue = bpi.cursor.Prev()
	}
}

func (bpi *bptreeIterator) Next() {
	if bpi.reverse {
		bpi.currKey, bpi.currValue = bpi.cursor.Prev()
	} else {
		bpi.currKey, bpi.currValue = bpi.cursor.Next()
	}
}

func (bpi *bptreeIterator) Valid() bool {
	return len(bpi.currKey) != 0
}

func (bpi *bptreeIterator) Key() []byte {
	return bpi.currKey
}

func (bpi *bptreeIterator) Value() *data.Record {
	return decodeValue(bpi.currValue)
}

func (bpi *bptreeIterator) Close() {
	_ = bpi.tx.Rollback()
}
