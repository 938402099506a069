package data

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Operation 试验的操作类型
type Operation byte

const (
	OperationWrite Operation = iota
	OperationRead
)

func (op Operation) String() string {
	switch op {
	case OperationWrite:
		return "WRITE"
	case OperationRead:
		return "READ"
	default:
		return fmt.Sprintf("Operation(%d)", op)
	}
}

// ParseOperation 根据名称解析操作类型
func ParseOperation(name string) (Operation, error) {
	switch name {
	case "WRITE":
		return OperationWrite, nil
	case "READ":
		return OperationRead, nil
	default:
		return 0, fmt.Errorf("unknown operation %q", name)
	}
}

var (
	ErrInvalidBlockSize = errors.New("block size must not be negative")
	ErrInvalidFileSize  = errors.New("file size must be greater than 0")
	ErrInvalidDuration  = errors.New("duration must not be negative")
	ErrInvalidRecord    = errors.New("invalid encoded record")
)

// Record 一次试验的结果, 构造之后不再修改
type Record struct {
	Operation       Operation
	Strategy        Strategy
	BlockSize       int   // 块大小, 0 表示逐字节读写
	FileSizeInBytes int64 // 本次试验读写的总字节数
	DurationInMs    int64 // 耗时, 毫秒
}

// NewRecord 校验字段并构造一条试验记录
func NewRecord(op Operation, strategy Strategy, blockSize int, fileSizeInBytes, durationInMs int64) (Record, error) {
	if blockSize < 0 {
		return Record{}, ErrInvalidBlockSize
	}
	if fileSizeInBytes <= 0 {
		return Record{}, ErrInvalidFileSize
	}
	if durationInMs < 0 {
		return Record{}, ErrInvalidDuration
	}
	return Record{
		Operation:       op,
		Strategy:        strategy,
		BlockSize:       blockSize,
		FileSizeInBytes: fileSizeInBytes,
		DurationInMs:    durationInMs,
	}, nil
}

// Key 试验在索引中的 key, 同一个 (操作, 策略, 块大小) 组合只会对应一个 key
func (r Record) Key() []byte {
	return TrialKey(r.Operation, r.Strategy, r.BlockSize)
}

// TrialKey 块大小补齐到 5 位, 保证索引中按字节序排列时块大小也是有序的
func TrialKey(op Operation, strategy Strategy, blockSize int) []byte {
	return []byte(fmt.Sprintf("%s-%s-%05d", op, strategy, blockSize))
}

// op-1 strategy-1 blockSize-10 fileSize-10 duration-10
const maxRecordSize = 2 + binary.MaxVarintLen64*3

// EncodeRecord 对试验记录进行二进制编码, 用于持久化索引
func EncodeRecord(r Record) []byte {
	buf := make([]byte, maxRecordSize)
	buf[0] = byte(r.Operation)
	buf[1] = byte(r.Strategy)
	var index = 2
	index += binary.PutVarint(buf[index:], int64(r.BlockSize))
	index += binary.PutVarint(buf[index:], r.FileSizeInBytes)
	index += binary.PutVarint(buf[index:], r.DurationInMs)
	return buf[:index]
}

// DecodeRecord 解码二进制试验记录
func DecodeRecord(buf []byte) (Record, error) {
	if len(buf) < 5 {
		return Record{}, ErrInvalidRecord
	}
	r := Record{
		Operation: Operation(buf[0]),
		Strategy:  Strategy(buf[1]),
	}
	var index = 2
	blockSize, n := binary.Varint(buf[index:])
	if n <= 0 {
		return Record{}, ErrInvalidRecord
	}
	index += n
	fileSize, n := binary.Varint(buf[index:])
	if n <= 0 {
		return Record{}, ErrInvalidRecord
	}
	index += n
	duration, n := binary.Varint(buf[index:])
	if n <= 0 {
		return Record{}, ErrInvalidRecord
	}
	r.BlockSize = int(blockSize)
	r.FileSizeInBytes = fileSize
	r.DurationInMs = duration
	return r, nil
}
