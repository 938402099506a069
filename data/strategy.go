package data

import "fmt"

// Strategy IO 策略, 决定是否使用缓冲流以及每次读写的粒度
type Strategy byte

const (
	// ByteByByteWithoutBufferedStream 逐字节读写, 不使用缓冲流
	ByteByByteWithoutBufferedStream Strategy = iota

	// ByteByByteWithBufferedStream 逐字节读写, 使用缓冲流
	ByteByByteWithBufferedStream

	// BlockByBlockWithoutBufferedStream 按块读写, 不使用缓冲流
	BlockByBlockWithoutBufferedStream

	// BlockByBlockWithBufferedStream 按块读写, 使用缓冲流
	BlockByBlockWithBufferedStream
)

// Strategies 所有的 IO 策略
var Strategies = []Strategy{
	ByteByByteWithoutBufferedStream,
	ByteByByteWithBufferedStream,
	BlockByBlockWithoutBufferedStream,
	BlockByBlockWithBufferedStream,
}

// Buffered 是否需要在文件流外面包装一层缓冲
func (s Strategy) Buffered() bool {
	switch s {
	case ByteByByteWithoutBufferedStream, BlockByBlockWithoutBufferedStream:
		return false
	case ByteByByteWithBufferedStream, BlockByBlockWithBufferedStream:
		return true
	default:
		panic(fmt.Sprintf("unsupported io strategy %d", s))
	}
}

// BlockWise 是否按块读写
func (s Strategy) BlockWise() bool {
	switch s {
	case ByteByByteWithoutBufferedStream, ByteByByteWithBufferedStream:
		return false
	case BlockByBlockWithoutBufferedStream, BlockByBlockWithBufferedStream:
		return true
	default:
		panic(fmt.Sprintf("unsupported io strategy %d", s))
	}
}

func (s Strategy) String() string {
	switch s {
	case ByteByByteWithoutBufferedStream:
		return "ByteByByteWithoutBufferedStream"
	case ByteByByteWithBufferedStream:
		return "ByteByByteWithBufferedStream"
	case BlockByBlockWithoutBufferedStream:
		return "BlockByBlockWithoutBufferedStream"
	case BlockByBlockWithBufferedStream:
		return "BlockByBlockWithBufferedStream"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// ParseStrategy 根据名称解析 IO 策略
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown io strategy %q", name)
}
