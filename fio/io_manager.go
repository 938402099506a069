package fio

import "errors"

const DataFilePerm = 0644

// DefaultBufferSize 缓冲流默认的缓冲区大小
const DefaultBufferSize = 8192

var (
	ErrReadOnly  = errors.New("io manager is read only")
	ErrWriteOnly = errors.New("io manager is write only")
)

type FileIOType = byte

const (
	// StandardFIO 标准文件 IO, 每次读写都是一次系统调用
	StandardFIO FileIOType = iota

	// BufferedFIO 带缓冲的文件 IO
	BufferedFIO

	// MemoryMap 内存文件映射, 只读
	MemoryMap
)

type OpenMode = byte

const (
	// ReadMode 只读打开已存在的文件
	ReadMode OpenMode = iota

	// WriteMode 创建或截断文件后只写
	WriteMode
)

// IOManager 抽象 IO 管理接口, 可以接入不同的 IO 类型
type IOManager interface {
	// Read 从当前位置读取数据到 buf 中, 读完返回 io.EOF
	Read([]byte) (int, error)

	// ReadByte 读取一个字节
	ReadByte() (byte, error)

	// Write 写入字节数组到文件中
	Write([]byte) (int, error)

	// WriteByte 写入一个字节
	WriteByte(byte) error

	// Close 关闭文件, 重复关闭不会报错
	Close() error

	// Size 获取文件大小
	Size() (int64, error)
}

// NewIOManager 初始化 IOManager, bufferSize 只对 BufferedFIO 生效
func NewIOManager(fileName string, ioType FileIOType, mode OpenMode, bufferSize int) (IOManager, error) {
	switch ioType {
	case StandardFIO:
		return NewFileIOManager(fileName, mode)
	case BufferedFIO:
		return NewBufferedIOManager(fileName, mode, bufferSize)
	case MemoryMap:
		if mode != ReadMode {
			return nil, ErrReadOnly
		}
		return NewMMapIOManager(fileName)
	default:
		panic("unsupported io type")
	}
}
