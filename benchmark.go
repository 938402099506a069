package iobench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iobench/data"
	"iobench/fio"
	"iobench/index"
	"iobench/logging"
	"iobench/utils"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"go.uber.org/multierr"
)

const fileLockName = "flock"

// 测试文件中填充的字节, 取值和测量结果无关
const (
	byteFiller  byte = 'h' // 逐字节写入
	blockFiller byte = 'b' // 完整的块
	tailFiller  byte = 'B' // 最后不足一个块的部分
)

// Benchmark IO 基准测试实例
type Benchmark struct {
	options      Options
	recorder     *FileRecorder // 报告文件
	index        index.Indexer // 已记录的试验结果
	fileLock     *flock.Flock  // 文件锁, 保证同一个目录只有一个进程在测试
	timer        utils.Timer
	failedTrials uint // 执行失败, 没有被记录的试验数量
	closed       bool
}

// Stat 基准测试的统计信息
type Stat struct {
	TrialNum       uint  // 已记录的试验数量
	FailedTrialNum uint  // 失败的试验数量
	ScratchFileNum uint  // 测试文件的数量
	DiskSize       int64 // 数据目录占用磁盘空间的大小
}

// Open 打开基准测试实例, 创建报告文件并写入表头
func Open(options Options) (*Benchmark, error) {
	// 对用户传入的配置项进行校验
	if err := checkOptions(options); err != nil {
		return nil, err
	}

	// 判断数据目录是否存在, 如果不存在的话, 则创建这个目录
	if _, err := os.Stat(options.DirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(options.DirPath, os.ModePerm); err != nil {
			return nil, err
		}
	}

	// 判断是否有其他进程正在使用这个目录
	fileLock := flock.New(filepath.Join(options.DirPath, fileLockName))
	hold, err := fileLock.TryLock()
	if err != nil {
		return nil, err
	}
	if !hold {
		return nil, ErrBenchmarkIsRunning
	}

	bm, err := open(options, fileLock)
	if err != nil {
		return nil, multierr.Append(err, fileLock.Unlock())
	}
	return bm, nil
}

// 在持有文件锁的情况下初始化索引和报告文件
func open(options Options, fileLock *flock.Flock) (*Benchmark, error) {
	// 判断磁盘空间是否足够存放所有的测试文件
	availableDiskSize, err := utils.AvailableDiskSize(options.DirPath)
	if err != nil {
		return nil, err
	}
	if uint64(options.FileSize)*uint64(scratchFileCount(options.BlockSizes)) > availableDiskSize {
		return nil, ErrNoEnoughSpaceForRun
	}

	// B+ 树索引只保存最近一次测试的结果, 与报告文件一致
	if options.IndexType == BPlusTree {
		indexFile := filepath.Join(options.DirPath, index.BPlusTreeIndexFileName)
		if err := os.Remove(indexFile); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	indexer, err := index.NewIndexer(options.IndexType, options.DirPath, options.SyncWrites)
	if err != nil {
		return nil, err
	}

	recorder := NewFileRecorder(reportFileName(options), options.SyncWrites)
	if err := recorder.Init(); err != nil {
		return nil, multierr.Append(fmt.Errorf("failed to init the report file: %w", err), indexer.Close())
	}

	return &Benchmark{
		options:  options,
		recorder: recorder,
		index:    indexer,
		fileLock: fileLock,
	}, nil
}

// Close 关闭报告文件和索引并释放目录锁, 可以重复调用
func (b *Benchmark) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	return multierr.Combine(
		b.recorder.Close(),
		b.index.Close(),
		b.fileLock.Unlock(),
	)
}

// Stat 返回基准测试的统计信息
func (b *Benchmark) Stat() (*Stat, error) {
	if b.closed {
		return nil, ErrBenchmarkIsClosed
	}
	matches, err := filepath.Glob(filepath.Join(b.options.DirPath, b.options.FilePrefix+"-*.bin"))
	if err != nil {
		return nil, err
	}
	dirSize, err := utils.DirSize(b.options.DirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get dir size: %w", err)
	}
	return &Stat{
		TrialNum:       uint(b.index.Size()),
		FailedTrialNum: b.failedTrials,
		ScratchFileNum: uint(len(matches)),
		DiskSize:       dirSize,
	}, nil
}

// ReportFileName 报告文件的完整路径
func (b *Benchmark) ReportFileName() string {
	return b.recorder.FileName()
}

// Run 依次执行所有的试验并记录结果.
// 单个试验的 IO 失败只会记录日志并继续下一个试验, 报告文件写入失败则直接返回错误
func (b *Benchmark) Run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	var lastGroup string
	for _, trial := range TrialMatrix(b.options.BlockSizes) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if group := trialGroup(trial); group != lastGroup {
			logger.Infof("*** BENCHMARKING %s", group)
			lastGroup = group
		}

		record, err := b.performTrial(ctx, trial)
		if err != nil {
			b.failedTrials++
			logger.Errorw("Trial failed", "trial", trial.String(), "error", err)
			continue
		}
		if err := b.record(record); err != nil {
			return err
		}
	}
	return nil
}

// RunTrial 执行一次试验并记录结果
func (b *Benchmark) RunTrial(ctx context.Context, trial Trial) (data.Record, error) {
	record, err := b.performTrial(ctx, trial)
	if err != nil {
		b.failedTrials++
		return data.Record{}, err
	}
	if err := b.record(record); err != nil {
		return data.Record{}, err
	}
	return record, nil
}

// 执行一次试验, 返回还未记录的试验结果
func (b *Benchmark) performTrial(ctx context.Context, trial Trial) (data.Record, error) {
	if b.closed {
		return data.Record{}, ErrBenchmarkIsClosed
	}
	// 逐字节的策略不使用块大小, 统一记为 0
	if !trial.Strategy.BlockWise() {
		trial.BlockSize = 0
	}
	// 每个组合只能执行并记录一次
	if b.index.Get(trial.Key()) != nil {
		return data.Record{}, ErrTrialAlreadyRecorded
	}

	var duration, size int64
	var err error
	switch trial.Operation {
	case data.OperationWrite:
		size = b.options.FileSize
		duration, err = b.ProduceTestData(ctx, trial.Strategy, size, trial.BlockSize)
		if err == nil && b.options.VerifyWrites {
			err = b.VerifyTestData(trial.Strategy, size, trial.BlockSize)
		}
	case data.OperationRead:
		duration, size, err = b.ConsumeTestData(ctx, trial.Strategy, trial.BlockSize)
		if err == nil {
			b.checkReadSize(ctx, trial, size)
		}
	default:
		panic(fmt.Sprintf("unsupported operation %d", trial.Operation))
	}
	if err != nil {
		return data.Record{}, err
	}
	return data.NewRecord(trial.Operation, trial.Strategy, trial.BlockSize, size, duration)
}

// 读取到的字节数与对应写入试验的字节数不一致时只打印警告
func (b *Benchmark) checkReadSize(ctx context.Context, trial Trial, size int64) {
	written := b.index.Get(data.TrialKey(data.OperationWrite, trial.Strategy, trial.BlockSize))
	if written != nil && written.FileSizeInBytes != size {
		logging.FromContext(ctx).Warnw("Number of bytes read differs from bytes written",
			"trial", trial.String(), "written", written.FileSizeInBytes, "read", size)
	}
}

// 先更新索引再写入报告文件, 报告写入失败时从索引中移除
func (b *Benchmark) record(record data.Record) error {
	key := record.Key()
	if old := b.index.Put(key, &record); old != nil {
		b.index.Put(key, old)
		return ErrTrialAlreadyRecorded
	}
	if err := b.recorder.Record(record); err != nil {
		b.index.Delete(key)
		return fmt.Errorf("failed to record trial: %w", err)
	}
	return nil
}

// ProduceTestData 按照策略写入 numberOfBytesToWrite 个字节到测试文件中, 返回打开, 写入和关闭文件的总耗时(毫秒).
// 逐字节的策略会忽略 blockSize
func (b *Benchmark) ProduceTestData(ctx context.Context, strategy data.Strategy, numberOfBytesToWrite int64, blockSize int) (int64, error) {
	if numberOfBytesToWrite <= 0 {
		return 0, ErrInvalidFileSize
	}
	if strategy.BlockWise() && blockSize <= 0 {
		return 0, ErrInvalidBlockSize
	}
	logger := logging.FromContext(ctx)
	logger.Infow("Generating test data", "strategy", strategy.String(), "bytes", numberOfBytesToWrite, "blockSize", blockSize)

	fileName := ScratchFileName(b.options.DirPath, b.options.FilePrefix, strategy, blockSize)
	b.timer.Start()
	written, err := b.produceTestFile(fileName, strategy, numberOfBytesToWrite, blockSize)
	if err != nil {
		return 0, err
	}
	duration := b.timer.ElapsedMillis()
	if written != numberOfBytesToWrite {
		return 0, fmt.Errorf("wrote %d bytes, expected %d", written, numberOfBytesToWrite)
	}

	logger.Infow("Done", "durationInMs", duration)
	return duration, nil
}

func (b *Benchmark) produceTestFile(fileName string, strategy data.Strategy, numberOfBytesToWrite int64, blockSize int) (written int64, err error) {
	ioManager, err := fio.NewIOManager(fileName, ioTypeOf(strategy), fio.WriteMode, b.options.BufferSize)
	if err != nil {
		return 0, err
	}
	// 无论成功与否都要关闭文件, 缓冲流在关闭时才会把剩余的数据写入文件
	defer func() {
		err = multierr.Append(err, ioManager.Close())
	}()
	return produceDataToStream(ioManager, strategy, numberOfBytesToWrite, blockSize)
}

// produceDataToStream 并不关心 w 是否带缓冲, 只根据策略决定逐字节还是按块写入
func produceDataToStream(w fio.IOManager, strategy data.Strategy, numberOfBytesToWrite int64, blockSize int) (int64, error) {
	var written int64
	if !strategy.BlockWise() {
		for ; written < numberOfBytesToWrite; written++ {
			if err := w.WriteByte(byteFiller); err != nil {
				return written, err
			}
		}
		return written, nil
	}

	numberOfBlocks := numberOfBytesToWrite / int64(blockSize)
	remainder := numberOfBytesToWrite % int64(blockSize)
	block := bytes.Repeat([]byte{blockFiller}, blockSize)

	// 先写入完整的块
	for i := int64(0); i < numberOfBlocks; i++ {
		n, err := w.Write(block)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	// 最后写入不足一个块的部分
	if remainder != 0 {
		tail := block[:remainder]
		for j := range tail {
			tail[j] = tailFiller
		}
		n, err := w.Write(tail)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// ConsumeTestData 按照策略读取对应的测试文件直到末尾, 返回打开, 读取和关闭文件的总耗时(毫秒)以及读取到的字节数.
// 读到的内容不做校验, 只统计字节数
func (b *Benchmark) ConsumeTestData(ctx context.Context, strategy data.Strategy, blockSize int) (int64, int64, error) {
	if strategy.BlockWise() && blockSize <= 0 {
		return 0, 0, ErrInvalidBlockSize
	}
	logger := logging.FromContext(ctx)
	logger.Infow("Consuming test data", "strategy", strategy.String(), "blockSize", blockSize)

	fileName := ScratchFileName(b.options.DirPath, b.options.FilePrefix, strategy, blockSize)
	b.timer.Start()
	total, err := b.consumeTestFile(fileName, strategy, blockSize)
	if err != nil {
		return 0, 0, err
	}
	duration := b.timer.ElapsedMillis()

	logger.Infow("Number of bytes read", "bytes", total)
	logger.Infow("Done", "durationInMs", duration)
	return duration, total, nil
}

func (b *Benchmark) consumeTestFile(fileName string, strategy data.Strategy, blockSize int) (total int64, err error) {
	ioManager, err := fio.NewIOManager(fileName, ioTypeOf(strategy), fio.ReadMode, b.options.BufferSize)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = multierr.Append(err, ioManager.Close())
	}()

	if total, err = consumeDataFromStream(ioManager, strategy, blockSize); err != nil {
		return total, err
	}
	size, err := ioManager.Size()
	if err != nil {
		return total, err
	}
	if size != total {
		return total, fmt.Errorf("read %d bytes from %s, file size is %d", total, fileName, size)
	}
	return total, nil
}

// consumeDataFromStream 按照策略读取 r 直到 io.EOF, 返回读取到的字节数
func consumeDataFromStream(r fio.IOManager, strategy data.Strategy, blockSize int) (int64, error) {
	var total int64
	if !strategy.BlockWise() {
		for {
			if _, err := r.ReadByte(); err != nil {
				if errors.Is(err, io.EOF) {
					return total, nil
				}
				return total, err
			}
			total++
		}
	}

	// 最后一次读取可能不足一个块
	block := make([]byte, blockSize)
	for {
		n, err := r.Read(block)
		total += int64(n)
		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

func ioTypeOf(strategy data.Strategy) fio.FileIOType {
	if strategy.Buffered() {
		return fio.BufferedFIO
	}
	return fio.StandardFIO
}

// 日志中按 "操作 + 是否带缓冲" 对试验分组
func trialGroup(trial Trial) string {
	if trial.Strategy.Buffered() {
		return fmt.Sprintf("%s OPERATIONS (with BufferedStream)", trial.Operation)
	}
	return fmt.Sprintf("%s OPERATIONS (without BufferedStream)", trial.Operation)
}

// 每个策略和块大小的组合对应一个测试文件
func scratchFileCount(blockSizes []int) int {
	var count int
	for _, strategy := range data.Strategies {
		if strategy.BlockWise() {
			count += len(blockSizes)
		} else {
			count++
		}
	}
	return count
}

func reportFileName(options Options) string {
	if filepath.IsAbs(options.ReportPath) {
		return options.ReportPath
	}
	return filepath.Join(options.DirPath, options.ReportPath)
}

func checkOptions(options Options) error {
	if options.DirPath == "" {
		return errors.New("benchmark dir path is empty")
	}
	if options.FilePrefix == "" {
		return errors.New("scratch file prefix is empty")
	}
	if options.FileSize <= 0 {
		return errors.New("benchmark file size must be greater than 0")
	}
	if options.ReportPath == "" {
		return errors.New("report path is empty")
	}
	seen := make(map[int]struct{}, len(options.BlockSizes))
	for _, blockSize := range options.BlockSizes {
		if blockSize <= 0 {
			return fmt.Errorf("invalid block size %d, must be greater than 0", blockSize)
		}
		if _, ok := seen[blockSize]; ok {
			return fmt.Errorf("duplicated block size %d", blockSize)
		}
		seen[blockSize] = struct{}{}
	}
	switch options.IndexType {
	case Btree, ART, BPlusTree:
	default:
		return fmt.Errorf("unsupported index type %d", options.IndexType)
	}
	return nil
}
