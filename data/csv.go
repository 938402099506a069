package data

import (
	"fmt"
	"strconv"
)

// ReportHeader 报告文件的表头, 字段顺序与 EncodeCSV 一致
var ReportHeader = []string{"operation", "strategy", "blockSize", "fileSizeInBytes", "durationInMs"}

// EncodeCSV 将试验记录序列化为报告中的一行
func EncodeCSV(r Record) []string {
	return []string{
		r.Operation.String(),
		r.Strategy.String(),
		strconv.Itoa(r.BlockSize),
		strconv.FormatInt(r.FileSizeInBytes, 10),
		strconv.FormatInt(r.DurationInMs, 10),
	}
}

// DecodeCSV 解析报告中的一行
func DecodeCSV(fields []string) (Record, error) {
	if len(fields) != len(ReportHeader) {
		return Record{}, fmt.Errorf("expected %d fields, got %d", len(ReportHeader), len(fields))
	}
	op, err := ParseOperation(fields[0])
	if err != nil {
		return Record{}, err
	}
	strategy, err := ParseStrategy(fields[1])
	if err != nil {
		return Record{}, err
	}
	blockSize, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("invalid blockSize: %w", err)
	}
	fileSize, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid fileSizeInBytes: %w", err)
	}
	duration, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("invalid durationInMs: %w", err)
	}
	return NewRecord(op, strategy, blockSize, fileSize, duration)
}
