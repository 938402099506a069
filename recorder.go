package iobench

import (
	"encoding/csv"
	"iobench/data"
	"iobench/fio"
	"os"

	"go.uber.org/multierr"
)

// FileRecorder 把试验记录以 CSV 的格式追加到报告文件中
type FileRecorder struct {
	fileName   string
	syncWrites bool
	file       *os.File
	writer     *csv.Writer
}

// NewFileRecorder 只记录文件名, 调用 Init 之后才会创建文件
func NewFileRecorder(fileName string, syncWrites bool) *FileRecorder {
	return &FileRecorder{fileName: fileName, syncWrites: syncWrites}
}

// Init 创建或截断报告文件, 并写入表头
func (r *FileRecorder) Init() error {
	if r.file != nil {
		if err := r.Close(); err != nil {
			return err
		}
	}
	file, err := os.OpenFile(r.fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fio.DataFilePerm)
	if err != nil {
		return err
	}
	r.file = file
	r.writer = csv.NewWriter(file)
	if err := r.write(data.ReportHeader); err != nil {
		return multierr.Append(err, r.Close())
	}
	return nil
}

// Record 写入一条试验记录, 返回之前数据已经写入文件
func (r *FileRecorder) Record(record data.Record) error {
	if r.file == nil {
		return ErrRecorderNotInitialized
	}
	return r.write(data.EncodeCSV(record))
}

func (r *FileRecorder) write(fields []string) error {
	if err := r.writer.Write(fields); err != nil {
		return err
	}
	r.writer.Flush()
	if err := r.writer.Error(); err != nil {
		return err
	}
	if r.syncWrites {
		return r.file.Sync()
	}
	return nil
}

// Close 关闭报告文件, 可以重复调用, 未 Init 时调用也不会报错
func (r *FileRecorder) Close() error {
	if r.file == nil {
		return nil
	}
	r.writer.Flush()
	err := multierr.Append(r.writer.Error(), r.file.Close())
	r.file = nil
	r.writer = nil
	return err
}

// FileName 报告文件路径
func (r *FileRecorder) FileName() string {
	return r.fileName
}
