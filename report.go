package iobench

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iobench/data"
	"os"
)

// LoadReport 读取报告文件中的所有试验记录, 表头必须与 data.ReportHeader 一致
func LoadReport(fileName string) ([]data.Record, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(data.ReportHeader)
	header, err := reader.Read()
	if err == io.EOF || errors.Is(err, csv.ErrFieldCount) {
		return nil, ErrInvalidReportHeader
	}
	if err != nil {
		return nil, err
	}
	for i, field := range data.ReportHeader {
		if header[i] != field {
			return nil, ErrInvalidReportHeader
		}
	}

	var records []data.Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		record, err := data.DecodeCSV(fields)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("invalid record at line %d: %w", line, err)
		}
		records = append(records, record)
	}
}
