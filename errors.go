package iobench

import "errors"

var (
	ErrBenchmarkIsRunning     = errors.New("the benchmark directory is used by another process")
	ErrBenchmarkIsClosed      = errors.New("the benchmark is closed")
	ErrNoEnoughSpaceForRun    = errors.New("no enough disk space for the scratch files")
	ErrInvalidBlockSize       = errors.New("block size must be greater than 0 for block wise strategies")
	ErrInvalidFileSize        = errors.New("number of bytes to write must be greater than 0")
	ErrTrialAlreadyRecorded   = errors.New("the trial has already been recorded")
	ErrRecorderNotInitialized = errors.New("the recorder is not initialized")
	ErrScratchFileCorrupted   = errors.New("the scratch file content does not match what was written")
	ErrInvalidReportHeader    = errors.New("invalid report header")
)
