package utils

import (
	"io/fs"
	"path/filepath"
	"syscall"
)

// DirSize 获取一个目录的大小
func DirSize(dirPath string) (int64, error) {
	var size int64
	err := filepath.Walk(dirPath, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size, err
}

// AvailableDiskSize 获取目录所在磁盘的可用空间大小, 字节为单位, dirPath 为空时取当前工作目录
func AvailableDiskSize(dirPath string) (uint64, error) {
	if dirPath == "" {
		wd, err := syscall.Getwd()
		if err != nil {
			return 0, err
		}
		dirPath = wd
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(dirPath, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
