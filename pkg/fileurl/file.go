// Package fileurl 提供文件路径相关的小工具
package fileurl

import (
	"os"
	"path/filepath"
)

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil || os.IsExist(err)
}

// CreatePath creates the parent directory of the given file path
// CreatePath 创建所给文件路径的父目录
func CreatePath(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// GetExePath gets the directory of the running executable
// GetExePath 获取当前可执行文件所在目录
func GetExePath() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Dir(exe)
}
