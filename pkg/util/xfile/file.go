package xfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirPerm 默认目录权限。
//
// 0750：所有者读写执行，组读执行，其他无权限。符合 gosec G301 建议。
const DefaultDirPerm = 0750

// EnsureDir 确保 filename 的父目录存在，不存在时以 DefaultDirPerm 创建。
// 目录已存在时不修改其权限。
func EnsureDir(filename string) error {
	return EnsureDirWithPerm(filename, DefaultDirPerm)
}

// EnsureDirWithPerm 确保 filename 的父目录存在，使用指定权限创建。
// perm 必须包含所有者执行位（0100），否则目录无法进入和遍历。
func EnsureDirWithPerm(filename string, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("filename %q: %w", filename, ErrNullByte)
	}
	if perm&0100 == 0 {
		return fmt.Errorf("directory permission %04o missing owner execute bit: %w", perm, ErrInvalidPerm)
	}
	dir := filepath.Dir(filename)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

// WriteAtomic 将 data 原子写入 filename。
//
// 写入流程：同目录下创建临时文件 → 写入并 fsync → rename 覆盖目标文件。
// rename 在同一文件系统内是原子的，读取方要么看到旧内容要么看到新内容，
// 不会读到半写状态。临时文件必须与目标文件同目录，跨文件系统 rename 不原子。
func WriteAtomic(filename string, data []byte, perm os.FileMode) error {
	if filename == "" {
		return fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}
	if strings.ContainsRune(filename, 0) {
		return fmt.Errorf("filename %q: %w", filename, ErrNullByte)
	}

	dir := filepath.Dir(filename)
	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("xfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	// 任何一步失败都要清理临时文件，避免目录中积累垃圾
	cleanup := func(cause error) error {
		_ = tmp.Close()          //nolint:errcheck // 清理路径上的 Close 错误无法传播
		_ = os.Remove(tmpName)   //nolint:errcheck // 同上
		return cause
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("xfile: write temp file: %w", err))
	}
	if err := tmp.Chmod(perm); err != nil {
		return cleanup(fmt.Errorf("xfile: chmod temp file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("xfile: sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // 清理失败不掩盖 Close 错误
		return fmt.Errorf("xfile: close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // 清理失败不掩盖 Rename 错误
		return fmt.Errorf("xfile: rename temp file: %w", err)
	}
	return nil
}
