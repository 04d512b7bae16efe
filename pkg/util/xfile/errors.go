package xfile

import "errors"

var (
	// ErrEmptyPath 表示传入的路径为空。
	ErrEmptyPath = errors.New("xfile: empty path")

	// ErrNullByte 表示路径包含空字节。
	// Linux 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统
	// 看到的路径不一致，一律拒绝。
	ErrNullByte = errors.New("xfile: path contains null byte")

	// ErrInvalidPerm 表示目录权限缺少所有者执行位，目录将无法遍历。
	ErrInvalidPerm = errors.New("xfile: invalid directory permission")
)
