// Package xfile 提供 conkit 内部使用的文件操作辅助函数。
//
// 当前只覆盖会话持久化需要的两个能力：
//   - EnsureDir: 确保目标文件的父目录存在（默认权限 0750）
//   - WriteAtomic: 先写临时文件再 rename 的原子写入，
//     保证读取方不会看到半写状态的文件
package xfile
