// Package xguard 提供路由守卫：按会话状态放行或改道。
//
// 两个守卫互为镜像，均为纯函数，每次调用重新读取会话状态：
//
//   - RequireAuth：仅已认证可进，否则改道登录页（不保留来路）
//   - RequireGuest：仅未认证可进，否则改道落地页
package xguard
