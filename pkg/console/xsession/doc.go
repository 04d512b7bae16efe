// Package xsession 提供控制台的会话状态存储。
//
// Store 是进程内唯一可信的认证状态来源：登录态标志与当前用户。
// 其他组件只通过读取器访问状态，只通过 Login / Logout / ClearAuth 变更状态，
// 每次变更都是一次原子的整体替换，不存在半更新状态。
//
// # 持久化
//
// 状态以 JSON 形式持久化到固定命名空间下的文件
// （缺省为用户配置目录下的 conkit/console/session.json），
// 采用临时文件 + rename 的原子写入，进程重启后恢复。
// 多进程间不做实时同步，下次读取时达到最终一致即可。
//
// # 幂等性
//
// ClearAuth 对已清空的会话是无操作，HTTP 层在 401 处理路径上
// 可以安全地重复调用。
package xsession
