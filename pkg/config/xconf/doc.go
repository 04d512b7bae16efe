// Package xconf 提供控制台客户端的配置加载，基于 koanf 实现。
//
// # 功能概述
//
//   - New / NewFromBytes: 从 YAML/JSON 文件或字节数据加载配置
//   - Unmarshal: 类型安全反序列化（mapstructure，允许弱类型转换）
//   - Reload: 并发安全的热重载；Watch: 基于 fsnotify 的文件变更监视
//   - ResolveSettings: 解析控制台专用设置（API 基础路径、应用标题等），
//     环境变量覆盖优先于配置文件，缺省值兜底
//
// # 解析优先级
//
// 控制台设置按以下顺序取值，先命中先生效：
//  1. 环境变量（CONKIT_API_BASE / CONKIT_APP_TITLE）
//  2. 配置文件 console 段
//  3. 内置缺省值（API 基础路径 "/api"，标题 "管理控制台"）
//
// # 并发安全
//
// Reload 通过互斥锁序列化，解析成功后整体替换 koanf 实例；
// 读取方法持读锁访问当前实例。
package xconf
