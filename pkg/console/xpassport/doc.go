// Package xpassport 提供控制台登录流程：验证码挑战、登录提交与认证 API。
//
// # 功能概述
//
//   - 验证码挑战：客户端生成不可预测的 key，图片地址由 key 唯一确定，
//     支持按需刷新与刷新回调
//   - 登录流程状态机：Idle → Submitting → {Success, Failure}，
//     拒绝重复提交，失败时强制轮换验证码
//   - 认证 API：Login、Logout、UserInfo
//
// # 状态机
//
// Flow 在任一时刻只允许一个在途提交。提交成功后写入会话存储并
// 以替换历史的方式跳转到落地页；提交失败通知错误（优先服务端消息）、
// 轮换验证码并清空验证码输入，状态回到 Idle。
//
// # 验证码失效
//
// 每次刷新以新 key 覆盖旧 key，旧图片地址随之失效。图片拉取失败
// 不影响挑战本身：Key 保持可用，调用方可重试 Image。
package xpassport
