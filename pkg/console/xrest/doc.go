// Package xrest 是控制台所有后端调用的唯一出口。
//
// # 功能概述
//
//   - 统一信封：解析后端响应包装 {restCode, message, data, success, errors, errorsMap}
//   - 凭据携带：Cookie Jar 随客户端自动附带会话 Cookie，调用方无需逐调用开启
//   - 认证契约：业务码/传输层 401 → 清空会话并跳转登录页（携带回跳地址）；
//     403 → 跳转无权限页；其余非成功信封 → 业务错误原样抛给调用方
//   - 可观测性：每次请求上报 xmetrics 跨度
//
// # 分类与副作用分离
//
// 响应处理拆成两步：Classify 对信封做纯分类（全覆盖且互斥），
// RedirectPolicy.Decide 根据分类与当前位置产出显式 Action，
// 再由客户端通过注入的 SessionClearer / Navigator 应用副作用。
// 分类逻辑因此可以脱离任何"浏览器位置"独立测试。
//
// # 双编码 401/403 判定
//
// 后端历史上混用两种信号：restCode 等值比较（字符串或数字形式）
// 与 message 中的本地化片段。两类信号的并集视为命中，
// 以免破坏既有后端行为。
//
// # 失败语义
//
// 网络错误与非 401/403 的传输层错误原样传播；不重试、不退避。
// 系统假定到后端的链路可靠（局域网/VPN），恢复手段是用户重新提交。
package xrest
