// Package xmenu 提供服务端菜单树的拉取、解析与查询。
//
// # 功能概述
//
//   - 拉取：GET /common/menus，响应为裸 JSON 数组（无信封包装），
//     失败时记录日志并退回内置缺省菜单
//   - 解析：保序、保形的纯转换，清洗 url 哨兵值、剥离查询串、
//     解析图标（图片或符号，永不缺失）
//   - 查询：按路径查找节点、求祖先键链
//
// # url 清洗规则
//
// 服务端以字符串 "null" 或 "null?" 前缀表示无可跳转地址，这类节点
// 仅作分组容器；其余 url 剥离查询串后保留路径部分。
package xmenu
