package xmenu

import "strings"

// nullSentinel 服务端表示"无地址"的哨兵值。
const nullSentinel = "null"

// Build 把服务端菜单树解析为可用的菜单树。
// 纯函数：保序、保形，不修改输入。
func Build(raw []RawNode) []Node {
	if len(raw) == 0 {
		return nil
	}
	nodes := make([]Node, 0, len(raw))
	for _, r := range raw {
		nodes = append(nodes, Node{
			Key:      r.Index,
			Label:    r.Title,
			Path:     cleanURL(r.URL),
			Icon:     ResolveIcon(r.Icon),
			Children: Build(r.Subs),
		})
	}
	return nodes
}

// cleanURL 应用 url 清洗规则：
// "null" 与 "null?" 前缀表示无地址；其余剥离查询串保留路径。
func cleanURL(raw string) string {
	if raw == nullSentinel || strings.HasPrefix(raw, nullSentinel+"?") {
		return ""
	}
	path, _, _ := strings.Cut(raw, "?")
	return path
}
