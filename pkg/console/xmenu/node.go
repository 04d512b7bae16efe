package xmenu

// RawNode 服务端返回的菜单节点。
type RawNode struct {
	// Index 节点键，树内唯一。
	Index string `json:"index"`

	// Title 显示名称。
	Title string `json:"title"`

	// Icon 图标描述：图片地址或符号类名。
	Icon string `json:"icon"`

	// URL 跳转地址。"null" 或 "null?" 前缀表示无地址。
	URL string `json:"url"`

	// Subs 子节点，保序。
	Subs []RawNode `json:"subs"`
}

// Node 解析后的菜单节点。
type Node struct {
	// Key 节点键，来自 RawNode.Index。
	Key string

	// Label 显示名称。
	Label string

	// Path 路由路径。空串表示该节点仅作分组，不可跳转。
	Path string

	// Icon 解析后的图标，永不为零值。
	Icon Icon

	// Children 子节点，保持服务端顺序。
	Children []Node
}

// HasPath 报告节点是否携带可跳转路径。
func (n Node) HasPath() bool {
	return n.Path != ""
}
