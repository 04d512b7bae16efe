package xmenu

import "errors"

// ErrNilClient 表示传入的 REST 客户端为 nil。
var ErrNilClient = errors.New("xmenu: nil client")

// DefaultMenu 返回内置缺省菜单，菜单拉取失败时兜底使用。
// 每次调用返回新切片，调用方可自由修改。
func DefaultMenu() []Node {
	return []Node{
		{
			Key:   "home",
			Label: "首页",
			Path:  "/",
			Icon:  Icon{Kind: IconSymbol, Ref: "home"},
		},
	}
}
