package xmenu

import "strings"

// IconKind 图标类别。
type IconKind int

const (
	// IconSymbol 符号图标，Ref 为符号名。
	IconSymbol IconKind = iota

	// IconImage 图片图标，Ref 为图片地址。
	IconImage
)

// Icon 菜单图标。
type Icon struct {
	Kind IconKind
	Ref  string
}

// DefaultSymbol 未识别类名时的兜底符号。
const DefaultSymbol = "menu"

// rasterExtensions 视为图片图标的文件后缀。
var rasterExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".ico"}

// symbolTable 已知图标类名到符号名的映射。
var symbolTable = map[string]string{
	"fa-home":      "home",
	"fa-user":      "user",
	"fa-users":     "users",
	"fa-gear":      "settings",
	"fa-cog":       "settings",
	"fa-wrench":    "tools",
	"fa-database":  "database",
	"fa-table":     "table",
	"fa-list":      "list",
	"fa-file":      "file",
	"fa-folder":    "folder",
	"fa-chart-bar": "chart",
	"fa-dashboard": "dashboard",
	"fa-bell":      "bell",
	"fa-key":       "key",
	"fa-lock":      "lock",
	"fa-shield":    "shield",
	"fa-sitemap":   "sitemap",
}

// ResolveIcon 把服务端图标描述解析为图标。
// 以已知图片后缀结尾的描述视为图片地址，其余按类名查符号表，
// 查不到时退回 DefaultSymbol。节点永不缺图标。
func ResolveIcon(raw string) Icon {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	for _, ext := range rasterExtensions {
		if strings.HasSuffix(lower, ext) {
			return Icon{Kind: IconImage, Ref: raw}
		}
	}
	// 类名可能带修饰（如 "fa fa-user"），取最后一个命中的词
	for _, field := range strings.Fields(lower) {
		if symbol, ok := symbolTable[field]; ok {
			return Icon{Kind: IconSymbol, Ref: symbol}
		}
	}
	return Icon{Kind: IconSymbol, Ref: DefaultSymbol}
}
