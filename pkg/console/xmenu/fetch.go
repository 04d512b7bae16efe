package xmenu

import (
	"context"
	"log/slog"

	"github.com/omeyang/conkit/pkg/console/xrest"
)

// MenusPath 菜单端点。响应为裸 JSON 数组，不走信封契约。
const MenusPath = "/common/menus"

// Fetcher 拉取并解析服务端菜单树。
type Fetcher struct {
	client *xrest.Client
	logger *slog.Logger
}

// NewFetcher 创建菜单拉取器。logger 为 nil 时使用 slog.Default()。
func NewFetcher(client *xrest.Client, logger *slog.Logger) (*Fetcher, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{client: client, logger: logger}, nil
}

// Fetch 拉取菜单树并解析。拉取失败时记录日志并返回内置缺省菜单，
// 保证控制台始终有可呈现的导航。
func (f *Fetcher) Fetch(ctx context.Context) []Node {
	var raw []RawNode
	if err := f.client.GetPlain(ctx, MenusPath, &raw); err != nil {
		f.logger.Warn("xmenu: fetch menus failed, falling back to default",
			slog.Any("error", err))
		return DefaultMenu()
	}
	return Build(raw)
}
