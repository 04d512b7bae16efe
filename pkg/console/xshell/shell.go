package xshell

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/conkit/pkg/console/xmenu"
	"github.com/omeyang/conkit/pkg/console/xrest"
)


// InfoPath 系统展示信息端点。
const InfoPath = "/common/info"

// DefaultTitle 系统信息拉取失败时的兜底标题。
const DefaultTitle = "管理控制台"

// ErrNilClient 表示传入的 REST 客户端为 nil。
var ErrNilClient = errors.New("xshell: nil client")

// SystemInfo 控制台顶栏与页脚展示的系统信息。
type SystemInfo struct {
	Name      string `json:"name"`
	Copyright string `json:"copyright"`
	Version   string `json:"version"`
}

// Shell 控制台外壳：持有解析后的菜单树与系统信息。
type Shell struct {
	client *xrest.Client
	menus  *xmenu.Fetcher
	logger *slog.Logger
	title  string

	mu   sync.RWMutex
	tree []xmenu.Node
	info SystemInfo
}

// Option 配置外壳。
type Option func(*Shell)

// WithLogger 设置日志记录器。传入 nil 时保持 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Shell) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultTitle 设置系统信息缺失时的兜底标题。
func WithDefaultTitle(title string) Option {
	return func(s *Shell) {
		if title != "" {
			s.title = title
		}
	}
}

// New 创建控制台外壳。
func New(client *xrest.Client, opts ...Option) (*Shell, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	s := &Shell{
		client: client,
		logger: slog.Default(),
		title:  DefaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	fetcher, err := xmenu.NewFetcher(client, s.logger)
	if err != nil {
		return nil, err
	}
	s.menus = fetcher
	return s, nil
}

// Mount 并发拉取菜单树与系统信息，两者互不阻塞。
// 菜单失败由 xmenu 兜底为缺省菜单；系统信息失败兜底为缺省标题，
// 其错误经 Mount 返回供调用方记录，外壳本身保持可用。
func (s *Shell) Mount(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		tree := s.menus.Fetch(ctx)
		s.mu.Lock()
		s.tree = tree
		s.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		var info SystemInfo
		err := s.client.Get(ctx, InfoPath, &info)
		if err != nil {
			s.logger.Warn("xshell: fetch system info failed, using defaults",
				slog.Any("error", err))
			info = SystemInfo{Name: s.title}
		} else if info.Name == "" {
			info.Name = s.title
		}
		s.mu.Lock()
		s.info = info
		s.mu.Unlock()
		return err
	})

	return g.Wait()
}

// Menu 返回已装配的菜单树。Mount 之前为空。
func (s *Shell) Menu() []xmenu.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree
}

// Info 返回系统展示信息。Mount 之前为零值。
func (s *Shell) Info() SystemInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.info
}

// SyncRoute 按当前路径求选中菜单键与展开的祖先键链。
// 路径不在菜单树中时返回空选中与 nil 键链。
func (s *Shell) SyncRoute(path string) (selected string, open []string) {
	chain, ok := xmenu.AncestorChain(s.Menu(), path)
	if !ok {
		return "", nil
	}
	return chain[len(chain)-1], chain[:len(chain)-1]
}
