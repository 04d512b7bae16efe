package xsession

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/omeyang/conkit/pkg/util/xfile"
)

// 持久化位置。
const (
	// StorageNamespace 持久化命名空间，位于用户配置目录之下。
	StorageNamespace = "conkit/console"

	// StorageFile 持久化文件名。
	StorageFile = "session.json"

	// storageFilePerm 会话文件权限。会话内容包含用户身份，仅所有者可读写。
	storageFilePerm = 0600
)

// state 会话的完整状态。变更时整体替换。
type state struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	CurrentUser     *User `json:"currentUser"`
}

// Store 会话存储。
// 并发安全；所有变更通过 Login / Logout / ClearAuth 完成。
type Store struct {
	mu     sync.RWMutex
	state  state
	path   string // 为空时仅保存在内存中
	logger *slog.Logger
}

// Option 定义 Store 的配置选项。
type Option func(*Store)

// WithPath 设置持久化文件路径。
func WithPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.path = path
		}
	}
}

// WithLogger 设置日志记录器。传入 nil 时使用 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New 创建会话存储并从持久化文件恢复状态。
// 未通过 WithPath 指定路径时使用 DefaultPath；
// 文件不存在或无法解析时从空会话开始（不报错）。
func New(opts ...Option) (*Store, error) {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if s.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		s.path = path
	}

	s.restore()
	return s, nil
}

// NewMemory 创建不落盘的会话存储，用于测试或一次性会话。
func NewMemory(opts ...Option) *Store {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.path = ""
	return s
}

// DefaultPath 返回缺省持久化文件路径。
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("xsession: resolve user config dir: %w", err)
	}
	return filepath.Join(base, StorageNamespace, StorageFile), nil
}

// Login 记录登录成功后的会话状态。
// 调用方必须已经通过后端验证了凭据，Login 本身不发起网络调用。
func (s *Store) Login(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := user
	s.state = state{IsAuthenticated: true, CurrentUser: &u}
	s.persistLocked()
}

// Logout 清空会话。
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ClearAuth 清空会话。
// 与 Logout 行为一致，供 HTTP 层在检测到认证失效时调用；
// 对已清空的会话是无操作。
func (s *Store) ClearAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.IsAuthenticated && s.state.CurrentUser == nil {
		return
	}
	s.clearLocked()
}

// IsAuthenticated 返回当前是否处于登录态。
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// CurrentUser 返回当前用户；未登录时 ok 为 false。
func (s *Store) CurrentUser() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state.CurrentUser == nil {
		return User{}, false
	}
	return *s.state.CurrentUser, true
}

// Path 返回持久化文件路径；纯内存存储返回空字符串。
func (s *Store) Path() string {
	return s.path
}

func (s *Store) clearLocked() {
	s.state = state{}
	s.persistLocked()
}

// persistLocked 将当前状态写入持久化文件。
// 写入失败只记录日志：会话状态以内存为准，落盘是尽力而为的恢复手段，
// 不能因为磁盘问题阻断登录/登出。
func (s *Store) persistLocked() {
	if s.path == "" {
		return
	}

	data, err := json.Marshal(s.state)
	if err != nil {
		s.logger.Error("xsession: marshal session state failed", slog.Any("error", err))
		return
	}
	if err := xfile.EnsureDir(s.path); err != nil {
		s.logger.Error("xsession: ensure session dir failed", slog.Any("error", err))
		return
	}
	if err := xfile.WriteAtomic(s.path, data, storageFilePerm); err != nil {
		s.logger.Error("xsession: persist session failed", slog.Any("error", err))
	}
}

// restore 从持久化文件恢复状态。文件缺失或损坏时保持空会话。
func (s *Store) restore() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("xsession: read session file failed", slog.Any("error", err))
		}
		return
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		s.logger.Warn("xsession: corrupt session file, starting empty", slog.Any("error", err))
		return
	}
	s.state = st
}
