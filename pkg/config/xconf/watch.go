package xconf

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce 缺省防抖时间。
// 编辑器保存文件时通常产生多个事件，防抖窗口内只触发一次重载。
const defaultDebounce = 100 * time.Millisecond

// WatchCallback 文件变更回调函数。
// 配置文件变更后重载完成时调用，err 表示重载是否成功。
type WatchCallback func(cfg Config, err error)

// Watcher 配置文件监视器。
type Watcher struct {
	cfg      *koanfConfig
	watcher  *fsnotify.Watcher
	callback WatchCallback
	debounce time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	running  bool
	timer    *time.Timer
}

// Watch 创建配置文件监视器。
//
// 文件变更时自动调用 Reload 并通过 callback 通知。
// 只支持从文件创建的 Config；返回的 Watcher 需调用 Start 开始监视，
// Stop 停止监视。
func Watch(cfg Config, callback WatchCallback) (*Watcher, error) {
	kc, ok := cfg.(*koanfConfig)
	if !ok {
		return nil, fmt.Errorf("xconf: unsupported config type %T", cfg)
	}
	if kc.isBytes || kc.path == "" {
		return nil, ErrNotReloadable
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("xconf: create watcher: %w", err)
	}

	// 监视配置文件所在目录而非文件本身：
	// 编辑器保存时可能先删除再创建，直接监视文件会丢失后续事件
	dir := filepath.Dir(kc.path)
	if err := fsWatcher.Add(dir); err != nil {
		closeErr := fsWatcher.Close()
		return nil, errors.Join(fmt.Errorf("xconf: watch directory %s: %w", dir, err), closeErr)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		cfg:      kc,
		watcher:  fsWatcher,
		callback: callback,
		debounce: defaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start 在后台 goroutine 中启动监视，立即返回。
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
}

// Stop 停止监视。重复调用返回 nil。
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.cancel()
	w.running = false
	return w.watcher.Close()
}

func (w *Watcher) run() {
	filename := filepath.Base(w.cfg.path)

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, filename)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.callback != nil {
				w.callback(w.cfg, fmt.Errorf("xconf: watch error: %w", err))
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event, filename string) {
	if filepath.Base(event.Name) != filename {
		return
	}
	// Write: 直接修改；Create: 新建；Rename: vim/emacs 式原子写入
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.ctx.Done():
			return
		default:
		}

		err := w.cfg.Reload()
		if w.callback != nil {
			w.callback(w.cfg, err)
		}
	})
}
