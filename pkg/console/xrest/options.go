package xrest

import (
	"log/slog"
	"net/http"

	"github.com/omeyang/conkit/pkg/observability/xmetrics"
)

// Options 定义客户端的可选配置。
type Options struct {
	// Session 会话清理能力。
	// 为 nil 时会话失效只返回错误，不产生清空副作用。
	Session SessionClearer

	// Navigator 位置与跳转能力。
	// 为 nil 时不产生跳转副作用。
	Navigator Navigator

	// Policy 跳转决策策略。
	Policy RedirectPolicy

	// HTTPClient 自定义 HTTP 客户端。
	// 未携带 Cookie Jar 时会被补齐。
	HTTPClient *http.Client

	// Logger 日志记录器，缺省 slog.Default()。
	Logger *slog.Logger

	// Observer 可观测性接口。
	Observer xmetrics.Observer
}

// Option 定义配置客户端的函数类型。
type Option func(*Options)

func defaultOptions() *Options {
	return &Options{
		Policy:   NewRedirectPolicy(),
		Logger:   slog.Default(),
		Observer: xmetrics.NoopObserver{},
	}
}

func applyOptions(opts []Option) *Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithSession 注入会话清理能力。
// 传输层持有的是窄接口引用而非全局状态，便于测试替换。
func WithSession(session SessionClearer) Option {
	return func(o *Options) {
		o.Session = session
	}
}

// WithNavigator 注入位置与跳转能力。
func WithNavigator(nav Navigator) Option {
	return func(o *Options) {
		o.Navigator = nav
	}
}

// WithRedirectPolicy 设置跳转决策策略。
func WithRedirectPolicy(policy RedirectPolicy) Option {
	return func(o *Options) {
		o.Policy = policy
	}
}

// WithHTTPClient 设置自定义 HTTP 客户端。
// 可用于配置自定义传输层、代理等。
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithLogger 设置日志记录器。传入 nil 时保持 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithObserver 设置可观测性接口。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *Options) {
		if observer != nil {
			o.Observer = observer
		}
	}
}
