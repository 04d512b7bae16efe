package xrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/omeyang/conkit/pkg/observability/xmetrics"
)

const (
	// DefaultTimeout 缺省请求超时。
	// 超时后调用以网络错误失败，无取消令牌穿透到上层。
	DefaultTimeout = 10 * time.Second

	// maxResponseSize 最大响应体大小（10MB），防止异常响应导致内存溢出。
	maxResponseSize = 10 * 1024 * 1024
)

// =============================================================================
// Config
// =============================================================================

// Config 定义 xrest 客户端配置。
type Config struct {
	// BaseURL 后端基础地址（必填），所有相对路径请求的前缀。
	// 例如：https://console.example.com/api
	BaseURL string

	// Timeout 请求超时时间，缺省 DefaultTimeout。
	Timeout time.Duration
}

// Clone 返回配置副本，避免外部修改。
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ApplyDefaults 填充缺省值。
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
}

// Validate 验证配置。
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	return nil
}

// =============================================================================
// Client
// =============================================================================

// Client 控制台 REST 客户端。
// 所有后端调用都经过它：附带凭据、解析信封、执行认证契约。
type Client struct {
	http     *http.Client
	baseURL  string
	session  SessionClearer
	nav      Navigator
	policy   RedirectPolicy
	logger   *slog.Logger
	observer xmetrics.Observer
}

// NewClient 创建客户端。
//
// 示例：
//
//	client, err := xrest.NewClient(&xrest.Config{
//	    BaseURL: "https://console.example.com/api",
//	}, xrest.WithSession(store), xrest.WithNavigator(nav))
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	cfg = cfg.Clone()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := applyOptions(opts)

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	// 凭据随 Cookie Jar 自动附带；注入的客户端未带 Jar 时补齐，
	// 保证"每个请求都携带凭据"的契约不依赖调用方自觉。
	if httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("xrest: create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	return &Client{
		http:     httpClient,
		baseURL:  cfg.BaseURL,
		session:  options.Session,
		nav:      options.Navigator,
		policy:   options.Policy,
		logger:   options.Logger,
		observer: options.Observer,
	}, nil
}

// BaseURL 返回后端基础地址（无尾部斜杠）。
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get 发送 GET 请求并按信封契约处理响应。
// out 非 nil 时将信封 data 字段反序列化到 out。
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.doEnveloped(ctx, http.MethodGet, path, nil, out)
}

// Post 发送 POST 请求并按信封契约处理响应。
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.doEnveloped(ctx, http.MethodPost, path, body, out)
}

// GetPlain 请求未包装信封的 JSON 端点（如 /common/menus），
// 响应体直接反序列化到 out。传输层 401/403 仍执行认证契约。
func (c *Client) GetPlain(ctx context.Context, path string, out any) error {
	respBody, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("xrest: unmarshal response: %w", err)
		}
	}
	return nil
}

// GetBytes 请求二进制端点（如验证码图片），返回原始响应体。
func (c *Client) GetBytes(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// =============================================================================
// 内部实现
// =============================================================================

// doEnveloped 执行请求并按信封契约分类处理。
func (c *Client) doEnveloped(ctx context.Context, method, path string, body, out any) error {
	respBody, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}

	var env Envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("xrest: unmarshal envelope: %w", err)
	}

	if err := c.settle(&env); err != nil {
		return err
	}
	return env.DecodeData(out)
}

// do 执行一次 HTTP 请求，处理传输层错误。
// 返回原始响应体（状态码 < 400 时）。
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	fullURL := c.baseURL + path

	ctx, span := xmetrics.Start(ctx, c.observer, xmetrics.SpanOptions{
		Component: MetricsComponent,
		Operation: MetricsOpRequest,
		Kind:      xmetrics.KindClient,
		Attrs: []xmetrics.Attr{
			{Key: MetricsAttrHTTPMethod, Value: method},
			{Key: MetricsAttrHTTPPath, Value: pathOnly(path)},
		},
	})
	var err error
	defer func() {
		span.End(xmetrics.Result{Err: err})
	}()

	var bodyReader io.Reader
	if body != nil {
		data, merr := json.Marshal(body)
		if merr != nil {
			err = fmt.Errorf("xrest: marshal request body: %w", merr)
			return nil, err
		}
		bodyReader = bytes.NewReader(data)
	}

	req, rerr := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if rerr != nil {
		err = fmt.Errorf("xrest: create request: %w", rerr)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, derr := c.http.Do(req)
	if derr != nil {
		err = fmt.Errorf("xrest: request failed: %w", derr)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }() //nolint:errcheck // Close 错误无法传播

	lr := &io.LimitedReader{R: resp.Body, N: maxResponseSize + 1}
	respBody, rderr := io.ReadAll(lr)
	if rderr != nil {
		err = fmt.Errorf("xrest: read response body: %w", rderr)
		return nil, err
	}
	if len(respBody) > maxResponseSize {
		err = fmt.Errorf("xrest: response body exceeds %d bytes", maxResponseSize)
		return nil, err
	}

	// 传输层 401/403 走与业务码完全相同的处理路径
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		err = c.settle(&Envelope{RestCode: CodeUnauthorized, Message: truncate(respBody)})
		return nil, err
	case http.StatusForbidden:
		err = c.settle(&Envelope{RestCode: CodeForbidden, Message: truncate(respBody)})
		return nil, err
	}
	if resp.StatusCode >= 400 {
		err = &TransportError{StatusCode: resp.StatusCode, Body: truncate(respBody)}
		return nil, err
	}

	return respBody, nil
}

// settle 分类信封、决策并施加副作用，返回对应错误（成功时为 nil）。
func (c *Client) settle(env *Envelope) error {
	class := Classify(env)
	if class == ClassSuccess {
		return nil
	}

	c.apply(c.policy.Decide(class, c.currentLocation()), class)

	switch class {
	case ClassSessionInvalid:
		return &AuthError{Env: env}
	case ClassPermissionDenied:
		return &PermissionError{Env: env}
	default:
		return &BusinessError{Env: env}
	}
}

// apply 施加副作用。业务错误的 Action 为零值，这里自然不做任何事。
func (c *Client) apply(action Action, class Class) {
	if action.ClearSession && c.session != nil {
		c.session.ClearAuth()
	}
	if action.RedirectTo != "" && c.nav != nil {
		c.logger.Debug("xrest: redirecting",
			slog.String("class", class.String()),
			slog.String("target", action.RedirectTo),
		)
		c.nav.Replace(action.RedirectTo)
	}
}

func (c *Client) currentLocation() string {
	if c.nav == nil {
		return ""
	}
	return c.nav.Current()
}

// truncate 截取响应体前 200 字节作为错误消息，避免超长错误串。
func truncate(body []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
