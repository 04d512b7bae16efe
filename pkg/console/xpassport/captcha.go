package xpassport

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/omeyang/conkit/pkg/console/xrest"
)

// CaptchaImagePath 验证码图片端点，key 作为查询参数。
const CaptchaImagePath = "/rest/auth/captcha.jpg"

// Captcha 验证码挑战。创建时即生成首个 key，之后每次 Refresh
// 以新 key 覆盖旧 key，旧图片地址随之失效。
type Captcha struct {
	client *xrest.Client

	mu        sync.RWMutex
	key       string
	onRefresh func(key string)
}

// CaptchaOption 配置验证码挑战。
type CaptchaOption func(*Captcha)

// WithOnRefresh 设置刷新回调，每次生成新 key（含创建时）都会触发。
func WithOnRefresh(fn func(key string)) CaptchaOption {
	return func(c *Captcha) {
		c.onRefresh = fn
	}
}

// NewCaptcha 创建验证码挑战并立即生成首个 key。
func NewCaptcha(client *xrest.Client, opts ...CaptchaOption) (*Captcha, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	c := &Captcha{client: client}
	for _, opt := range opts {
		opt(c)
	}
	c.Refresh()
	return c, nil
}

// Refresh 生成新 key 并触发刷新回调。
func (c *Captcha) Refresh() {
	key := uuid.NewString()

	c.mu.Lock()
	c.key = key
	fn := c.onRefresh
	c.mu.Unlock()

	if fn != nil {
		fn(key)
	}
}

// Key 返回当前有效的验证码 key。
func (c *Captcha) Key() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key
}

// ImageURL 返回当前 key 对应的图片请求路径（相对于客户端基础地址）。
func (c *Captcha) ImageURL() string {
	return CaptchaImagePath + "?key=" + c.Key()
}

// Image 拉取当前 key 对应的验证码图片。
// 拉取失败不影响挑战：key 保持不变，调用方可重试。
func (c *Captcha) Image(ctx context.Context) ([]byte, error) {
	return c.client.GetBytes(ctx, c.ImageURL())
}
