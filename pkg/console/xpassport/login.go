package xpassport

import (
	"context"
	"log/slog"
	"sync"

	"github.com/omeyang/conkit/pkg/console/xrest"
)

// 通知文案。失败时优先使用服务端返回的消息。
const (
	msgLoginSuccess = "登录成功"
	msgLoginFailed  = "登录失败，请稍后重试"
)

// FlowState 登录流程状态。
type FlowState int32

const (
	// StateIdle 空闲，可提交。
	StateIdle FlowState = iota

	// StateSubmitting 提交在途，拒绝新提交。
	StateSubmitting
)

// String 返回状态的可读名称。
func (s FlowState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Notifier 向用户呈现操作结果。
type Notifier interface {
	// Success 呈现成功消息。
	Success(message string)

	// Error 呈现失败消息。
	Error(message string)
}

// slogNotifier 缺省通知器，把消息写入日志。
type slogNotifier struct {
	logger *slog.Logger
}

func (n slogNotifier) Success(message string) { n.logger.Info(message) }
func (n slogNotifier) Error(message string)   { n.logger.Warn(message) }

// Form 登录表单。Submit 失败时会清空 Captcha 字段。
type Form struct {
	UserID   string
	Password string
	Captcha  string
}

// Flow 登录流程状态机。
type Flow struct {
	api      *API
	captcha  *Captcha
	nav      xrest.Navigator
	notifier Notifier
	logger   *slog.Logger

	mu    sync.Mutex
	state FlowState
}

// FlowOption 配置登录流程。
type FlowOption func(*Flow)

// WithNavigator 设置成功后跳转用的导航器。
func WithNavigator(nav xrest.Navigator) FlowOption {
	return func(f *Flow) {
		f.nav = nav
	}
}

// WithNotifier 设置通知器，缺省写入日志。
func WithNotifier(n Notifier) FlowOption {
	return func(f *Flow) {
		if n != nil {
			f.notifier = n
		}
	}
}

// WithLogger 设置日志记录器。传入 nil 时保持 slog.Default()。
func WithLogger(logger *slog.Logger) FlowOption {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFlow 创建登录流程。
func NewFlow(api *API, captcha *Captcha, opts ...FlowOption) (*Flow, error) {
	if api == nil {
		return nil, ErrNilClient
	}
	if captcha == nil {
		return nil, ErrNilCaptcha
	}
	f := &Flow{
		api:     api,
		captcha: captcha,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.notifier == nil {
		f.notifier = slogNotifier{logger: f.logger}
	}
	return f, nil
}

// State 返回当前流程状态。
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit 提交登录。
//
// 校验三项输入均非空；已有提交在途时返回 ErrSubmitInFlight。
// 成功：写入会话、通知成功、以替换历史方式跳转落地页。
// 失败：通知错误（优先服务端消息）、轮换验证码、清空表单验证码，
// 状态回到 Idle。
func (f *Flow) Submit(ctx context.Context, form *Form) error {
	if err := validate(form); err != nil {
		return err
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.state = StateSubmitting
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.state = StateIdle
		f.mu.Unlock()
	}()

	_, err := f.api.Login(ctx, LoginRequest{
		UserID:     form.UserID,
		Password:   form.Password,
		Platform:   Platform,
		Captcha:    form.Captcha,
		CaptchaKey: f.captcha.Key(),
	})
	if err != nil {
		f.fail(form, err)
		return err
	}

	f.notifier.Success(msgLoginSuccess)
	if f.nav != nil {
		f.nav.Replace(xrest.HomePath)
	}
	return nil
}

// fail 处理提交失败：通知、轮换验证码、清空验证码输入。
func (f *Flow) fail(form *Form, err error) {
	f.notifier.Error(failureMessage(err))
	f.logger.Warn("xpassport: login failed", slog.Any("error", err))
	f.captcha.Refresh()
	form.Captcha = ""
}

// failureMessage 优先取服务端消息，否则用通用文案。
func failureMessage(err error) string {
	if be, ok := xrest.AsBusinessError(err); ok && be.Message() != "" {
		return be.Message()
	}
	return msgLoginFailed
}

func validate(form *Form) error {
	switch {
	case form == nil, form.UserID == "":
		return ErrEmptyUserID
	case form.Password == "":
		return ErrEmptyPassword
	case form.Captcha == "":
		return ErrEmptyCaptcha
	default:
		return nil
	}
}
