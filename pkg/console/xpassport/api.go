package xpassport

import (
	"context"
	"log/slog"

	"github.com/omeyang/conkit/pkg/console/xrest"
	"github.com/omeyang/conkit/pkg/console/xsession"
)

const (
	// LoginPath 登录端点。
	LoginPath = "/rest/auth/login"

	// LogoutPath 登出端点。
	LogoutPath = "/auth/logout"

	// UserInfoPath 当前用户信息端点。
	UserInfoPath = "/rest/auth/userinfo"

	// Platform 登录请求中的固定平台标识。
	Platform = "console"
)

// LoginRequest 登录请求体。
type LoginRequest struct {
	UserID     string `json:"userId"`
	Password   string `json:"password"`
	Platform   string `json:"platform"`
	Captcha    string `json:"captcha"`
	CaptchaKey string `json:"captchaKey"`
}

// API 认证服务调用封装。
type API struct {
	client  *xrest.Client
	session *xsession.Store
	logger  *slog.Logger
}

// NewAPI 创建认证 API。logger 为 nil 时使用 slog.Default()。
func NewAPI(client *xrest.Client, session *xsession.Store, logger *slog.Logger) (*API, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if session == nil {
		return nil, ErrNilSession
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{client: client, session: session, logger: logger}, nil
}

// Login 提交登录请求，成功后写入会话存储。
func (a *API) Login(ctx context.Context, req LoginRequest) (xsession.User, error) {
	var user xsession.User
	if err := a.client.Post(ctx, LoginPath, req, &user); err != nil {
		return xsession.User{}, err
	}
	// 服务端未在登录响应中回填身份时退回 userinfo 端点
	if user.ID == "" && user.Name == "" {
		fetched, err := a.UserInfo(ctx)
		if err != nil {
			a.logger.Warn("xpassport: fetch userinfo after login failed", slog.Any("error", err))
			user.ID = req.UserID
		} else {
			user = fetched
		}
	}
	a.session.Login(user)
	return user, nil
}

// Logout 通知服务端登出并清空本地会话。
// 服务端调用失败时本地会话仍被清空，错误原样返回。
func (a *API) Logout(ctx context.Context) error {
	err := a.client.Post(ctx, LogoutPath, nil, nil)
	a.session.Logout()
	if err != nil {
		a.logger.Warn("xpassport: server logout failed", slog.Any("error", err))
	}
	return err
}

// UserInfo 获取当前登录用户信息。
func (a *API) UserInfo(ctx context.Context) (xsession.User, error) {
	var user xsession.User
	if err := a.client.Get(ctx, UserInfoPath, &user); err != nil {
		return xsession.User{}, err
	}
	return user, nil
}
