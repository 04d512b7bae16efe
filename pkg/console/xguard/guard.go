package xguard

import "github.com/omeyang/conkit/pkg/console/xrest"

// Authenticator 报告当前是否处于已认证状态。
// *xsession.Store 满足该接口。
type Authenticator interface {
	IsAuthenticated() bool
}

// Decision 守卫裁决。
type Decision struct {
	// Allowed 为 true 时放行，RedirectTo 为空。
	Allowed bool

	// RedirectTo 改道目标。放行时为空。
	RedirectTo string
}

// allow 放行裁决。
var allow = Decision{Allowed: true}

// RequireAuth 守卫仅限已认证用户的路由。
// 未认证时改道登录页；此层不保留来路。
func RequireAuth(auth Authenticator) Decision {
	if auth != nil && auth.IsAuthenticated() {
		return allow
	}
	return Decision{RedirectTo: xrest.LoginPath}
}

// RequireGuest 守卫仅限未认证用户的路由（如登录页）。
// 已认证时改道落地页。
func RequireGuest(auth Authenticator) Decision {
	if auth != nil && auth.IsAuthenticated() {
		return Decision{RedirectTo: xrest.HomePath}
	}
	return allow
}
