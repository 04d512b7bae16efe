package xrest

import (
	"net/url"
	"strings"
)

// 控制台路由。
const (
	// LoginPath 登录页路由。
	LoginPath = "/login"

	// NoPermissionPath 无权限页路由。
	NoPermissionPath = "/no-permission"

	// HomePath 登录后的落地路由。
	HomePath = "/"

	// RedirectParam 登录页回跳参数名。
	RedirectParam = "redirect"
)

// Action 一次响应处理后需要施加的副作用。
// 零值表示无副作用。
type Action struct {
	// ClearSession 是否清空会话存储。
	ClearSession bool

	// RedirectTo 跳转目标；为空表示不跳转。
	RedirectTo string
}

// RedirectPolicy 根据信封分类与当前位置决定副作用。
// 决策与施加分离：Decide 是纯函数，施加由客户端完成。
type RedirectPolicy struct {
	// Login 登录页路由，缺省 LoginPath。
	Login string

	// NoPermission 无权限页路由，缺省 NoPermissionPath。
	NoPermission string
}

// NewRedirectPolicy 创建使用缺省路由的策略。
func NewRedirectPolicy() RedirectPolicy {
	return RedirectPolicy{Login: LoginPath, NoPermission: NoPermissionPath}
}

// Decide 产出显式 Action。
//
// 会话失效时无条件清空会话；仅当当前位置尚未在登录页时才产生跳转，
// 跳转地址携带 URL 编码后的当前位置（含查询串）作为回跳参数。
// 权限不足时仅当尚未在无权限页时才跳转。
// 同一目标不重复跳转，保证不会出现跳转循环。
func (p RedirectPolicy) Decide(class Class, current string) Action {
	login := p.Login
	if login == "" {
		login = LoginPath
	}
	noPerm := p.NoPermission
	if noPerm == "" {
		noPerm = NoPermissionPath
	}

	switch class {
	case ClassSessionInvalid:
		action := Action{ClearSession: true}
		if pathOnly(current) != login {
			action.RedirectTo = login + "?" + RedirectParam + "=" + url.QueryEscape(current)
		}
		return action

	case ClassPermissionDenied:
		if pathOnly(current) != noPerm {
			return Action{RedirectTo: noPerm}
		}
		return Action{}

	default:
		return Action{}
	}
}

// pathOnly 去掉位置中的查询串，只保留路径部分。
func pathOnly(location string) string {
	if path, _, found := strings.Cut(location, "?"); found {
		return path
	}
	return location
}
