package xrest

import "strings"

// 本地化消息片段。
// 历史后端在部分路径上不回填 401/403 状态码，只能靠消息片段识别。
const (
	// AuthFailureMarker 会话失效的消息标记。
	AuthFailureMarker = "认证失败"

	// PermissionDeniedMarker 权限不足的消息标记。
	PermissionDeniedMarker = "权限不足"
)

// Class 信封分类结果。
// 任意信封恰好命中四类之一。
type Class int

const (
	// ClassSuccess 成功。
	ClassSuccess Class = iota

	// ClassSessionInvalid 会话失效（业务码 401 或消息含认证失败标记）。
	ClassSessionInvalid

	// ClassPermissionDenied 权限不足（业务码 403 或消息含权限标记）。
	ClassPermissionDenied

	// ClassBusinessError 业务错误（非成功码且 success 为假）。
	ClassBusinessError
)

// String 返回分类的可读字符串表示。
func (c Class) String() string {
	switch c {
	case ClassSuccess:
		return "Success"
	case ClassSessionInvalid:
		return "SessionInvalid"
	case ClassPermissionDenied:
		return "PermissionDenied"
	case ClassBusinessError:
		return "BusinessError"
	default:
		return "Unknown"
	}
}

// Classify 对信封做纯分类，无任何副作用。
//
// 判定顺序：
//  1. restCode 为 401 或消息含认证失败标记 → 会话失效
//  2. restCode 为 403 或消息含权限标记 → 权限不足
//  3. restCode 非成功码且 success 为假 → 业务错误
//  4. 其余 → 成功（成功码优先于 success 标志的漂移）
func Classify(env *Envelope) Class {
	if env == nil {
		return ClassBusinessError
	}

	switch {
	case env.RestCode == CodeUnauthorized || strings.Contains(env.Message, AuthFailureMarker):
		return ClassSessionInvalid
	case env.RestCode == CodeForbidden || strings.Contains(env.Message, PermissionDeniedMarker):
		return ClassPermissionDenied
	case !env.RestCode.IsSuccess() && !env.Success:
		return ClassBusinessError
	default:
		return ClassSuccess
	}
}
