package xrest

import (
	"errors"
	"fmt"
)

// =============================================================================
// 配置错误
// =============================================================================

var (
	// ErrNilConfig 表示传入的配置为 nil。
	ErrNilConfig = errors.New("xrest: nil config")

	// ErrMissingBaseURL 表示后端基础地址未配置。
	ErrMissingBaseURL = errors.New("xrest: missing base url")

	// ErrInvalidBaseURL 表示基础地址格式无效。
	// 必须包含协议与主机名，例如 "https://console.example.com/api"。
	ErrInvalidBaseURL = errors.New("xrest: invalid base url: must include scheme and host")
)

// =============================================================================
// 响应分类错误
// =============================================================================

var (
	// ErrSessionInvalid 表示会话失效（业务码或传输层 401）。
	ErrSessionInvalid = errors.New("xrest: session invalid")

	// ErrPermissionDenied 表示权限不足（业务码或传输层 403）。
	ErrPermissionDenied = errors.New("xrest: permission denied")
)

// AuthError 会话失效错误。
// 携带原始信封，调用方可据此抑制重复的错误提示。
type AuthError struct {
	Env *Envelope
}

func (e *AuthError) Error() string {
	if e.Env != nil && e.Env.Message != "" {
		return "xrest: session invalid: " + e.Env.Message
	}
	return "xrest: session invalid"
}

// Is 支持 errors.Is(err, ErrSessionInvalid)。
func (e *AuthError) Is(target error) bool {
	return target == ErrSessionInvalid
}

// PermissionError 权限不足错误。
type PermissionError struct {
	Env *Envelope
}

func (e *PermissionError) Error() string {
	if e.Env != nil && e.Env.Message != "" {
		return "xrest: permission denied: " + e.Env.Message
	}
	return "xrest: permission denied"
}

// Is 支持 errors.Is(err, ErrPermissionDenied)。
func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// BusinessError 业务错误：非成功信封，但既非会话失效也非权限不足。
// 不触发任何跳转或会话变更，原始信封原样携带，
// 表单类调用方可以从 ErrorsMap 做字段级展示。
//
// 有意不携带认证/权限标记——调用方以"标记缺失"识别普通业务错误，
// 这一既有约定必须保持。
type BusinessError struct {
	Env *Envelope
}

func (e *BusinessError) Error() string {
	if e.Env != nil && e.Env.Message != "" {
		return "xrest: business error: " + e.Env.Message
	}
	return "xrest: business error"
}

// Message 返回服务端消息；无消息时返回空字符串。
func (e *BusinessError) Message() string {
	if e.Env == nil {
		return ""
	}
	return e.Env.Message
}

// FieldErrors 返回字段级错误表；可能为 nil。
func (e *BusinessError) FieldErrors() map[string]string {
	if e.Env == nil {
		return nil
	}
	return e.Env.ErrorsMap
}

// TransportError 非 401/403 的传输层错误（HTTP 状态 >= 400）。
// 原样传播，不做重试。
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("xrest: http %d: %s", e.StatusCode, e.Body)
}

// =============================================================================
// 判定辅助
// =============================================================================

// IsAuthError 判断错误是否为会话失效。
// 对 *BusinessError 恒为 false。
func IsAuthError(err error) bool {
	return errors.Is(err, ErrSessionInvalid)
}

// IsPermissionError 判断错误是否为权限不足。
func IsPermissionError(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// AsBusinessError 提取业务错误；非业务错误时返回 nil, false。
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
