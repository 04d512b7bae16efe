package xpassport

import "errors"

var (
	// ErrNilClient 表示传入的 REST 客户端为 nil。
	ErrNilClient = errors.New("xpassport: nil client")

	// ErrNilSession 表示传入的会话存储为 nil。
	ErrNilSession = errors.New("xpassport: nil session store")

	// ErrNilCaptcha 表示传入的验证码挑战为 nil。
	ErrNilCaptcha = errors.New("xpassport: nil captcha")

	// ErrEmptyUserID 表示用户名为空。
	ErrEmptyUserID = errors.New("xpassport: empty user id")

	// ErrEmptyPassword 表示密码为空。
	ErrEmptyPassword = errors.New("xpassport: empty password")

	// ErrEmptyCaptcha 表示验证码输入为空。
	ErrEmptyCaptcha = errors.New("xpassport: empty captcha")

	// ErrSubmitInFlight 表示已有提交在途，本次提交被拒绝。
	ErrSubmitInFlight = errors.New("xpassport: submit already in flight")
)
