package xrest

import (
	"encoding/json"
	"fmt"
)

// Code 信封状态码。
// 后端存在字符串与数字两种编码（"200" 与 200），
// 反序列化时统一归一为字符串形式。
type Code string

// 已知状态码。
const (
	// CodeOK 成功。
	CodeOK Code = "200"

	// CodeOKZero 成功（旧编码）。
	CodeOKZero Code = "0"

	// CodeUnauthorized 会话失效。
	CodeUnauthorized Code = "401"

	// CodeForbidden 权限不足。
	CodeForbidden Code = "403"
)

// UnmarshalJSON 接受字符串或数字形式的状态码。
func (c *Code) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("xrest: decode restCode: %w", err)
		}
		*c = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("xrest: decode restCode: %w", err)
	}
	*c = Code(n.String())
	return nil
}

// IsSuccess 判断是否为成功状态码（"200" 或 "0"，与 success 标志无关）。
func (c Code) IsSuccess() bool {
	return c == CodeOK || c == CodeOKZero
}

// Envelope 后端统一响应包装。
// restCode 是权威状态信号；success 标志可能与其漂移，以 restCode 为准。
type Envelope struct {
	RestCode  Code              `json:"restCode"`
	Message   string            `json:"message"`
	Data      json.RawMessage   `json:"data"`
	Success   bool              `json:"success"`
	Errors    []string          `json:"errors"`
	ErrorsMap map[string]string `json:"errorsMap"`
}

// DecodeData 将信封的 data 字段反序列化到目标结构体。
// data 为空时不做任何事。
func (e *Envelope) DecodeData(target any) error {
	if target == nil || len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("xrest: decode envelope data: %w", err)
	}
	return nil
}
