package xrest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Code
	}{
		{"string 200", `"200"`, CodeOK},
		{"numeric 200", `200`, CodeOK},
		{"string 0", `"0"`, CodeOKZero},
		{"numeric 0", `0`, CodeOKZero},
		{"string 401", `"401"`, CodeUnauthorized},
		{"numeric 401", `401`, CodeUnauthorized},
		{"business code", `"B1001"`, Code("B1001")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Code
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &c))
			assert.Equal(t, tt.want, c)
		})
	}

	t.Run("invalid token", func(t *testing.T) {
		var c Code
		assert.Error(t, json.Unmarshal([]byte(`true`), &c))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		env  *Envelope
		want Class
	}{
		{"success 200", &Envelope{RestCode: "200", Success: true}, ClassSuccess},
		{"success legacy 0", &Envelope{RestCode: "0", Success: true}, ClassSuccess},
		{"success flag drift tolerated", &Envelope{RestCode: "200", Success: false}, ClassSuccess},
		{"code 401", &Envelope{RestCode: "401"}, ClassSessionInvalid},
		{"auth marker in message", &Envelope{RestCode: "500", Message: "用户认证失败，请重新登录"}, ClassSessionInvalid},
		{"auth marker beats success code", &Envelope{RestCode: "200", Message: "认证失败"}, ClassSessionInvalid},
		{"code 403", &Envelope{RestCode: "403"}, ClassPermissionDenied},
		{"denied marker in message", &Envelope{RestCode: "500", Message: "当前用户权限不足"}, ClassPermissionDenied},
		{"business error", &Envelope{RestCode: "B1001", Message: "参数校验失败", Success: false}, ClassBusinessError},
		{"non-success code but success flag", &Envelope{RestCode: "B1001", Success: true}, ClassSuccess},
		{"nil envelope", nil, ClassBusinessError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.env))
		})
	}
}

// TestClassify_TotalAndExclusive 验证任意信封恰好命中四类之一：
// 分类函数对枚举出的信封组合返回值必属于已知分类集合。
func TestClassify_TotalAndExclusive(t *testing.T) {
	codes := []Code{"200", "0", "401", "403", "500", "B1001", ""}
	messages := []string{"", "ok", "认证失败", "权限不足", "随便什么"}
	flags := []bool{true, false}

	known := map[Class]bool{
		ClassSuccess:          true,
		ClassSessionInvalid:   true,
		ClassPermissionDenied: true,
		ClassBusinessError:    true,
	}

	for _, code := range codes {
		for _, msg := range messages {
			for _, ok := range flags {
				env := &Envelope{RestCode: code, Message: msg, Success: ok}
				class := Classify(env)
				assert.True(t, known[class],
					"Classify(%+v) = %v outside known classes", env, class)
			}
		}
	}
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "Success", ClassSuccess.String())
	assert.Equal(t, "SessionInvalid", ClassSessionInvalid.String())
	assert.Equal(t, "PermissionDenied", ClassPermissionDenied.String())
	assert.Equal(t, "BusinessError", ClassBusinessError.String())
	assert.Equal(t, "Unknown", Class(99).String())
}
