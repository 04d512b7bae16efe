package xrest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession 记录 ClearAuth 调用次数。
type fakeSession struct {
	cleared atomic.Int32
}

func (f *fakeSession) ClearAuth() { f.cleared.Add(1) }

func envelopeHandler(env map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(env) //nolint:errcheck // 测试服务端
	}
}

func newTestClient(t *testing.T, serverURL string, opts ...Option) *Client {
	t.Helper()
	client, err := NewClient(&Config{BaseURL: serverURL}, opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient_ConfigValidation(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewClient(nil)
		assert.ErrorIs(t, err, ErrNilConfig)
	})

	t.Run("missing base url", func(t *testing.T) {
		_, err := NewClient(&Config{})
		assert.ErrorIs(t, err, ErrMissingBaseURL)
	})

	t.Run("invalid base url", func(t *testing.T) {
		_, err := NewClient(&Config{BaseURL: "not-a-url"})
		assert.ErrorIs(t, err, ErrInvalidBaseURL)
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		client, err := NewClient(&Config{BaseURL: "https://example.com/api/"})
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/api", client.BaseURL())
	})
}

func TestClient_Success(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "200",
		"success":  true,
		"data":     map[string]string{"name": "管理员"},
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, client.Get(context.Background(), "/rest/auth/userinfo", &out))
	assert.Equal(t, "管理员", out.Name)
}

func TestClient_NumericSuccessCode(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": 200,
		"success":  true,
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	assert.NoError(t, client.Get(context.Background(), "/x", nil))
}

func TestClient_BusinessError(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode":  "B1001",
		"message":   "用户名已存在",
		"success":   false,
		"errorsMap": map[string]string{"userId": "用户名已存在"},
	}))
	defer server.Close()

	session := &fakeSession{}
	nav := NewMemoryNavigator("/admin/user")
	client := newTestClient(t, server.URL, WithSession(session), WithNavigator(nav))

	err := client.Post(context.Background(), "/admin/user/save", map[string]string{"userId": "a"}, nil)
	require.Error(t, err)

	be, ok := AsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, "用户名已存在", be.Message())
	assert.Equal(t, "用户名已存在", be.FieldErrors()["userId"])

	// 业务错误不携带认证/权限标记，不触碰会话与位置
	assert.False(t, IsAuthError(err))
	assert.False(t, IsPermissionError(err))
	assert.Equal(t, int32(0), session.cleared.Load())
	assert.Equal(t, "/admin/user", nav.Current())
}

// TestClient_Business401 验证端到端场景：任意调用返回业务码 401 时
// 会话被清空、位置变为携带回跳参数的登录页。
func TestClient_Business401(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "401",
		"message":  "认证失败",
		"success":  false,
	}))
	defer server.Close()

	session := &fakeSession{}
	nav := NewMemoryNavigator("/admin/user")
	client := newTestClient(t, server.URL, WithSession(session), WithNavigator(nav))

	err := client.Get(context.Background(), "/admin/user/list", nil)
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
	assert.True(t, errors.Is(err, ErrSessionInvalid))

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "认证失败", authErr.Env.Message)

	assert.Equal(t, int32(1), session.cleared.Load())
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fuser", nav.Current())
}

func TestClient_AuthMarkerWithoutCode(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "500",
		"message":  "认证失败：会话已过期",
		"success":  false,
	}))
	defer server.Close()

	session := &fakeSession{}
	client := newTestClient(t, server.URL, WithSession(session))

	err := client.Get(context.Background(), "/x", nil)
	assert.True(t, IsAuthError(err))
	assert.Equal(t, int32(1), session.cleared.Load())
}

func TestClient_NoRedirectLoop(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "401",
		"message":  "认证失败",
	}))
	defer server.Close()

	session := &fakeSession{}
	nav := NewMemoryNavigator("/login")
	client := newTestClient(t, server.URL, WithSession(session), WithNavigator(nav))

	require.Error(t, client.Get(context.Background(), "/x", nil))
	assert.Equal(t, "/login", nav.Current(), "already on login page, must not navigate")
	assert.Equal(t, int32(1), session.cleared.Load(), "session is still cleared")
}

func TestClient_Business403(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "403",
		"message":  "权限不足",
	}))
	defer server.Close()

	session := &fakeSession{}
	nav := NewMemoryNavigator("/admin/role")
	client := newTestClient(t, server.URL, WithSession(session), WithNavigator(nav))

	err := client.Get(context.Background(), "/admin/role/list", nil)
	require.Error(t, err)
	assert.True(t, IsPermissionError(err))
	assert.False(t, IsAuthError(err))

	assert.Equal(t, int32(0), session.cleared.Load(), "403 must not clear the session")
	assert.Equal(t, NoPermissionPath, nav.Current())

	// 已在无权限页时不再跳转
	require.Error(t, client.Get(context.Background(), "/admin/role/list", nil))
	assert.Equal(t, NoPermissionPath, nav.Current())
}

func TestClient_Transport401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := &fakeSession{}
	nav := NewMemoryNavigator("/admin/job")
	client := newTestClient(t, server.URL, WithSession(session), WithNavigator(nav))

	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.True(t, IsAuthError(err), "transport 401 follows the same contract")
	assert.Equal(t, int32(1), session.cleared.Load())
	assert.Equal(t, "/login?redirect=%2Fadmin%2Fjob", nav.Current())
}

func TestClient_TransportErrorsPropagate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	session := &fakeSession{}
	client := newTestClient(t, server.URL, WithSession(session))

	err := client.Get(context.Background(), "/x", nil)
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
	assert.Equal(t, int32(0), session.cleared.Load())
}

func TestClient_NetworkError(t *testing.T) {
	client, err := NewClient(&Config{BaseURL: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	err = client.Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.False(t, IsAuthError(err))
	assert.False(t, IsPermissionError(err))
}

func TestClient_CookiesCarriedAcrossRequests(t *testing.T) {
	var sawCookie atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/rest/auth/login" {
			http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "abc", HttpOnly: true})
		} else if c, err := r.Cookie("SESSION"); err == nil && c.Value == "abc" {
			sawCookie.Store(true)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"restCode":"200","success":true}`)) //nolint:errcheck // 测试服务端
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	ctx := context.Background()
	require.NoError(t, client.Post(ctx, "/rest/auth/login", map[string]string{"userId": "a"}, nil))
	require.NoError(t, client.Get(ctx, "/rest/auth/userinfo", nil))
	assert.True(t, sawCookie.Load(), "session cookie must travel automatically")
}

func TestClient_GetPlain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"index":"1","title":"系统管理"}]`)) //nolint:errcheck // 测试服务端
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	var items []map[string]string
	require.NoError(t, client.GetPlain(context.Background(), "/common/menus", &items))
	require.Len(t, items, 1)
	assert.Equal(t, "系统管理", items[0]["title"])
}

func TestClient_GetBytes(t *testing.T) {
	payload := []byte{0xFF, 0xD8, 0xFF} // JPEG 魔数
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(payload) //nolint:errcheck // 测试服务端
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	data, err := client.GetBytes(context.Background(), "/rest/auth/captcha.jpg?key=k1")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClient_NilSessionAndNavigatorAreSafe(t *testing.T) {
	server := httptest.NewServer(envelopeHandler(map[string]any{
		"restCode": "401",
		"message":  "认证失败",
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	err := client.Get(context.Background(), "/x", nil)
	assert.True(t, IsAuthError(err), "error surface unchanged without injected side effects")
}
