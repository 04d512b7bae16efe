package xguard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/omeyang/conkit/pkg/console/xrest"
	"github.com/omeyang/conkit/pkg/console/xsession"
)

func TestGuards_Symmetry(t *testing.T) {
	store := xsession.NewMemory()

	// 未认证：RequireAuth 改道登录页，RequireGuest 放行
	d := RequireAuth(store)
	assert.False(t, d.Allowed)
	assert.Equal(t, xrest.LoginPath, d.RedirectTo)

	d = RequireGuest(store)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.RedirectTo)

	// 已认证：镜像反转
	store.Login(xsession.User{ID: "admin"})

	d = RequireAuth(store)
	assert.True(t, d.Allowed)
	assert.Empty(t, d.RedirectTo)

	d = RequireGuest(store)
	assert.False(t, d.Allowed)
	assert.Equal(t, xrest.HomePath, d.RedirectTo)
}

// TestGuards_FreshEvaluation 验证守卫不缓存状态：会话变化后立即反映。
func TestGuards_FreshEvaluation(t *testing.T) {
	store := xsession.NewMemory()
	store.Login(xsession.User{ID: "admin"})
	assert.True(t, RequireAuth(store).Allowed)

	store.ClearAuth()
	assert.False(t, RequireAuth(store).Allowed)
	assert.True(t, RequireGuest(store).Allowed)
}

func TestGuards_NilAuthenticator(t *testing.T) {
	assert.False(t, RequireAuth(nil).Allowed)
	assert.True(t, RequireGuest(nil).Allowed)
}
