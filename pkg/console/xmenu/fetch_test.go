package xmenu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/conkit/pkg/console/xrest"
)

func newFetcher(t *testing.T, handler http.Handler) *Fetcher {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := xrest.NewClient(&xrest.Config{BaseURL: server.URL})
	require.NoError(t, err)
	fetcher, err := NewFetcher(client, nil)
	require.NoError(t, err)
	return fetcher
}

func TestFetcher_Fetch(t *testing.T) {
	fetcher := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, MenusPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// 裸数组，无信封包装
		_, _ = w.Write([]byte(`[{"index":"1","title":"系统管理","icon":"fa-gear","url":"null",` +
			`"subs":[{"index":"1-1","title":"用户管理","icon":"fa-user","url":"/admin/user?t=1"}]}]`)) //nolint:errcheck // 测试服务端
	}))

	nodes := fetcher.Fetch(context.Background())
	require.Len(t, nodes, 1)
	assert.Equal(t, "系统管理", nodes[0].Label)
	require.Len(t, nodes[0].Children, 1)
	assert.Equal(t, "/admin/user", nodes[0].Children[0].Path)
}

func TestFetcher_FetchFailureFallsBack(t *testing.T) {
	fetcher := newFetcher(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	nodes := fetcher.Fetch(context.Background())
	assert.Equal(t, DefaultMenu(), nodes, "failure falls back to the built-in menu")
}

func TestNewFetcher_NilClient(t *testing.T) {
	_, err := NewFetcher(nil, nil)
	assert.ErrorIs(t, err, ErrNilClient)
}
