package xmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInternal, "Internal"},
		{KindClient, "Client"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestNoopObserver(t *testing.T) {
	t.Run("nil context is normalized", func(t *testing.T) {
		ctx, span := NoopObserver{}.Start(nil, SpanOptions{}) //nolint:staticcheck // 验证 nil ctx 兜底
		require.NotNil(t, ctx)
		require.NotNil(t, span)
		span.End(Result{})
	})

	t.Run("preserves caller context", func(t *testing.T) {
		type key struct{}
		base := context.WithValue(context.Background(), key{}, "v")
		ctx, _ := NoopObserver{}.Start(base, SpanOptions{Component: "xrest"})
		assert.Equal(t, "v", ctx.Value(key{}))
	})
}

// nilSpanObserver 返回 nil Span，验证包级 Start 的兜底行为。
type nilSpanObserver struct{}

func (nilSpanObserver) Start(_ context.Context, _ SpanOptions) (context.Context, Span) {
	return nil, nil
}

func TestStart(t *testing.T) {
	t.Run("nil observer yields noop span", func(t *testing.T) {
		ctx, span := Start(context.Background(), nil, SpanOptions{})
		require.NotNil(t, ctx)
		require.IsType(t, NoopSpan{}, span)
	})

	t.Run("nil ctx and nil span are backfilled", func(t *testing.T) {
		ctx, span := Start(nil, nilSpanObserver{}, SpanOptions{}) //nolint:staticcheck // 验证 nil ctx 兜底
		require.NotNil(t, ctx)
		require.IsType(t, NoopSpan{}, span)
	})
}

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   Status
	}{
		{"explicit status wins", Result{Status: StatusError}, StatusError},
		{"error implies error status", Result{Err: assert.AnError}, StatusError},
		{"no error implies ok", Result{}, StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveStatus(tt.result))
		})
	}
}
