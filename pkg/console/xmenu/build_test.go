package xmenu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ShapeAndOrderPreserved(t *testing.T) {
	raw := []RawNode{
		{
			Index: "1", Title: "系统管理", Icon: "fa-gear", URL: "null",
			Subs: []RawNode{
				{Index: "1-1", Title: "用户管理", Icon: "fa-user", URL: "/admin/user?page=1"},
				{Index: "1-2", Title: "角色管理", Icon: "fa-users", URL: "/admin/role"},
			},
		},
		{Index: "2", Title: "首页", Icon: "fa-home", URL: "/"},
	}

	nodes := Build(raw)
	require.Len(t, nodes, 2)
	require.Len(t, nodes[0].Children, 2)

	assert.Equal(t, "1", nodes[0].Key)
	assert.Equal(t, "系统管理", nodes[0].Label)
	assert.False(t, nodes[0].HasPath(), "null url means grouping node")

	assert.Equal(t, "1-1", nodes[0].Children[0].Key)
	assert.Equal(t, "/admin/user", nodes[0].Children[0].Path, "query string stripped")
	assert.Equal(t, "/admin/role", nodes[0].Children[1].Path)
	assert.Equal(t, "/", nodes[1].Path)
}

func TestCleanURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"null", ""},
		{"null?x=1", ""},
		{"/admin/user", "/admin/user"},
		{"/admin/user?page=2&size=10", "/admin/user"},
		{"", ""},
		{"nullable", "nullable"}, // 非哨兵，不清洗
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanURL(tt.raw))
		})
	}
}

func TestResolveIcon(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Icon
	}{
		{"raster png", "/static/icons/user.png", Icon{Kind: IconImage, Ref: "/static/icons/user.png"}},
		{"raster jpeg upper", "AVATAR.JPEG", Icon{Kind: IconImage, Ref: "AVATAR.JPEG"}},
		{"known class", "fa-user", Icon{Kind: IconSymbol, Ref: "user"}},
		{"class with modifier", "fa fa-gear", Icon{Kind: IconSymbol, Ref: "settings"}},
		{"unknown class", "fa-unknown-thing", Icon{Kind: IconSymbol, Ref: DefaultSymbol}},
		{"empty", "", Icon{Kind: IconSymbol, Ref: DefaultSymbol}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveIcon(tt.raw))
		})
	}
}

// TestBuild_StructuralIsomorphism 用三层嵌套夹具做递归的节点数与形状比对：
// 解析树与原始树节点一一对应，父子关系与顺序完全一致。
func TestBuild_StructuralIsomorphism(t *testing.T) {
	raw := []RawNode{
		{
			Index: "a", Title: "A", URL: "null",
			Subs: []RawNode{
				{
					Index: "a1", Title: "A1", URL: "null?x=1",
					Subs: []RawNode{
						{Index: "a1i", Title: "A1i", URL: "/a/1/i"},
						{Index: "a1ii", Title: "A1ii", URL: "/a/1/ii?q=2"},
					},
				},
				{Index: "a2", Title: "A2", URL: "/a/2"},
			},
		},
		{Index: "b", Title: "B", URL: "/b"},
	}

	nodes := Build(raw)

	var checkShape func(t *testing.T, raw []RawNode, nodes []Node)
	checkShape = func(t *testing.T, raw []RawNode, nodes []Node) {
		t.Helper()
		require.Equal(t, len(raw), len(nodes))
		for i := range raw {
			assert.Equal(t, raw[i].Index, nodes[i].Key)
			assert.Equal(t, raw[i].Title, nodes[i].Label)
			checkShape(t, raw[i].Subs, nodes[i].Children)
		}
	}
	checkShape(t, raw, nodes)

	var count func(nodes []Node) int
	count = func(nodes []Node) int {
		total := len(nodes)
		for _, n := range nodes {
			total += count(n.Children)
		}
		return total
	}
	assert.Equal(t, 6, count(nodes))
}

func TestBuild_Empty(t *testing.T) {
	assert.Nil(t, Build(nil))
	assert.Nil(t, Build([]RawNode{}))
}
