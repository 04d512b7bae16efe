package xmenu

// FindByPath 深度优先查找路径等于 path 的第一个节点。
func FindByPath(nodes []Node, path string) (Node, bool) {
	for _, n := range nodes {
		if n.Path == path {
			return n, true
		}
		if found, ok := FindByPath(n.Children, path); ok {
			return found, true
		}
	}
	return Node{}, false
}

// AncestorChain 返回路径等于 path 的第一个节点的键链：
// 从根层祖先到节点自身。未找到时返回 nil 与 false。
func AncestorChain(nodes []Node, path string) ([]string, bool) {
	for _, n := range nodes {
		if n.Path == path {
			return []string{n.Key}, true
		}
		if chain, ok := AncestorChain(n.Children, path); ok {
			return append([]string{n.Key}, chain...), true
		}
	}
	return nil, false
}

// AncestorChainForKey 返回键等于 key 的第一个节点的键链：
// 从根层祖先到节点自身。未找到时返回 nil 与 false。
func AncestorChainForKey(nodes []Node, key string) ([]string, bool) {
	for _, n := range nodes {
		if n.Key == key {
			return []string{n.Key}, true
		}
		if chain, ok := AncestorChainForKey(n.Children, key); ok {
			return append([]string{n.Key}, chain...), true
		}
	}
	return nil, false
}
