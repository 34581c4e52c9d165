package remote

// tree helpers shared by the in-process and redis backends. A node is either
// a leaf value or a map[string]any of children.

func getAt(root map[string]any, segments []string) (any, bool) {
	var node any = root
	for _, seg := range segments {
		children, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		if node, ok = children[seg]; !ok {
			return nil, false
		}
	}
	return node, true
}

func setAt(root map[string]any, segments []string, value any) {
	if len(segments) == 0 {
		return
	}
	node := root
	for _, seg := range segments[:len(segments)-1] {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[seg] = child
		}
		node = child
	}
	last := segments[len(segments)-1]
	if value == nil {
		delete(node, last)
		return
	}
	node[last] = value
}

// ancestors returns path and every parent path, deepest first.
func ancestors(path string) []string {
	segments := SplitPath(path)
	paths := make([]string, 0, len(segments))
	for i := len(segments); i > 0; i-- {
		paths = append(paths, JoinPath(segments[:i]...))
	}
	return paths
}
