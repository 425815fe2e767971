package nj

// Patristic returns the tree-induced (path-length) distance between every
// pair of leaves under root. Rows follow root.Leaves() order; the labels of
// those leaves are returned alongside.
//
// For NJ output these distances approximate, but need not equal, the input
// distances.
// Complexity: O(n²·h) for n leaves and height h.
func Patristic(root *Node) ([]string, [][]float64) {
	parent := make(map[*Node]*Node)
	root.Walk(func(node *Node, _ int) {
		for _, c := range node.children {
			parent[c] = node
		}
	})

	leaves := root.Leaves()
	n := len(leaves)
	labels := make([]string, n)
	out := make([][]float64, n)
	for a := range leaves {
		labels[a] = leaves[a].label
		out[a] = make([]float64, n)
	}

	// up[a] maps every ancestor of leaves[a] (itself included) to its
	// distance from leaves[a].
	up := make([]map[*Node]float64, n)
	for a, leaf := range leaves {
		m := make(map[*Node]float64)
		var acc float64
		for cur := leaf; cur != nil; cur = parent[cur] {
			m[cur] = acc
			acc += cur.distance
		}
		up[a] = m
	}

	var acc float64
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			acc = 0
			for cur := leaves[b]; cur != nil; cur = parent[cur] {
				if da, ok := up[a][cur]; ok {
					out[a][b] = da + acc
					out[b][a] = da + acc
					break
				}
				acc += cur.distance
			}
		}
	}

	return labels, out
}
