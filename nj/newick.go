package nj

import (
	"strconv"
	"strings"
)

// newickPrecision is the number of decimals written for branch lengths.
const newickPrecision = 6

// Newick renders the subtree rooted at n, including n's own branch length:
// a leaf is "label:length", an internal node "(c1,c2,...):length".
func (n *Node) Newick() string {
	var sb strings.Builder
	writeNewick(&sb, n)

	return sb.String()
}

// FormatNewick renders a whole tree as "(c1,c2,...);", omitting the root's
// own (zero) length.
func FormatNewick(root *Node) string {
	var sb strings.Builder
	writeChildren(&sb, root)
	sb.WriteByte(';')

	return sb.String()
}

func writeNewick(sb *strings.Builder, n *Node) {
	if n.IsLeaf() {
		sb.WriteString(n.label)
	} else {
		writeChildren(sb, n)
	}
	sb.WriteByte(':')
	sb.WriteString(strconv.FormatFloat(n.distance, 'f', newickPrecision, 64))
}

func writeChildren(sb *strings.Builder, n *Node) {
	sb.WriteByte('(')
	for x, c := range n.children {
		if x > 0 {
			sb.WriteByte(',')
		}
		writeNewick(sb, c)
	}
	sb.WriteByte(')')
}
