// Package nj reconstructs an unrooted binary tree from a matrix of pairwise
// dissimilarities using the Neighbor-Joining method (Saitou & Nei, 1987).
//
// 🚀 What is Neighbor-Joining?
//
//	NJ repeatedly joins the pair of active nodes that minimises the adjusted
//	distance
//
//	    Q(i,j) = (k-2)·D(i,j) − R(i) − R(j),   R(i) = Σ_m D(i,m)
//
//	rather than simply the closest pair, creates a parent for them, and
//	replaces both rows of the k×k matrix by one row for the parent. When three
//	nodes remain they are attached to a trifurcating root with the
//	three-point formula.
//
// ✨ Key features:
//   - deterministic tie-break: first minimum in row-major i<j order
//   - negative branch lengths clamped to 0
//   - near-symmetric input repaired by averaging both triangles
//   - Newick output with 6-decimal branch lengths
//   - tree record with id/label/distance/is_leaf/children for JSON/YAML
//   - run statistics (iterations, operation counter)
//   - OnJoin hook to observe every merge (pair, lengths, contracted matrix)
//
// ⚙️ Usage:
//
//	res, err := nj.BuildTree(dist, []string{"A", "B", "C", "D"},
//	    nj.WithLogger(logger))
//	if err != nil {
//	    // errors.Is(err, nj.ErrMalformedInput) for bad matrices/labels
//	}
//	fmt.Println(res.Newick)
//
// Lifecycle:
//
//	Constructed → Iterating(k=n..4) → Resolved(k=3) → Serialized
//
// A Builder handles exactly one reconstruction and is not safe for concurrent
// use. The finished *Node tree is never mutated again and may be read from
// many goroutines. Run independent reconstructions on independent Builders.
//
// Performance:
//
//   - Time:   O(n³)
//   - Memory: O(n²)
package nj
