// Package njtree reconstructs phylogenetic trees from pairwise distance
// matrices with the Neighbor-Joining method.
//
// 🚀 What is njtree?
//
//	A small, deterministic tree builder plus the plumbing to run it:
//		• matrix: dense distance storage, validators, symmetrization,
//		  row sums and row/column removal
//		• nj: the Neighbor-Joining builder, Newick and record output,
//		  run statistics and a per-merge hook
//		• internal/request: JSON/YAML request decoding and validation
//		• internal/batch: many independent trees in parallel with
//		  bounded workers and per-tree timeouts
//		• cmd/njtree: the command-line front end
//
// ✨ Guarantees
//
//   - Same input, same tree: ties break on the first pair in row-major order
//   - Branch lengths never negative
//   - Every taxon appears exactly once in the output
//
// Quick ASCII example (five taxa, root trifurcates):
//
//	        ┌── a
//	    ┌───┤
//	 ┌──┤   └── b
//	 │  └────── c
//	─┼───────── d
//	 └───────── e
//
//	go get github.com/katalvlaran/njtree/nj
package njtree
