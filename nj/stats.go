package nj

import "fmt"

// AlgorithmName is reported in Statistics.Algorithm.
const AlgorithmName = "neighbor_joining"

// Statistics reports the cost of a run. It is observational only.
type Statistics struct {
	Algorithm       string `json:"algorithm" yaml:"algorithm"`
	NTaxa           int    `json:"n_taxa" yaml:"n_taxa"`
	Iterations      int    `json:"iterations" yaml:"iterations"`
	TotalOperations int    `json:"total_operations" yaml:"total_operations"`
	Complexity      string `json:"complexity" yaml:"complexity"`
}

// Statistics returns the counters collected so far.
func (b *Builder) Statistics() Statistics {
	return Statistics{
		Algorithm:       AlgorithmName,
		NTaxa:           b.nTaxa,
		Iterations:      b.iterations,
		TotalOperations: b.operations,
		Complexity:      fmt.Sprintf("O(n³) where n=%d", b.nTaxa),
	}
}
