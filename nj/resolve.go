package nj

import (
	"fmt"
	"math"
)

// resolve attaches the last three active nodes A, B, C to the root:
//
//	len(A) = max(0, 0.5·(d_AB + d_AC − d_BC))
//	len(B) = max(0, 0.5·(d_AB + d_BC − d_AC))
//	len(C) = max(0, 0.5·(d_AC + d_BC − d_AB))
//
// The root keeps length 0 and its children follow the active order.
func (b *Builder) resolve() (*Node, error) {
	if n := b.st.size(); n != minTaxa {
		return nil, fmt.Errorf("%w: %d active nodes at star resolution, want %d", ErrInvariant, n, minTaxa)
	}

	d01 := b.st.dist(0, 1)
	d02 := b.st.dist(0, 2)
	d12 := b.st.dist(1, 2)
	lengths := [3]float64{
		math.Max(0, 0.5*(d01+d02-d12)),
		math.Max(0, 0.5*(d01+d12-d02)),
		math.Max(0, 0.5*(d02+d12-d01)),
	}

	var children [3]*Node
	for x, idx := range b.st.active {
		children[x] = b.nodes[idx]
		if err := children[x].join(lengths[x]); err != nil {
			return nil, err
		}
	}

	return newInternal(RootID, RootID, children[:]...), nil
}
