package viz

import (
	"github.com/san-kum/mergersrc/internal/dynamo"
)

// DensitySlice draws the cells of plane k whose density exceeds threshold.
// The slice is stretched over the whole canvas with the first grid axis
// horizontal and the second vertical, increasing upwards.
func DensitySlice(c *Canvas, state *dynamo.Field, k int, threshold float64) {
	c.Clear()

	nx, ny, nz := state.Dims()
	if k < 0 || k >= nz {
		return
	}

	pw, ph := 2*c.Width, 4*c.Height
	for py := 0; py < ph; py++ {
		j := (ph - 1 - py) * ny / ph
		for px := 0; px < pw; px++ {
			i := px * nx / pw
			if state.At(i, j, k, dynamo.URHO) > threshold {
				c.Set(px, py)
			}
		}
	}
}
