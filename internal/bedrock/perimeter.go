package bedrock

// neighbours4 are the 4-connected offsets as (dr, dc).
var neighbours4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// EdgeToArea returns the number of edge cells divided by the number of
// bedrock cells. An edge cell is a bedrock cell with at least one
// 4-neighbour that is soil or lies outside the grid. Returns 0 for a grid
// with no bedrock.
func EdgeToArea(g *Grid) float64 {
	if g == nil {
		return 0
	}
	n := g.n
	area, edges := 0, 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if g.At(r, c) != Bedrock {
				continue
			}
			area++
			for _, off := range neighbours4 {
				nr, nc := r+off[0], c+off[1]
				if nr < 0 || nr >= n || nc < 0 || nc >= n || g.At(nr, nc) == Soil {
					edges++
					break
				}
			}
		}
	}
	if area == 0 {
		return 0
	}
	return float64(edges) / float64(area)
}
