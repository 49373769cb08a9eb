package bedrock

// GenerateGrid returns a length×length grid of scale×scale tors placed with
// the given seed until the bedrock fraction reaches frac, together with the
// fraction actually achieved.
func GenerateGrid(length int, frac float64, seed int64, scale int) (*Grid, float64, error) {
	k, err := NewKernel(scale)
	if err != nil {
		return nil, 0, err
	}
	p, err := PlaceTors(length, frac, k, seed)
	if err != nil {
		return nil, 0, err
	}
	return p.Grid, p.Fraction, nil
}
