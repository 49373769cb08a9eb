// Package bedrock synthesizes binary bedrock-exposure rasters and scores
// model rasters against truth rasters.
//
// Responsibilities: tor placement and grid generation, the error models that
// derive a model grid from a truth grid, confusion-matrix accuracy metrics and
// the edge-to-area perimeter metric.
// Key types: Grid, Kernel, TorPlacer, ErrorModel, Accuracy, LabelGrid.
//
// Cells hold 1 for bedrock and 0 for soil. Grids are square and are never
// mutated once returned; every model builds a new grid.
//
// Randomness is always call-scoped: each function that needs random draws
// takes an explicit seed and owns its generator, so identical arguments give
// identical grids regardless of call order or goroutine.
//
// The package does no I/O and does not log. Sweeps, plotting and export live
// in internal/sweep and internal/render.
package bedrock
