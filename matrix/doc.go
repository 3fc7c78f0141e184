// Package matrix provides the dense numeric primitives used by the
// continuous-time Markov chain engine.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with safe accessors (At/Set/Row return
//     errors instead of panicking) and an optional finite-value policy.
//   - ValidateGenerator, the construction-time check for transition-rate
//     matrices: square, finite, non-negative off-diagonal, rows summing to ~0.
//   - DropDiagonal, the n×(n−1) off-diagonal view used for next-state sampling.
//   - RowSums, DivElements and Scale for normalization of running accumulators.
//
// All loops run in a fixed i→j order, so results are reproducible bit for bit.
package matrix
