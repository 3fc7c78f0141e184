// SPDX-License-Identifier: MIT

package estimator

// tally accumulates first-passage samples for every ordered pair (i, j) of
// an n-state chain, in row-major flat buffers.
//
// A pending mark is tagged (armed + value) rather than using a sentinel, so
// a legitimately zero timestamp or jump index can be armed.
type tally[T float64 | int64] struct {
	n     int
	sum   []T
	count []int64
	mark  []T
	armed []bool
}

func newTally[T float64 | int64](n int) tally[T] {
	return tally[T]{
		n:     n,
		sum:   make([]T, n*n),
		count: make([]int64, n*n),
		mark:  make([]T, n*n),
		armed: make([]bool, n*n),
	}
}

// arm stamps every cell of row i with v, discarding unconsumed marks.
func (t *tally[T]) arm(i int, v T) {
	row := i * t.n
	for k := row; k < row+t.n; k++ {
		t.mark[k] = v
		t.armed[k] = true
	}
}

// armIdle stamps only the cells of row i that are not already armed.
func (t *tally[T]) armIdle(i int, v T) {
	row := i * t.n
	for k := row; k < row+t.n; k++ {
		if !t.armed[k] {
			t.mark[k] = v
			t.armed[k] = true
		}
	}
}

// consume closes every armed cell of column j with a sample v - mark.
// Only column j is disarmed; other columns keep their marks.
func (t *tally[T]) consume(j int, v T) {
	for k := j; k < len(t.mark); k += t.n {
		if !t.armed[k] {
			continue
		}
		t.sum[k] += v - t.mark[k]
		t.count[k]++
		t.armed[k] = false
	}
}

// sums returns the sums as float64, row-major.
func (t *tally[T]) sums() []float64 {
	out := make([]float64, len(t.sum))
	for k, v := range t.sum {
		out[k] = float64(v)
	}
	return out
}

// counts returns the sample counts as float64, row-major.
func (t *tally[T]) counts() []float64 {
	out := make([]float64, len(t.count))
	for k, v := range t.count {
		out[k] = float64(v)
	}
	return out
}
