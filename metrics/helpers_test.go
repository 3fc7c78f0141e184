package metrics_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ctmcsim/matrix"
	"github.com/katalvlaran/ctmcsim/metrics"
)

func matrixFromRows(rows [][]float64) (*matrix.Dense, error) {
	return matrix.FromRows(rows)
}

// gather renders the recorder through its own textfile export.
func gather(t *testing.T, r *metrics.Recorder) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "m.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
