package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gonum-extra/nmf/sparse"
)

// dense = [[1, 0, 3], [0, 5, 0], [2, 0, 0]]
func sampleCSC() *sparse.CSC {
	// column 0: rows 0,2 -> 1,2
	// column 1: row 1 -> 5
	// column 2: row 0 -> 3
	indptr := []int{0, 2, 3, 4}
	indices := []int{0, 2, 1, 0}
	data := []float64{1, 2, 5, 3}
	return sparse.NewCSC(3, 3, indptr, indices, data)
}

func TestColAndAt(t *testing.T) {
	m := sampleCSC()
	rows, vals := m.Col(0)
	require.Equal(t, []int{0, 2}, rows)
	require.Equal(t, []float64{1, 2}, vals)

	require.Equal(t, 3.0, m.At(0, 2))
	require.Equal(t, 0.0, m.At(1, 0))
	require.Equal(t, 5.0, m.At(1, 1))
}

func TestDims(t *testing.T) {
	m := sampleCSC()
	r, c := m.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)
	require.Equal(t, 4, m.NNZ())
	require.Equal(t, 2, m.ColNNZ(0))
}

func TestTranspose(t *testing.T) {
	m := sampleCSC()
	mt := m.T()

	r, c := mt.Dims()
	require.Equal(t, 3, r)
	require.Equal(t, 3, c)

	dense := m.Dense()
	denseT := mt.Dense()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.Equal(t, dense[i][j], denseT[j][i])
		}
	}
}

func TestSymmetric(t *testing.T) {
	indptr := []int{0, 2, 4}
	indices := []int{0, 1, 0, 1}
	data := []float64{1, 2, 2, 3}
	sym := sparse.NewCSC(2, 2, indptr, indices, data)
	require.True(t, sym.Symmetric())

	asym := sampleCSC()
	require.False(t, asym.Symmetric())

	asym.MarkSymmetric(true)
	require.True(t, asym.Symmetric())
}
