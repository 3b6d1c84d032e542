package nmf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-extra/nmf"
	"github.com/gonum-extra/nmf/sparse"
)

func TestMSEExactReconstructionIsZero(t *testing.T) {
	// A = w^T * h exactly, so MSE must be 0.
	w := mat.NewDense(2, 3, []float64{ // k x m
		1, 0, 2,
		0, 1, 1,
	})
	h := mat.NewDense(2, 2, []float64{ // k x n
		1, 2,
		3, 0,
	})

	var a mat.Dense
	a.Mul(w.T(), h)

	mse, err := nmf.MSE(&a, w, h, nil, false)
	require.NoError(t, err)
	require.InDelta(t, 0, mse, 1e-12)
}

func TestMSEDimensionMismatch(t *testing.T) {
	a := mat.NewDense(3, 2, nil)
	w := mat.NewDense(2, 4, nil) // wrong: should be k x 3
	h := mat.NewDense(2, 2, nil)
	_, err := nmf.MSE(a, w, h, nil, false)
	require.ErrorIs(t, err, nmf.ErrDimensionMismatch)
}

func TestMSERespectsDiagonal(t *testing.T) {
	w := mat.NewDense(1, 2, []float64{1, 1})
	h := mat.NewDense(1, 2, []float64{1, 1})
	a := mat.NewDense(2, 2, []float64{2, 2, 2, 2})

	mseNoDiag, err := nmf.MSE(a, w, h, nil, false)
	require.NoError(t, err)
	require.Greater(t, mseNoDiag, 0.0)

	mseDiag, err := nmf.MSE(a, w, h, []float64{2}, false)
	require.NoError(t, err)
	require.InDelta(t, 0, mseDiag, 1e-12)
}

func TestMSEMaskZerosRequiresSparse(t *testing.T) {
	a := mat.NewDense(2, 2, nil)
	w := mat.NewDense(1, 2, nil)
	h := mat.NewDense(1, 2, nil)
	_, err := nmf.MSE(a, w, h, nil, true)
	require.ErrorIs(t, err, nmf.ErrMaskZerosDense)
}

func TestMSEMaskZerosIgnoresImplicitEntries(t *testing.T) {
	// Sparse 2x2 A storing only its diagonal; w,h reconstruct the implicit
	// off-diagonal zeros as 5, but mask_zeros should exclude missing
	// entries from the error.
	indptr := []int{0, 1, 2}
	indices := []int{0, 1}
	data := []float64{5, 5}
	csc := sparse.NewCSC(2, 2, indptr, indices, data)

	w := mat.NewDense(1, 2, []float64{5, 5})
	h := mat.NewDense(1, 2, []float64{1, 1})

	mse, err := nmf.MSE(csc, w, h, nil, true)
	require.NoError(t, err)
	require.InDelta(t, 0, mse, 1e-12)
}
