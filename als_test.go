package nmf_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gonum-extra/nmf"
)

// lowRankMatrix builds an exactly rank-k, non-negative features x samples
// matrix so a converged factorization should reach a near-zero residual.
func lowRankMatrix() *mat.Dense {
	w := mat.NewDense(2, 5, []float64{ // k x m
		1, 0, 2, 1, 0.5,
		0, 1, 1, 2, 1.5,
	})
	h := mat.NewDense(2, 6, []float64{ // k x n
		1, 2, 0, 1, 0.5, 1,
		2, 0, 1, 1, 1, 0.5,
	})
	var a mat.Dense
	a.Mul(w.T(), h)
	return &a
}

func TestNMFRejectsInvalidRank(t *testing.T) {
	a := lowRankMatrix()
	_, err := nmf.NMF(a, 0, nmf.DefaultNMFConfig())
	require.ErrorIs(t, err, nmf.ErrInvalidRank)
}

func TestNMFRejectsBadL1(t *testing.T) {
	a := lowRankMatrix()
	cfg := nmf.DefaultNMFConfig()
	cfg.L1W = 1.5
	_, err := nmf.NMF(a, 2, cfg)
	require.ErrorIs(t, err, nmf.ErrL1OutOfRange)
}

func TestNMFOutputShapesAndNonNegativity(t *testing.T) {
	a := lowRankMatrix()
	seed := int64(42)
	cfg := nmf.DefaultNMFConfig()
	cfg.Seed = &seed
	cfg.MaxIter = 50
	cfg.Verbose = false

	model, err := nmf.NMF(a, 2, cfg)
	require.NoError(t, err)

	m, n := a.Dims()
	wr, wc := model.W.Dims()
	require.Equal(t, m, wr)
	require.Equal(t, 2, wc)
	hr, hc := model.H.Dims()
	require.Equal(t, 2, hr)
	require.Equal(t, n, hc)
	require.Equal(t, 2, model.Rank())
	require.Len(t, model.D, 2)

	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			require.GreaterOrEqual(t, model.W.At(i, j), 0.0)
		}
	}
	for i := 0; i < hr; i++ {
		for j := 0; j < hc; j++ {
			require.GreaterOrEqual(t, model.H.At(i, j), 0.0)
		}
	}
}

func TestNMFIsReproducibleWithSameSeed(t *testing.T) {
	a := lowRankMatrix()
	seed := int64(7)
	cfg := nmf.DefaultNMFConfig()
	cfg.Seed = &seed
	cfg.Verbose = false
	cfg.MaxIter = 20

	m1, err := nmf.NMF(a, 2, cfg)
	require.NoError(t, err)
	m2, err := nmf.NMF(a, 2, cfg)
	require.NoError(t, err)

	r, c := m1.W.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			require.InDelta(t, m1.W.At(i, j), m2.W.At(i, j), 1e-12)
		}
	}
	require.Equal(t, m1.Iter, m2.Iter)
}

func TestNMFConvergesOnExactLowRankInput(t *testing.T) {
	a := lowRankMatrix()
	seed := int64(1)
	cfg := nmf.DefaultNMFConfig()
	cfg.Seed = &seed
	cfg.Verbose = false
	cfg.MaxIter = 200
	cfg.Tol = 1e-6

	model, err := nmf.NMF(a, 2, cfg)
	require.NoError(t, err)

	mse, err := nmf.MSE(a, mseW(model), model.H, model.D, false)
	require.NoError(t, err)
	require.Less(t, mse, 1e-4)
}

// mseW transposes Model.W (features x k, the returned orientation) back to
// the k x features orientation MSE expects.
func mseW(model *nmf.Model) *mat.Dense {
	r, c := model.W.Dims()
	wT := mat.NewDense(c, r, nil)
	wT.Copy(model.W.T())
	return wT
}

func TestNMFToleranceHistoryIsMonotonicDownwardTrending(t *testing.T) {
	a := lowRankMatrix()
	seed := int64(3)
	cfg := nmf.DefaultNMFConfig()
	cfg.Seed = &seed
	cfg.Verbose = false
	cfg.MaxIter = 100
	cfg.Tol = 1e-8

	model, err := nmf.NMF(a, 2, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, model.TolHistory)

	// The final recorded tolerance should not be larger than the first by
	// more than a small margin; overall trend must be toward convergence.
	require.LessOrEqual(t, model.Tol(), model.TolHistory[0]+1e-9)
}

func TestBipartitionSplitsIntoTwoNonemptyGroups(t *testing.T) {
	a := lowRankMatrix()
	seed := int64(11)
	cfg := nmf.DefaultNMFConfig()
	cfg.Seed = &seed
	cfg.Verbose = false
	cfg.MaxIter = 100

	split, model, err := nmf.Bipartition(a, cfg)
	require.NoError(t, err)
	require.Equal(t, 2, model.Rank())

	_, n := a.Dims()
	require.Len(t, split, n)
	require.Contains(t, split, true)
	require.Contains(t, split, false)
}
