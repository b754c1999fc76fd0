package ols

import (
	"context"
	"fmt"
	"math"

	"gobayes/domain/core"
	"gobayes/domain/regress"
	"gobayes/domain/table"
	"gobayes/internal/errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Fitter implements ports.FrequentistFitterPort with ordinary least squares
// via the normal equations. No iteration or convergence concerns; the fit is
// a pure, deterministic function of the input table.
type Fitter struct{}

// NewFitter creates an OLS fitter
func NewFitter() *Fitter {
	return &Fitter{}
}

// Fit regresses abundance on all regressors, with the use_medicine factor
// expanded as a 0/1 indicator against the level-0 reference.
func (f *Fitter) Fit(ctx context.Context, tbl *table.ObservationTable) (*regress.FrequentistFit, error) {
	y, rows := tbl.Design()
	n := len(rows)
	p := len(rows[0])

	if n <= p {
		return nil, errors.SingularDesignMatrix(fmt.Sprintf("need more rows than columns, got %d rows for %d columns", n, p))
	}

	x := mat.NewDense(n, p, nil)
	for i, row := range rows {
		x.SetRow(i, row)
	}
	yVec := mat.NewVecDense(n, y)

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, errors.SingularDesignMatrix("design matrix is singular or near-singular (collinear regressors)")
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), yVec)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	// Residual sum of squares and total sum of squares about the mean.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	meanY := 0.0
	for _, v := range y {
		meanY += v
	}
	meanY /= float64(n)

	rss := 0.0
	tss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
		d := y[i] - meanY
		tss += d * d
	}

	df := n - p
	sigma2 := rss / float64(df)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}

	keys := append([]core.VariableKey{regress.KeyIntercept}, tbl.RegressorKeys()...)
	coefs := make([]regress.CoefficientEstimate, p)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * xtxInv.At(j, j))

		var tStat, pValue float64
		if se > 0 {
			tStat = est / se
			pValue = 2 * tDist.CDF(-math.Abs(tStat))
		} else {
			// Exact fit: zero residual variance makes the null impossible.
			tStat = math.Inf(sign(est))
			pValue = 0
		}

		coefs[j] = regress.CoefficientEstimate{
			Key:      keys[j],
			Estimate: est,
			StdErr:   se,
			TStat:    tStat,
			PValue:   pValue,
		}
	}

	adjR2 := 0.0
	if tss > 0 {
		r2 := 1 - rss/tss
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(df)
	}

	return regress.NewFrequentistFit(coefs, adjR2, math.Sqrt(sigma2), n, df)
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
