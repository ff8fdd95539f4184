package evaluate

import "math"

// MAE returns the mean absolute error between aligned truth and prediction
// slices. Extra trailing values are ignored.
func MAE(y, yhat []float64) float64 {
	n := len(y)
	if len(yhat) < n {
		n = len(yhat)
	}
	if n == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Abs(y[i] - yhat[i])
	}
	return sum / float64(n)
}

// RMSE returns the root mean squared error between aligned truth and
// prediction slices.
func RMSE(y, yhat []float64) float64 {
	n := len(y)
	if len(yhat) < n {
		n = len(yhat)
	}
	if n == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		diff := y[i] - yhat[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(n))
}
