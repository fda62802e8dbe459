package model

import (
	"errors"
	"math"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// ErrNotFitted is returned when a batch model is evaluated before Fit.
var ErrNotFitted = errors.New("model has not been fitted")

const (
	logisticIters = 400
	logisticLR    = 0.15
)

// Logistic is a batch-trained logistic regression over a fixed feature
// vector per bout: [rikishi1 id, rikishi2 id, height1, weight1, height2,
// weight2], with label 1 when rikishi1 won. Raw ids as numeric features
// do not generalize to unseen rikishi; the layout is kept anyway so the
// accuracy stays comparable with the rating model's.
//
// Unlike Elo, Evaluate is order-independent and never touches the
// trained weights.
type Logistic struct {
	weights []float64 // bias first, then one weight per feature
	mean    []float64
	std     []float64
	fitted  bool
}

// NewLogistic creates an untrained logistic regression model.
func NewLogistic() *Logistic {
	return &Logistic{}
}

// Name identifies the model in reports.
func (m *Logistic) Name() string {
	return "Logistic"
}

// featureVector maps a bout to its fixed-length input. Missing
// measurements are already zero on the Match record.
func featureVector(match contracts.Match) []float64 {
	return []float64{
		float64(match.Rikishi1ID),
		float64(match.Rikishi2ID),
		match.Rikishi1Height,
		match.Rikishi1Weight,
		match.Rikishi2Height,
		match.Rikishi2Weight,
	}
}

// label is 1 when rikishi1 won the bout.
func label(match contracts.Match) float64 {
	if match.WinnerID == match.Rikishi1ID {
		return 1.0
	}
	return 0.0
}

// Fit trains the classifier in one batch over the given matches and
// returns the in-sample accuracy. Feature columns are standardized with
// statistics computed here and reused by Evaluate; the raw ids stay in
// the vector, standardization only keeps gradient descent stable.
func (m *Logistic) Fit(matches []contracts.Match) (float64, error) {
	features := make([][]float64, len(matches))
	labels := make([]float64, len(matches))
	for i, match := range matches {
		features[i] = featureVector(match)
		labels[i] = label(match)
	}

	m.mean, m.std = columnStats(features)
	for i := range features {
		features[i] = m.standardize(features[i])
	}

	// Gradient descent on log-loss: the gradient of
	// -[y*log(p)+(1-y)*log(1-p)] is (p-y)*x.
	m.weights = make([]float64, len(m.mean)+1)
	n := float64(len(features))
	for iter := 0; iter < logisticIters; iter++ {
		for i, x := range features {
			p := sigmoid(m.weights[0] + dot(m.weights[1:], x))
			err := p - labels[i]
			m.weights[0] -= logisticLR * err / n
			for k := range x {
				m.weights[k+1] -= logisticLR * err * x[k] / n
			}
		}
	}
	m.fitted = true

	if len(matches) == 0 {
		return 0.0, nil
	}
	correct := 0
	for i, x := range features {
		if m.classify(x) == labels[i] {
			correct++
		}
	}
	return float64(correct) / n, nil
}

// Evaluate returns the trained classifier's accuracy on the given
// matches. Calling it before Fit is a programming error.
func (m *Logistic) Evaluate(matches []contracts.Match) (float64, error) {
	if !m.fitted {
		return 0, ErrNotFitted
	}
	if len(matches) == 0 {
		return 0.0, nil
	}

	correct := 0
	for _, match := range matches {
		x := m.standardize(featureVector(match))
		if m.classify(x) == label(match) {
			correct++
		}
	}
	return float64(correct) / float64(len(matches)), nil
}

// classify maps a standardized feature vector to its predicted label.
func (m *Logistic) classify(x []float64) float64 {
	if sigmoid(m.weights[0]+dot(m.weights[1:], x)) >= 0.5 {
		return 1.0
	}
	return 0.0
}

// standardize centers and scales one feature vector.
func (m *Logistic) standardize(x []float64) []float64 {
	z := make([]float64, len(x))
	for i := range x {
		z[i] = (x[i] - m.mean[i]) / m.std[i]
	}
	return z
}

// columnStats computes per-column mean and standard deviation. Constant
// columns get a std of 1 so standardizing them is a no-op shift.
func columnStats(features [][]float64) (mean, std []float64) {
	cols := 6
	mean = make([]float64, cols)
	std = make([]float64, cols)
	if len(features) == 0 {
		for i := range std {
			std[i] = 1.0
		}
		return mean, std
	}

	n := float64(len(features))
	for _, x := range features {
		for i, v := range x {
			mean[i] += v
		}
	}
	for i := range mean {
		mean[i] /= n
	}

	for _, x := range features {
		for i, v := range x {
			d := v - mean[i]
			std[i] += d * d
		}
	}
	for i := range std {
		std[i] = math.Sqrt(std[i] / n)
		if std[i] == 0 {
			std[i] = 1.0
		}
	}
	return mean, std
}

func sigmoid(z float64) float64 {
	if z > 20 {
		return 1.0
	}
	if z < -20 {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
