package model

import (
	"fmt"
	"math"

	"github.com/wplohrmann/sumo/internal/contracts"
)

// InitialRating is the prior assigned to a rikishi the first time a
// rating is read for them.
const InitialRating = 1500.0

// Elo is an online pairwise rating model. Each observed bout transfers
// rating between the two rikishi according to the logistic pairing
// formula; ratings are unbounded and live only for the run.
//
// Fit and Evaluate both walk the matches in the order given, so callers
// must pass chronologically sorted matches (eval.SortMatches). That walk
// predicts each bout before updating on its outcome, which is what keeps
// accuracy free of information from the bout itself or anything after it.
type Elo struct {
	k       float64
	ratings map[int]float64
}

// NewElo creates a rating model with learning-rate constant k.
func NewElo(k float64) *Elo {
	return &Elo{
		k:       k,
		ratings: make(map[int]float64),
	}
}

// Name identifies the model and its K in reports.
func (m *Elo) Name() string {
	return fmt.Sprintf("Elo(K=%g)", m.k)
}

// Rating returns the current rating for a rikishi, initializing it to
// InitialRating on first reference.
func (m *Elo) Rating(rikishiID int) float64 {
	r, ok := m.ratings[rikishiID]
	if !ok {
		r = InitialRating
		m.ratings[rikishiID] = r
	}
	return r
}

// Predict returns whichever of the two rikishi currently holds the
// higher rating. Ties go to rikishi2.
func (m *Elo) Predict(rikishi1, rikishi2 int) int {
	if m.Rating(rikishi1) > m.Rating(rikishi2) {
		return rikishi1
	}
	return rikishi2
}

// Update applies one observed outcome. Expected win probability for
// rikishi1 is 1/(1+10^((r2-r1)/400)); both ratings move together by
// K*(score-expected), so the pair's total rating is conserved.
func (m *Elo) Update(rikishi1, rikishi2, winner int) {
	r1 := m.Rating(rikishi1)
	r2 := m.Rating(rikishi2)

	exp1 := 1 / (1 + math.Pow(10, (r2-r1)/400))
	exp2 := 1 - exp1

	s1 := 0.0
	if winner == rikishi1 {
		s1 = 1.0
	}
	s2 := 1 - s1

	m.ratings[rikishi1] = r1 + m.k*(s1-exp1)
	m.ratings[rikishi2] = r2 + m.k*(s2-exp2)
}

// Fit replays the matches through the walk-forward pass. There is no
// closed-form training for this model: fitting is the same
// predict-then-update walk as Evaluate, and the returned accuracy is
// the walk-forward training accuracy.
func (m *Elo) Fit(matches []contracts.Match) (float64, error) {
	return m.Evaluate(matches)
}

// Evaluate walks the matches once. Each bout is predicted first and
// only then is the true outcome applied, so every prediction uses
// ratings from strictly earlier bouts. Returns correct/total, or 0.0
// for an empty slice.
func (m *Elo) Evaluate(matches []contracts.Match) (float64, error) {
	if len(matches) == 0 {
		return 0.0, nil
	}

	correct := 0
	for _, match := range matches {
		pred := m.Predict(match.Rikishi1ID, match.Rikishi2ID)
		if pred == match.WinnerID {
			correct++
		}
		m.Update(match.Rikishi1ID, match.Rikishi2ID, match.WinnerID)
	}

	return float64(correct) / float64(len(matches)), nil
}
