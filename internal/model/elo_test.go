package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wplohrmann/sumo/internal/contracts"
)

func TestEloRatingLazyInit(t *testing.T) {
	m := NewElo(32)

	assert.Equal(t, InitialRating, m.Rating(7))
	assert.Equal(t, InitialRating, m.Rating(7), "reading twice must not move the rating")
}

func TestEloUpdateFromEqualRatings(t *testing.T) {
	m := NewElo(32)
	m.Update(1, 2, 1)

	// Equal ratings mean an expected score of 0.5, so the winner gains
	// exactly K/2 and the loser drops by the same amount.
	assert.InDelta(t, 1516.0, m.Rating(1), 1e-9)
	assert.InDelta(t, 1484.0, m.Rating(2), 1e-9)
}

func TestEloUpdateSymmetry(t *testing.T) {
	a := NewElo(64)
	a.Update(1, 2, 1)

	b := NewElo(64)
	b.Update(2, 1, 1)

	assert.InDelta(t, a.Rating(1), b.Rating(1), 1e-9)
	assert.InDelta(t, a.Rating(2), b.Rating(2), 1e-9)
}

func TestEloUpdateConservesTotalRating(t *testing.T) {
	m := NewElo(128)
	m.Update(1, 2, 1)
	m.Update(2, 3, 3)
	m.Update(1, 3, 1)
	m.Update(1, 2, 2)

	total := m.Rating(1) + m.Rating(2) + m.Rating(3)
	assert.InDelta(t, 3*InitialRating, total, 1e-9)
}

func TestEloThreeCompetitorSequence(t *testing.T) {
	m := NewElo(32)

	m.Update(1, 2, 1) // A beats B
	require.InDelta(t, 1516.0, m.Rating(1), 1e-9)
	require.InDelta(t, 1484.0, m.Rating(2), 1e-9)

	m.Update(2, 3, 2) // B beats C from below par
	require.InDelta(t, 1500.736306793522, m.Rating(2), 1e-9)
	require.InDelta(t, 1483.263693206478, m.Rating(3), 1e-9)

	m.Update(3, 1, 3) // C upsets A
	require.InDelta(t, 1500.766810297684, m.Rating(3), 1e-9)
	require.InDelta(t, 1498.4968829087939, m.Rating(1), 1e-9)
}

func TestEloPredict(t *testing.T) {
	m := NewElo(32)

	// Both unseen: tie goes to the second argument.
	assert.Equal(t, 2, m.Predict(1, 2))
	assert.Equal(t, 1, m.Predict(2, 1))

	m.Update(1, 2, 1)

	// Higher rating wins regardless of argument order.
	assert.Equal(t, 1, m.Predict(1, 2))
	assert.Equal(t, 1, m.Predict(2, 1))
}

func TestEloEvaluateEmpty(t *testing.T) {
	m := NewElo(32)

	acc, err := m.Evaluate(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, acc)
}

func TestEloEvaluatePredictsBeforeUpdating(t *testing.T) {
	// Two bouts between the same pair, first argument winning both.
	// The first prediction happens on even ratings and ties to the
	// second argument, so it is wrong; the second sees the updated
	// ratings and is right. Updating before predicting would score
	// both, so anything but 0.5 means the walk leaks the outcome.
	matches := []contracts.Match{
		{ID: "m1", BashoID: "202301", Day: 1, Rikishi1ID: 1, Rikishi2ID: 2, WinnerID: 1},
		{ID: "m2", BashoID: "202301", Day: 2, Rikishi1ID: 1, Rikishi2ID: 2, WinnerID: 1},
	}

	m := NewElo(32)
	acc, err := m.Evaluate(matches)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, acc, 1e-9)
}

func TestEloFitMatchesEvaluate(t *testing.T) {
	matches := []contracts.Match{
		{ID: "m1", BashoID: "202301", Day: 1, Rikishi1ID: 1, Rikishi2ID: 2, WinnerID: 1},
		{ID: "m2", BashoID: "202301", Day: 1, Rikishi1ID: 2, Rikishi2ID: 3, WinnerID: 2},
		{ID: "m3", BashoID: "202301", Day: 2, Rikishi1ID: 3, Rikishi2ID: 1, WinnerID: 3},
		{ID: "m4", BashoID: "202303", Day: 1, Rikishi1ID: 1, Rikishi2ID: 2, WinnerID: 2},
	}

	fitted := NewElo(32)
	fitAcc, err := fitted.Fit(matches)
	require.NoError(t, err)

	walked := NewElo(32)
	walkAcc, err := walked.Evaluate(matches)
	require.NoError(t, err)

	assert.Equal(t, walkAcc, fitAcc)
	for _, id := range []int{1, 2, 3} {
		assert.InDelta(t, walked.Rating(id), fitted.Rating(id), 1e-9)
	}
}

func TestEloName(t *testing.T) {
	assert.Equal(t, "Elo(K=32)", NewElo(32).Name())
	assert.Equal(t, "Elo(K=0.5)", NewElo(0.5).Name())
}
