package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteText(t *testing.T) {
	result := &Result{
		TestSize: 120,
		BestK:    32,
		Sweep: []SweepPoint{
			{K: 16, TrainAccuracy: 0.512},
			{K: 32, TrainAccuracy: 0.5238},
		},
		Scores: []ModelScore{
			{Name: "Elo(K=32)", TrainAccuracy: 0.5238, TestAccuracy: 0.5481},
			{Name: "Logistic", TrainAccuracy: 0.5113, TestAccuracy: 0.5210},
		},
	}

	var buf bytes.Buffer
	result.WriteText(&buf)

	want := "Params: K=16 => Train accuracy: 0.512\n" +
		"Params: K=32 => Train accuracy: 0.524\n" +
		"Best K: 32 => Train accuracy: 0.524\n" +
		"Final evaluation with best K: Test accuracy: 0.548 (120 matches)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTextNoEloScore(t *testing.T) {
	result := &Result{
		BestK: 8,
		Sweep: []SweepPoint{{K: 8, TrainAccuracy: 0.5}},
	}

	var buf bytes.Buffer
	result.WriteText(&buf)

	want := "Params: K=8 => Train accuracy: 0.500\n" +
		"Best K: 8 => Train accuracy: 0.500\n"
	assert.Equal(t, want, buf.String())
}
