package eval

import (
	"fmt"
	"io"
)

// WriteText writes the evaluation report: one line per sweep point, the
// selected K, and the rating model's accuracy on the held-out set.
func (r *Result) WriteText(w io.Writer) {
	bestTrain := 0.0
	for _, point := range r.Sweep {
		fmt.Fprintf(w, "Params: K=%g => Train accuracy: %.3f\n", point.K, point.TrainAccuracy)
		if point.K == r.BestK {
			bestTrain = point.TrainAccuracy
		}
	}
	fmt.Fprintf(w, "Best K: %g => Train accuracy: %.3f\n", r.BestK, bestTrain)

	eloName := fmt.Sprintf("Elo(K=%g)", r.BestK)
	for _, score := range r.Scores {
		if score.Name == eloName {
			fmt.Fprintf(w, "Final evaluation with best K: Test accuracy: %.3f (%d matches)\n", score.TestAccuracy, r.TestSize)
			break
		}
	}
}
