package contracts

import "context"

// Model is the contract shared by every match-outcome predictor. The two
// implementations have incompatible lifecycles (online per-match updates
// vs. one-shot batch training), so there is no shared base state: just
// these three operations.
type Model interface {
	// Name identifies the model in reports.
	Name() string

	// Fit trains the model on the given matches and returns the
	// training accuracy. Online models replay the matches in order;
	// batch models train in a single pass.
	Fit(matches []Match) (float64, error)

	// Evaluate returns the model's accuracy over the given matches.
	// An empty slice yields 0.0 by convention, not an error.
	Evaluate(matches []Match) (float64, error)
}

// MatchSource supplies the evaluation engine's inputs: the full set of
// recorded matches and the basho id to start date mapping. The engine
// performs no storage or network I/O of its own.
type MatchSource interface {
	LoadMatches(ctx context.Context) ([]Match, error)
	LoadBashoDates(ctx context.Context) (map[string]string, error)
}
