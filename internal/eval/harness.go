package eval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/wplohrmann/sumo/internal/contracts"
	"github.com/wplohrmann/sumo/internal/model"
	"github.com/wplohrmann/sumo/pkg/logger"
)

// ErrNoViableModel means the harness had nothing to select from: an
// empty K candidate list or an empty training set.
var ErrNoViableModel = errors.New("no viable model")

// Config holds the harness parameters. Both come from the caller;
// nothing in the evaluation path reads process-wide state.
type Config struct {
	// SplitDate is the cutoff: bashos starting strictly before it are
	// training data, the rest are test data.
	SplitDate string

	// KValues are the rating model's K candidates, swept in order.
	KValues []float64
}

// SweepPoint is one K candidate's walk-forward accuracy on the
// training set.
type SweepPoint struct {
	K             float64
	TrainAccuracy float64
}

// ModelScore is one model's line in the final report.
type ModelScore struct {
	Name          string
	TrainAccuracy float64
	TestAccuracy  float64
}

// Result is the outcome of one evaluation run.
type Result struct {
	SplitDate    string
	TotalMatches int
	TrainSize    int
	TestSize     int

	Sweep []SweepPoint
	BestK float64

	// Scores is the ranked report, sorted descending by test accuracy.
	Scores []ModelScore

	Duration time.Duration
}

// Harness runs every registered model through fit/evaluate on a
// temporal train/test split and ranks the results. The rating model is
// built in: its K is selected by sweeping Config.KValues against the
// training set. Everything downstream of loading is pure single-threaded
// computation; the walk-forward pass cannot be parallelized anyway.
type Harness struct {
	source contracts.MatchSource
	models []contracts.Model
	logger *logger.Logger
}

// NewHarness creates a harness reading from the given match source.
func NewHarness(source contracts.MatchSource, log *logger.Logger) *Harness {
	return &Harness{
		source: source,
		logger: log.WithField("module", "eval"),
	}
}

// Register adds a model to be fitted on train and scored on test
// alongside the rating model.
func (h *Harness) Register(m contracts.Model) {
	h.models = append(h.models, m)
}

// Run loads all matches, sorts them chronologically, splits at the
// cutoff, selects the rating model's K on training accuracy, then
// scores every model on the held-out test set.
func (h *Harness) Run(ctx context.Context, cfg Config) (*Result, error) {
	start := time.Now()

	matches, err := h.source.LoadMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("load matches: %w", err)
	}
	dates, err := h.source.LoadBashoDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("load basho dates: %w", err)
	}

	sorted, err := SortMatches(matches, dates)
	if err != nil {
		return nil, err
	}
	train, test, err := Split(sorted, dates, cfg.SplitDate)
	if err != nil {
		return nil, err
	}

	if len(cfg.KValues) == 0 {
		return nil, fmt.Errorf("no K candidates: %w", ErrNoViableModel)
	}
	if len(train) == 0 {
		return nil, fmt.Errorf("no matches before %s: %w", cfg.SplitDate, ErrNoViableModel)
	}

	h.logger.WithFields(map[string]interface{}{
		"matches":    len(sorted),
		"train":      len(train),
		"test":       len(test),
		"split_date": cfg.SplitDate,
		"k_values":   len(cfg.KValues),
	}).Info("Starting evaluation")

	result := &Result{
		SplitDate:    cfg.SplitDate,
		TotalMatches: len(sorted),
		TrainSize:    len(train),
		TestSize:     len(test),
		Sweep:        make([]SweepPoint, 0, len(cfg.KValues)),
	}

	// Sweep K on the training set. The rating model has no fit phase
	// distinct from evaluation, so each candidate gets a fresh model
	// and one walk-forward pass. K is selected on training accuracy
	// alone; only the winner gets scored on test.
	bestAcc := -1.0
	bestK := 0.0
	for _, k := range cfg.KValues {
		elo := model.NewElo(k)
		acc, err := elo.Evaluate(train)
		if err != nil {
			return nil, fmt.Errorf("sweep K=%g: %w", k, err)
		}
		result.Sweep = append(result.Sweep, SweepPoint{K: k, TrainAccuracy: acc})
		h.logger.WithFields(map[string]interface{}{
			"k":        k,
			"accuracy": acc,
		}).Debug("Sweep point")

		// Strict greater-than keeps the first candidate on ties.
		if acc > bestAcc {
			bestAcc = acc
			bestK = k
		}
	}
	result.BestK = bestK

	// Fresh rating model with the selected K: fit on train, score on
	// the held-out test set.
	final := model.NewElo(bestK)
	trainAcc, err := final.Fit(train)
	if err != nil {
		return nil, fmt.Errorf("fit %s: %w", final.Name(), err)
	}
	testAcc, err := final.Evaluate(test)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", final.Name(), err)
	}
	result.Scores = append(result.Scores, ModelScore{
		Name:          final.Name(),
		TrainAccuracy: trainAcc,
		TestAccuracy:  testAcc,
	})

	for _, mdl := range h.models {
		trainAcc, err := mdl.Fit(train)
		if err != nil {
			return nil, fmt.Errorf("fit %s: %w", mdl.Name(), err)
		}
		testAcc, err := mdl.Evaluate(test)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", mdl.Name(), err)
		}
		result.Scores = append(result.Scores, ModelScore{
			Name:          mdl.Name(),
			TrainAccuracy: trainAcc,
			TestAccuracy:  testAcc,
		})
	}

	sort.SliceStable(result.Scores, func(i, j int) bool {
		return result.Scores[i].TestAccuracy > result.Scores[j].TestAccuracy
	})

	result.Duration = time.Since(start)

	h.logger.WithFields(map[string]interface{}{
		"best_k":   bestK,
		"models":   len(result.Scores),
		"duration": result.Duration,
	}).Info("Evaluation completed")

	return result, nil
}
