package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wplohrmann/sumo/internal/eval"
	"github.com/wplohrmann/sumo/internal/model"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Benchmark outcome models on a temporal split",
	Long: `Replays every stored bout in tournament order. Bouts from bashos
starting before the split date train the models; the rest are held out
for scoring. The rating model's K is swept on the training set first.

Example:
  go run ./cmd/sumo evaluate
  go run ./cmd/sumo evaluate --split-date 2024-01-01
  go run ./cmd/sumo evaluate --k 16,32,64`,
	RunE: runEvaluate,
}

var (
	// Evaluate flags
	evalSplitDate string
	evalKValues   []float64
)

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evalSplitDate, "split-date", "", "train/test cutoff, YYYY-MM-DD (default from config)")
	evaluateCmd.Flags().Float64SliceVar(&evalKValues, "k", nil, "K candidates for the rating model (default from config)")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	splitDate := evalSplitDate
	if splitDate == "" {
		splitDate = d.cfg.Eval.SplitDate
	}
	if _, err := time.Parse("2006-01-02", splitDate); err != nil {
		return fmt.Errorf("invalid split date %q: want YYYY-MM-DD", splitDate)
	}

	kValues := evalKValues
	if len(kValues) == 0 {
		kValues = d.cfg.Eval.KValues
	}

	fmt.Println("=== Sumo Model Evaluation ===")
	fmt.Printf("Split date: %s\n\n", splitDate)

	harness := eval.NewHarness(d.store, d.log)
	harness.Register(model.NewLogistic())

	result, err := harness.Run(context.Background(), eval.Config{
		SplitDate: splitDate,
		KValues:   kValues,
	})
	if err != nil {
		return err
	}

	printEvaluateResult(result)
	return nil
}

func printEvaluateResult(result *eval.Result) {
	fmt.Printf("Matches: %d (train %d, test %d)\n\n", result.TotalMatches, result.TrainSize, result.TestSize)

	result.WriteText(os.Stdout)

	widths := []int{20, 8, 8}
	fmt.Println()
	PrintTableHeader([]string{"Model", "Train", "Test"}, widths)
	for _, score := range result.Scores {
		PrintTableRow([]string{
			score.Name,
			fmt.Sprintf("%.3f", score.TrainAccuracy),
			fmt.Sprintf("%.3f", score.TestAccuracy),
		}, widths)
	}
	fmt.Println()

	PrintSuccess(fmt.Sprintf("Evaluation completed in %.2fs", result.Duration.Seconds()))
}
