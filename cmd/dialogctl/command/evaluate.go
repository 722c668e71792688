package command

import (
	"github.com/spf13/cobra"

	"liyu1981.xyz/dialog-service/pkg/glucose"
)

var (
	evaluateValue  string
	evaluateTiming string
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Check a blood sugar reading against the target range",
	Long:  "The evaluate command classifies a reading locally, with the thresholds from the environment. Nothing is sent.",
	RunE: func(cmd *cobra.Command, args []string) error {
		evaluator, err := newEvaluator()
		if err != nil {
			return err
		}

		evaluation, err := evaluator.Evaluate(evaluateValue, glucose.ParseMealTiming(evaluateTiming))
		if err != nil {
			return err
		}

		return printJSON(cmd, evaluation)
	},
}

func init() {
	evaluateCmd.Flags().StringVar(&evaluateValue, "value", "", "blood sugar level in mmol/L")
	evaluateCmd.Flags().StringVar(&evaluateTiming, "timing", "", "meal timing: Pre-meal or Post-meal")
	_ = evaluateCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(evaluateCmd)
}
