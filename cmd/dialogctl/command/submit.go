package command

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"liyu1981.xyz/dialog-service/pkg/condition"
	"liyu1981.xyz/dialog-service/pkg/dialog"
)

var (
	submitMode string
	submitUser string
	submitFile string
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a logging form",
	Long: "The submit command reads a form in the JSON shape of the chosen mode, sends its conditions " +
		"and checks its blood sugar reading, alerting the doctor when it is out of range.",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := condition.ParseMode(submitMode)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(submitFile)
		if err != nil {
			return err
		}
		form, err := condition.DecodeForm(mode, data)
		if err != nil {
			return err
		}

		evaluator, err := newEvaluator()
		if err != nil {
			return err
		}
		port, release, err := newPort()
		if err != nil {
			return err
		}
		defer release()

		result, err := dialog.New(evaluator, port, dialog.WithTimeout(timeout)).Submit(cmd.Context(), submitUser, form)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "conditions: %d\n", result.Batch.Len())
		if result.Response != nil {
			fmt.Fprintf(out, "saved: %s\n", result.Response.Message)
		}
		if result.Check != nil {
			e := result.Check.Evaluation
			fmt.Fprintf(out, "reading: %s (%s)\n", e.Value.String(), e.Direction)
			if e.Alert != nil {
				fmt.Fprintf(out, "alert: %s\n", e.Alert.Message)
			}
			if result.Check.Notified {
				fmt.Fprintln(out, "doctor notified")
			}
		}
		if result.ReadingErr != nil {
			fmt.Fprintf(out, "reading not checked: %v\n", result.ReadingErr)
		}
		for _, w := range result.Warnings {
			fmt.Fprintf(out, "warning: %s\n", w)
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitMode, "mode", condition.ModeSimple.String(), "logging mode: simple, comprehensive or intensive")
	submitCmd.Flags().StringVar(&submitUser, "user", "", "user id the form belongs to")
	submitCmd.Flags().StringVar(&submitFile, "file", "", "path to the form JSON")
	_ = submitCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(submitCmd)
}

// printJSON is shared by the read commands.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
