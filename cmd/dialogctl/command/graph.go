package command

import (
	"github.com/spf13/cobra"

	"liyu1981.xyz/dialog-service/pkg/api"
)

var graphQuery api.GraphQuery

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Fetch the numeric history of one data type",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := newHTTPClient().GetGraph(cmd.Context(), graphQuery)
		if err != nil {
			return err
		}
		return printJSON(cmd, resp)
	},
}

func init() {
	graphCmd.Flags().StringVar(&graphQuery.UserID, "user", "", "user id")
	graphCmd.Flags().StringVar(&graphQuery.DataType, "datatype", "bloodSugar", "data type to plot")
	graphCmd.Flags().StringVar(&graphQuery.Start, "start", "", "first event date, e.g. 2026-10-01T00:00:00")
	graphCmd.Flags().StringVar(&graphQuery.End, "end", "", "last event date")
	for _, name := range []string{"user", "start", "end"} {
		_ = graphCmd.MarkFlagRequired(name)
	}
	rootCmd.AddCommand(graphCmd)
}
