package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print release and feature counts per track",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	svc, _, err := newService(false)
	if err != nil {
		return err
	}
	rm, err := svc.Roadmap(cmd.Context())
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), roadmap.Summarize(rm))
}

func writeSummary(w io.Writer, sums []roadmap.TrackSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRACK\tNAME\tRELEASES\tLIVE\tDONE\tTOTAL\t%\tBACKLOG")
	for _, s := range sums {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.Key, s.Name, s.Releases, s.LiveReleases, s.FeaturesDone, s.FeaturesTotal, s.Percent(), s.Backlog)
	}
	return tw.Flush()
}
