package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cb-innovatekare/hokage/internal/team"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show verification counts",
	Long: `Show how many teams are verified, pending and registered in total,
overall and per sector.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsJSON bool

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output statistics as JSON")
	rootCmd.AddCommand(statsCmd)
}

// sectorStats is one sector row of the stats output.
type sectorStats struct {
	Sector string `json:"sector"`
	team.Counts
}

type statsOutput struct {
	team.Counts
	Sectors []sectorStats `json:"sectors"`
}

func runStats(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if _, err := d.load(cmd.Context()); err != nil {
		return err
	}

	snap := d.ctrl.Snapshot()
	stats := statsOutput{Counts: snap.Counts}
	for i, code := range snap.Sectors {
		stats.Sectors = append(stats.Sectors, sectorStats{Sector: code, Counts: snap.SectorCounts[i]})
	}

	out := cmd.OutOrStdout()
	if statsJSON {
		return writeJSON(out, stats)
	}

	fmt.Fprintln(out, "VERIFICATION")
	fmt.Fprintln(out, strings.Repeat("─", 40))
	fmt.Fprintf(out, "Verified:             %d\n", stats.Verified)
	fmt.Fprintf(out, "Pending Verification: %d\n", stats.Pending)
	fmt.Fprintf(out, "Total Teams:          %d\n", stats.Total)
	fmt.Fprintln(out)

	t := newTable("SECTOR", "VERIFIED", "PENDING", "TOTAL")
	for _, s := range stats.Sectors {
		t.Row(s.Sector, fmt.Sprint(s.Verified), fmt.Sprint(s.Pending), fmt.Sprint(s.Total))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
