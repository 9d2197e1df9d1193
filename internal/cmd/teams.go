package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/team"
	"github.com/cb-innovatekare/hokage/internal/util"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List, verify and reassign teams",
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered teams",
	Long: `List registered teams.

Filters combine: --sector keeps one sector, --search matches team names
case-insensitively, --match keeps names matching a glob such as "Hidden*",
and --pending keeps teams that are not verified yet.`,
	Args: cobra.NoArgs,
	RunE: runTeamsList,
}

var teamsVerifyCmd = &cobra.Command{
	Use:   "verify <teamId>",
	Short: "Mark a team as verified",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsVerify,
}

var teamsSetDomainCmd = &cobra.Command{
	Use:   "set-domain <teamId> <domain>",
	Short: "Assign a team to a domain",
	Long: `Assign a team to a domain.

The domain must be one of the names listed by "hokage domains list". When
the catalog cannot be fetched the name is sent as given.`,
	Args: cobra.ExactArgs(2),
	RunE: runTeamsSetDomain,
}

var (
	teamsSector  string // Only this sector
	teamsSearch  string // Name substring
	teamsMatch   string // Name glob
	teamsPending bool   // Only unverified teams
	teamsJSON    bool   // Output as JSON
)

func init() {
	teamsListCmd.Flags().StringVar(&teamsSector, "sector", "", "only teams in this sector code")
	teamsListCmd.Flags().StringVar(&teamsSearch, "search", "", "only teams whose name contains this text")
	teamsListCmd.Flags().StringVar(&teamsMatch, "match", "", "only teams whose name matches this glob (case-insensitive)")
	teamsListCmd.Flags().BoolVar(&teamsPending, "pending", false, "only teams pending verification")
	teamsListCmd.Flags().BoolVar(&teamsJSON, "json", false, "output as JSON")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsVerifyCmd)
	teamsCmd.AddCommand(teamsSetDomainCmd)
	rootCmd.AddCommand(teamsCmd)
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if teamsSector != "" && d.cfg.Dashboard.SectorIndex(teamsSector) < 0 {
		return herrors.NewValidationError(fmt.Sprintf("unknown sector %q (configured: %s)",
			teamsSector, strings.Join(d.cfg.Dashboard.Sectors, ", "))).WithField("sector")
	}

	var nameGlob glob.Glob
	if teamsMatch != "" {
		g, err := glob.Compile(strings.ToLower(teamsMatch))
		if err != nil {
			return herrors.NewValidationError(fmt.Sprintf("invalid --match pattern %q: %v", teamsMatch, err)).WithField("match")
		}
		nameGlob = g
	}

	if _, err := d.load(cmd.Context()); err != nil {
		return err
	}

	teams := d.ctrl.SearchTeams(teamsSearch)
	if nameGlob != nil {
		teams = slices.DeleteFunc(teams, func(t team.Team) bool { return !nameGlob.Match(strings.ToLower(t.Name)) })
	}
	if teamsSector != "" {
		teams = slices.DeleteFunc(teams, func(t team.Team) bool { return t.Sector != teamsSector })
	}
	if teamsPending {
		teams = slices.DeleteFunc(teams, func(t team.Team) bool { return t.Verified })
	}

	out := cmd.OutOrStdout()
	if teamsJSON {
		return writeJSON(out, teams)
	}
	if len(teams) == 0 {
		fmt.Fprintln(out, "No teams found.")
		return nil
	}

	t := newTable("ID", "NAME", "SECTOR", "STATUS", "DOMAIN")
	for _, tm := range teams {
		t.Row(tm.ID.String(), tm.Name, dash(tm.Sector), status(tm), dash(tm.Domain))
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d %s\n", len(teams), util.Plural(len(teams), "team", "teams"))
	return nil
}

func runTeamsVerify(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if _, err := d.load(cmd.Context()); err != nil {
		return err
	}

	id := team.ID(args[0])
	tm, ok := d.ctrl.Snapshot().Roster.Find(id)
	if ok && tm.Verified {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is already verified\n", tm.Name)
		return nil
	}
	if err := d.ctrl.Verify(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Verified %s (%s)\n", tm.Name, id)
	return nil
}

func runTeamsSetDomain(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	res, err := d.load(cmd.Context())
	if err != nil {
		return err
	}
	if res.DomainsErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: domain catalog unavailable (%s); sending %q unchecked\n",
			herrors.UserMessage(res.DomainsErr), args[1])
	}

	id := team.ID(args[0])
	if err := d.ctrl.ReassignDomain(cmd.Context(), id, args[1]); err != nil {
		return err
	}

	tm, _ := d.ctrl.Snapshot().Roster.Find(id)
	fmt.Fprintf(cmd.OutOrStdout(), "%s is now in %s\n", tm.Name, tm.Domain)
	return nil
}

func status(t team.Team) string {
	if t.Verified {
		return "verified"
	}
	return "pending"
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
