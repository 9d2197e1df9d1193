package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
	"github.com/cb-innovatekare/hokage/internal/team"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Inspect the domain catalog",
}

var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available domains",
	Args:  cobra.NoArgs,
	RunE:  runDomainsList,
}

var domainsJSON bool

func init() {
	domainsListCmd.Flags().BoolVar(&domainsJSON, "json", false, "output as JSON")
	domainsCmd.AddCommand(domainsListCmd)
	rootCmd.AddCommand(domainsCmd)
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	res, err := d.ctrl.Load(cmd.Context())
	if err != nil {
		return err
	}
	if res.DomainsErr != nil {
		return herrors.Wrap(res.DomainsErr, "failed to load domains")
	}

	domains := d.ctrl.Domains()
	out := cmd.OutOrStdout()
	if domainsJSON {
		if domains == nil {
			domains = []team.Domain{}
		}
		return writeJSON(out, domains)
	}
	if len(domains) == 0 {
		fmt.Fprintln(out, "No domains.")
		return nil
	}

	// Teams per domain, from the roster fetched alongside the catalog
	assigned := make(map[string]int)
	for _, t := range d.ctrl.Teams() {
		if t.HasDomain() {
			assigned[t.Domain]++
		}
	}

	t := newTable("ID", "NAME", "TEAMS")
	for _, dom := range domains {
		t.Row(dom.ID.String(), dom.Name, fmt.Sprintf("%d", assigned[dom.Name]))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}
