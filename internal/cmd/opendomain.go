package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	herrors "github.com/cb-innovatekare/hokage/internal/errors"
)

var openDomainCmd = &cobra.Command{
	Use:   "open-domain",
	Short: "Broadcast when domain selection opens",
	Long: `Connect to the realtime server and broadcast the domainOpen event once.

The announced time is now plus --lead (default from dashboard.domain_open_lead,
10 minutes). Participants' clients count down to it.`,
	Args: cobra.NoArgs,
	RunE: runOpenDomain,
}

var openDomainLead time.Duration

func init() {
	openDomainCmd.Flags().DurationVar(&openDomainLead, "lead", 0, "time until domain selection opens (e.g. 10m)")
	rootCmd.AddCommand(openDomainCmd)
}

func runOpenDomain(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("lead") {
		// validated with the rest of the configuration
		viper.Set("dashboard.domain_open_lead", openDomainLead)
	}

	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	conn, err := d.dialer()(cmd.Context())
	if err != nil {
		return herrors.Wrapf(err, "failed to connect to %s", d.cfg.RealtimeURL())
	}
	d.ctrl.Attach(conn)

	open, err := d.ctrl.BroadcastDomainOpen(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Domain selection opens at %s\n", open)
	return nil
}
