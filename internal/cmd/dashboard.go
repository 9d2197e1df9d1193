package cmd

import (
	"errors"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/cb-innovatekare/hokage/internal/tui"
)

var errNotTerminal = errors.New("dashboard requires an interactive terminal; use the teams, domains and stats commands instead")

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive dashboard.

Teams are grouped by sector. Verify teams, reassign domains from the
domains view, and press "o" to broadcast the domain selection time to
every connected participant. Press "?" for all keys.`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	d, err := newDeps()
	if err != nil {
		return err
	}
	defer d.close()

	app := tui.New(d.ctrl, tui.Options{
		Dial:      d.dialer(),
		ThemeFile: d.cfg.TUI.ThemeFile,
		Logger:    d.logger,
	})
	return app.Run(cmd.Context())
}
