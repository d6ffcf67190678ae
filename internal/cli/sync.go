package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the declared file set with what is on disk",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		p, err := openProject(cmd, deps)
		if err != nil {
			return err
		}

		cs, err := p.Changes()
		if err != nil {
			return err
		}
		if cs.Empty() {
			pterm.Success.Println("declared files match the disk")
			return nil
		}

		for _, rel := range cs.Added {
			pterm.Println(pterm.Green("  + " + rel))
		}
		for _, rel := range cs.Removed {
			pterm.Println(pterm.Red("  - " + rel))
		}
		for _, rel := range cs.Modified {
			pterm.Println(pterm.Yellow("  ~ " + rel))
		}

		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			pterm.Info.Println("dry run, nothing applied")
			return nil
		}

		if err := p.ApplySyncChanges(cs); err != nil {
			return err
		}
		pterm.Success.Printfln("synced: %d added, %d removed, %d still modified",
			len(cs.Added), len(cs.Removed), len(cs.Modified))
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("dry-run", false, "show the reconciliation without applying it")
	rootCmd.AddCommand(syncCmd)
}
