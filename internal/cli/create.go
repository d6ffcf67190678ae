package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/keshon/fvc/internal/model"
)

var createCmd = &cobra.Command{
	Use:   "create <name> [files...]",
	Short: "Create a project, optionally cutting version 1 from initial files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := handleRootCommand(cmd)
		if err != nil {
			return err
		}
		defer deps.Close()

		settings := model.NewProjectSettings(args[0])
		settings.Description, _ = cmd.Flags().GetString("description")
		settings.Author, _ = cmd.Flags().GetString("author")
		settings.Tags, _ = cmd.Flags().GetStringArray("tag")
		if settings.Tags == nil {
			settings.Tags = []string{}
		}

		p, err := deps.Manager.CreateProject(args[0], args[1:], &settings)
		if err != nil {
			return err
		}

		if p.CurrentVersion() > 0 {
			pterm.Success.Printfln("project %q created with version 1 (%d files)",
				p.Name(), len(p.TrackedFiles()))
		} else {
			pterm.Success.Printfln("project %q created (no versions yet)", p.Name())
		}
		pterm.Info.Printfln("root: %s", p.Root())
		return nil
	},
}

func init() {
	createCmd.Flags().String("description", "", "project description")
	createCmd.Flags().String("author", "", "project author")
	createCmd.Flags().StringArray("tag", nil, "project tag (repeatable)")
	rootCmd.AddCommand(createCmd)
}
