package cli

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update project settings",
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

		settings := p.Settings()
		changed := false
		if cmd.Flags().Changed("description") {
			settings.Description, _ = cmd.Flags().GetString("description")
			changed = true
		}
		if cmd.Flags().Changed("author") {
			settings.Author, _ = cmd.Flags().GetString("author")
			changed = true
		}
		if cmd.Flags().Changed("tag") {
			settings.Tags, _ = cmd.Flags().GetStringArray("tag")
			changed = true
		}

		if changed {
			if err := p.UpdateSettings(settings); err != nil {
				return err
			}
			pterm.Success.Println("settings updated")
			return nil
		}

		rows := pterm.TableData{
			{"Name", settings.Name},
			{"Description", settings.Description},
			{"Author", settings.Author},
			{"Tags", strings.Join(settings.Tags, ", ")},
			{"Created", settings.CreatedAt.Format("2006-01-02 15:04")},
		}
		return pterm.DefaultTable.WithData(rows).Render()
	},
}

func init() {
	settingsCmd.Flags().String("description", "", "project description")
	settingsCmd.Flags().String("author", "", "project author")
	settingsCmd.Flags().StringArray("tag", nil, "project tag (repeatable, replaces the set)")
	rootCmd.AddCommand(settingsCmd)
}
