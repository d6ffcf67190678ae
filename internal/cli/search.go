package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search stored file content, or version descriptions",
	Args:  cobra.ExactArgs(1),
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

		caseSensitive, _ := cmd.Flags().GetBool("case")

		if descriptions, _ := cmd.Flags().GetBool("descriptions"); descriptions {
			matched := p.SearchVersionDescriptions(args[0], caseSensitive)
			if len(matched) == 0 {
				pterm.Info.Println("no matching versions")
				return nil
			}
			renderVersionTable(matched, p.CurrentVersion())
			return nil
		}

		extensions, _ := cmd.Flags().GetStringSlice("ext")
		results := p.SearchInVersions(args[0], extensions, caseSensitive)
		if len(results) == 0 {
			pterm.Info.Println("no matches")
			return nil
		}

		for _, r := range results {
			location := pterm.Cyan(fmt.Sprintf("v%d %s:%d", r.Version.Number, r.FilePath, r.LineNumber))
			pterm.Printfln("%s  %s", location, r.LineText)
		}
		pterm.Info.Printfln("%d match(es)", len(results))
		return nil
	},
}

func init() {
	searchCmd.Flags().StringSlice("ext", nil, "restrict to file extensions, e.g. --ext .go,.md")
	searchCmd.Flags().Bool("case", false, "case-sensitive matching")
	searchCmd.Flags().Bool("descriptions", false, "search version descriptions instead of content")
	rootCmd.AddCommand(searchCmd)
}
