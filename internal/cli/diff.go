package cli

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/keshon/fvc/internal/model"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old> <new> [path] | diff --current <version> [path]",
	Short: "Show line diffs between versions, or against the working files",
	Args:  cobra.RangeArgs(1, 3),
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

		if current, _ := cmd.Flags().GetBool("current"); current {
			n, err := parseVersionNumber(args[0])
			if err != nil {
				return err
			}
			if len(args) > 1 {
				renderDiff(p.CompareWithCurrent(n, args[1]))
				return nil
			}
			renderDiffSet(p.VersionChangesWithWorking(n))
			return nil
		}

		if len(args) < 2 {
			return cmd.Usage()
		}
		oldN, err := parseVersionNumber(args[0])
		if err != nil {
			return err
		}
		newN, err := parseVersionNumber(args[1])
		if err != nil {
			return err
		}
		if len(args) > 2 {
			renderDiff(p.CompareVersions(oldN, newN, args[2]))
			return nil
		}
		renderDiffSet(p.VersionChanges(oldN, newN))
		return nil
	},
}

func renderDiffSet(changes map[string]model.FileDiff) {
	if len(changes) == 0 {
		pterm.Info.Println("no changes")
		return
	}
	paths := make([]string, 0, len(changes))
	for rel := range changes {
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	for _, rel := range paths {
		renderDiff(changes[rel])
	}
}

func init() {
	diffCmd.Flags().Bool("current", false, "diff a stored version against the working files")
	rootCmd.AddCommand(diffCmd)
}
