package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/keshon/fvc/internal/fileprobe"
)

// largeFileThresholdMB triggers a warning before a file is copied in.
const largeFileThresholdMB = 100

var addCmd = &cobra.Command{
	Use:   "add <files...>",
	Short: "Copy external files into the current version and track them",
	Args:  cobra.MinimumNArgs(1),
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

		for _, path := range args {
			if fileprobe.IsLarge(path, largeFileThresholdMB) {
				pterm.Warning.Printfln("%s is larger than %d MB; every version stores a full copy", path, largeFileThresholdMB)
			}
		}

		if err := p.AddTrackedFiles(args); err != nil {
			return err
		}
		pterm.Success.Printfln("%d file(s) added to version %d", len(args), p.CurrentVersion())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <file>",
	Short: "Untrack a file everywhere and delete its working copy",
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

		if err := p.RemoveTrackedFile(args[0]); err != nil {
			return err
		}
		pterm.Success.Printfln("%s removed from all versions", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd, removeCmd)
}
