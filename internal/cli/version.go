package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List all versions, newest first",
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

		versions := p.Versions()
		if len(versions) == 0 {
			pterm.Info.Println("no versions yet")
			return nil
		}
		renderVersionTable(versions, p.CurrentVersion())
		return nil
	},
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Cut a new version from the current snapshot",
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

		description, _ := cmd.Flags().GetString("message")
		v, err := p.CreateNewVersion(description, nil)
		if err != nil {
			return err
		}
		pterm.Success.Printfln("version %d created (%d files)", v.Number, len(v.Files))
		return nil
	},
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Re-record the baseline of the current version from the working files",
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

		if err := p.SaveToCurrentVersion(); err != nil {
			return err
		}
		pterm.Success.Printfln("version %d saved", p.CurrentVersion())
		return nil
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback <version>",
	Short: "Switch the current version (content stays in place)",
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

		n, err := parseVersionNumber(args[0])
		if err != nil {
			return err
		}
		if !p.RollbackToVersion(n) {
			return fmt.Errorf("version %d does not exist", n)
		}
		pterm.Success.Printfln("now at version %d", n)
		return nil
	},
}

var notesCmd = &cobra.Command{
	Use:   "notes <version> [text...]",
	Short: "Show or set the notes of a version",
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

		n, err := parseVersionNumber(args[0])
		if err != nil {
			return err
		}

		if len(args) == 1 {
			v, ok := p.VersionByNumber(n)
			if !ok {
				return fmt.Errorf("version %d does not exist", n)
			}
			if v.Notes == "" {
				pterm.Info.Printfln("version %d has no notes", n)
			} else {
				pterm.Println(v.Notes)
			}
			return nil
		}

		if !p.UpdateVersionNotes(n, strings.Join(args[1:], " ")) {
			return fmt.Errorf("version %d does not exist", n)
		}
		pterm.Success.Printfln("notes updated for version %d", n)
		return nil
	},
}

func parseVersionNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "v"))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid version number %q", s)
	}
	return n, nil
}

func init() {
	newCmd.Flags().StringP("message", "m", "", "version description")
	_ = newCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(logCmd, newCmd, saveCmd, rollbackCmd, notesCmd)
}
