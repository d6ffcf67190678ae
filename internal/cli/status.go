package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/keshon/fvc/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Classify every working file against the recorded baseline",
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

		statuses, err := p.FileStatuses()
		if err != nil {
			return err
		}
		if statuses == nil {
			pterm.Info.Println("no versions yet")
			return nil
		}

		pterm.Info.Printfln("project %s, version %d", p.Name(), p.CurrentVersion())

		changed := 0
		rows := pterm.TableData{{"State", "File", "Size"}}
		for _, st := range statuses {
			if st.Change != model.Unchanged {
				changed++
			}
			size := ""
			if st.Change != model.Deleted {
				size = fmt.Sprintf("%d B", st.Size)
			}
			rows = append(rows, []string{changeLabel(st.Change), st.Path, size})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return err
		}

		if changed == 0 {
			pterm.Success.Println("working files match the baseline")
		} else {
			pterm.Warning.Printfln("%d file(s) differ from the baseline", changed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
