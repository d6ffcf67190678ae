package cli

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/keshon/fvc/internal/model"
)

// changeLabel maps a change classification to its rendered form.
func changeLabel(c model.ChangeType) string {
	switch c {
	case model.Added:
		return pterm.Green("added")
	case model.Modified:
		return pterm.Yellow("modified")
	case model.Deleted:
		return pterm.Red("deleted")
	default:
		return pterm.Gray("unchanged")
	}
}

func renderDiff(d model.FileDiff) {
	if !d.HasChanges() {
		pterm.Info.Printfln("%s: no changes", d.Path)
		return
	}
	if !d.IsText {
		pterm.Info.Printfln("%s: binary files differ", d.Path)
		return
	}

	header := fmt.Sprintf("%s (%s %s)", d.Path, d.Summary(), d.StatLine())
	pterm.DefaultSection.Println(header)

	for _, line := range d.Lines {
		switch line.Kind {
		case model.DiffContext:
			pterm.Println(pterm.Cyan(line.Text))
		case model.DiffAdded:
			pterm.Println(pterm.Green("+ " + line.Text))
		case model.DiffRemoved:
			pterm.Println(pterm.Red("- " + line.Text))
		default:
			pterm.Println("  " + line.Text)
		}
	}
}

func renderVersionTable(versions []model.Version, current int) {
	rows := pterm.TableData{{"", "Version", "Created", "Files", "Description"}}
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		marker := ""
		if v.Number == current {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			fmt.Sprintf("v%d", v.Number),
			v.CreatedAt.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", len(v.Files)),
			v.Description,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
