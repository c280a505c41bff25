package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/handheld-arcade/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered variants",
	Run:   runList,
}

var (
	listHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	listCell   = lipgloss.NewStyle().Padding(0, 1)
)

func runList(_ *cobra.Command, _ []string) {
	variants := registry.List()
	if len(variants) == 0 {
		fmt.Println("No variants registered.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeader
			}
			return listCell
		})
	for _, v := range variants {
		t.Row(v.ID, v.Title)
	}

	fmt.Println(t)
	fmt.Println("Play one with: handheld play <id>")
}
