package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-ta/internal/evaluator"
)

func renderReport(w io.Writer, report *evaluator.Report) error {
	headers := []string{"index", "time", "close"}
	for _, column := range report.Columns {
		headers = append(headers, column.Name)
	}

	values := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)

	for _, row := range report.Rows {
		cells := []string{fmt.Sprint(row.Index), row.Time.UTC().Format(time.DateTime), row.Close}
		for _, v := range row.Values {
			cell := v.Value
			if !v.Stable {
				cell += unstableMark
			}

			cells = append(cells, cell)
		}

		values.Row(cells...)
	}

	name := report.Series
	if name == "" {
		name = "series"
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s: %d bars [%d, %d]", name, report.Bars, report.BeginIndex, report.EndIndex)))
	fmt.Fprintln(w, values.Render())
	fmt.Fprintln(w, HelpStyle.Render(unstableMark+" value inside the indicator warm-up window"))

	if len(report.Scores) == 0 {
		return nil
	}

	scores := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("criterion", "value")

	for _, score := range report.Scores {
		scores.Row(score.Name, score.Value)
	}

	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%d closed positions", report.Positions)))
	_, err := fmt.Fprintln(w, scores.Render())

	return err
}

func renderList(w io.Writer, title string, items []string) error {
	fmt.Fprintln(w, TitleStyle.Render(title))

	for _, item := range items {
		if _, err := fmt.Fprintln(w, "  "+item); err != nil {
			return err
		}
	}

	return nil
}
