package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/repo-insights/internal/filetree"
	"github.com/repo-insights/internal/insights"
)

const (
	shortSHALen     = 7
	messageWidthMax = 72
	activityBar     = "█"
)

var dirColor = color.New(color.FgBlue, color.Bold)

func renderCommits(w io.Writer, records []insights.CommitRecord, now time.Time) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No recent commits.")
		return
	}

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"SHA", "Repo", "Message", "When"})
	tbl.SetColumnConfigs([]table.ColumnConfig{{Name: "Message", WidthMax: messageWidthMax}})
	for _, r := range records {
		sha := r.SHA
		if len(sha) > shortSHALen {
			sha = sha[:shortSHALen]
		}
		tbl.AppendRow(table.Row{sha, r.Repo, r.Message, humanize.RelTime(r.Date, now, "ago", "from now")})
	}
	tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("Total: %d commits", len(records)), ""})
	tbl.Render()
}

func renderActivity(w io.Writer, days []insights.DayActivity) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Day", "Date", "Commits", ""})
	total := 0
	for _, d := range days {
		total += d.Commits
		tbl.AppendRow(table.Row{d.Name, d.Date.Format(time.DateOnly), d.Commits, strings.Repeat(activityBar, d.Commits)})
	}
	tbl.AppendFooter(table.Row{"", "Total", total, ""})
	tbl.Render()
}

// renderTree prints one node per line, directories colored and suffixed with a slash.
// maxDepth 0 prints everything.
func renderTree(w io.Writer, root *filetree.Node, maxDepth int) {
	root.Walk(func(n *filetree.Node, depth int) {
		if depth == 0 || (maxDepth > 0 && depth > maxDepth) {
			return
		}
		indent := strings.Repeat("  ", depth-1)
		if n.Type == filetree.Dir {
			fmt.Fprintf(w, "%s%s\n", indent, dirColor.Sprint(n.Name+"/"))
			return
		}
		fmt.Fprintf(w, "%s%s\n", indent, n.Name)
	})
}
