package tui

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AvengeMedia/dankprint/internal/printer"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/exp/maps"
)

func (s Styles) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
}

func displayStatus(status printer.PrinterStatus) string {
	if status == "" {
		return string(printer.StatusUnknown)
	}
	return string(status)
}

// PrintersTable renders one row per printer. The default printer is starred.
func (s Styles) PrintersTable(printers []printer.PrinterDevice) string {
	t := s.newTable("", "Name", "Status", "Jobs", "Description")
	for _, p := range printers {
		mark := ""
		if p.IsDefault {
			mark = "*"
		}
		status := displayStatus(p.Status)
		t.Row(mark, p.Name, s.StatusStyle(status).Render(status), strconv.Itoa(len(p.Jobs)), p.Description)
	}
	return t.String()
}

// PrinterDetail renders a printer's fields followed by its raw attributes.
func (s Styles) PrinterDetail(p printer.PrinterDevice) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(p.Name))
	if p.IsDefault {
		b.WriteString(s.Subtle.Render(" (default)"))
	}
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(s.Normal.Render(p.Description))
		b.WriteString("\n")
	}
	status := displayStatus(p.Status)
	b.WriteString(s.Bold.Render("Status: "))
	b.WriteString(s.StatusStyle(status).Render(status))
	b.WriteString("\n\n")

	b.WriteString(s.AttributesTable(p.Options))
	if len(p.Jobs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(s.JobsTable(p.Jobs))
	}
	return b.String()
}

func (s Styles) AttributesTable(attrs printer.Attributes) string {
	t := s.newTable("Attribute", "Value")
	for _, attr := range attrs {
		value := attr.Value
		if !attr.Time.IsZero() {
			value = attr.Time.Local().Format("2006-01-02 15:04:05")
		}
		t.Row(attr.Key, value)
	}
	return t.String()
}

func (s Styles) JobsTable(jobs []printer.PrintJob) string {
	t := s.newTable("ID", "Printer", "Name", "User", "Size", "Status")
	for _, j := range jobs {
		status := strings.Join(j.Status, ",")
		first := ""
		if len(j.Status) > 0 {
			first = j.Status[0]
		}
		t.Row(strconv.Itoa(j.ID), j.PrinterName, j.Name, j.User, strconv.Itoa(j.Size), s.StatusStyle(first).Render(status))
	}
	return t.String()
}

// DriverOptionsTable lists each option's choices with the selected one
// highlighted.
func (s Styles) DriverOptionsTable(opts printer.DriverOptions) string {
	t := s.newTable("Option", "Choices")
	keys := maps.Keys(opts)
	sort.Strings(keys)
	for _, key := range keys {
		choices := maps.Keys(opts[key])
		sort.Strings(choices)
		rendered := make([]string, 0, len(choices))
		for _, c := range choices {
			if opts[key][c] {
				rendered = append(rendered, s.Success.Render("*"+c))
			} else {
				rendered = append(rendered, c)
			}
		}
		t.Row(key, strings.Join(rendered, " "))
	}
	return t.String()
}

func (s Styles) ListTable(header string, items []string) string {
	t := s.newTable(header)
	for _, item := range items {
		t.Row(item)
	}
	return t.String()
}
