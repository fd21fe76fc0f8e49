package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Placeholder stands in for every missing value.
const Placeholder = "-"

const (
	dateLayout = "02/01/2006"
	timeLayout = "15:04"
)

// Row is one shift pair with every field already formatted.
type Row struct {
	EmployeeID    uint
	Employee      string
	Date          string
	EntryTime     string
	EntryLocation string
	ExitTime      string
	ExitLocation  string
	Worked        string
	Status        string
}

// Fields returns the row in column order.
func (r Row) Fields() []string {
	return []string{r.Employee, r.Date, r.EntryTime, r.EntryLocation, r.ExitTime, r.ExitLocation, r.Worked, r.Status}
}

// Section is one employee's block of rows plus the monthly total.
type Section struct {
	EmployeeID uint
	Employee   string
	Rows       []Row
	Complete   int
	Total      time.Duration
	TotalLabel string
}

// TotalFields is the per-employee total line in column order.
func (s Section) TotalFields(l Labels) []string {
	return []string{s.Employee, l.MonthlyTotal, Placeholder, Placeholder, Placeholder, Placeholder, s.TotalLabel, Placeholder}
}

// Document is the render model shared by all encoders.
type Document struct {
	Labels      Labels
	Period      string
	GeneratedAt time.Time
	Sections    []Section
}

func (d Document) Rows() []Row {
	var rows []Row
	for _, s := range d.Sections {
		rows = append(rows, s.Rows...)
	}
	return rows
}

func (d Document) PairCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Rows)
	}
	return n
}

func (d Document) Empty() bool { return d.PairCount() == 0 }

// BuildDocument formats an aggregated report once for every encoder.
func BuildDocument(r MonthlyReport, labels Labels, now time.Time) Document {
	doc := Document{
		Labels:      labels,
		Period:      labels.Period(r.Period),
		GeneratedAt: now,
	}

	for _, group := range GroupByEmployee(r) {
		section := Section{
			EmployeeID: group.Employee.ID,
			Employee:   group.Employee.DisplayName,
			Total:      TotalWorked(group.Pairs),
		}
		section.TotalLabel = FormatTotal(section.Total)

		for _, p := range group.Pairs {
			if p.Status == StatusComplete {
				section.Complete++
			}
			section.Rows = append(section.Rows, buildRow(p, labels))
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc
}

func buildRow(p ShiftPair, labels Labels) Row {
	row := Row{
		EmployeeID:    p.Employee.ID,
		Employee:      p.Employee.DisplayName,
		Date:          p.Date.Format(dateLayout),
		EntryTime:     Placeholder,
		EntryLocation: Placeholder,
		ExitTime:      Placeholder,
		ExitLocation:  Placeholder,
		Worked:        Placeholder,
		Status:        labels.Status(p.Status),
	}
	if p.Entry != nil {
		row.EntryTime = p.Entry.Timestamp.UTC().Format(timeLayout)
		row.EntryLocation = orPlaceholder(p.Entry.Location)
	}
	if p.Exit != nil {
		row.ExitTime = p.Exit.Timestamp.UTC().Format(timeLayout)
		row.ExitLocation = orPlaceholder(p.Exit.Location)
	}
	if p.Worked != nil {
		row.Worked = FormatHours(*p.Worked)
	}
	return row
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// FormatHours renders d as decimal hours with two places, e.g. "9.50h".
func FormatHours(d time.Duration) string {
	return decimal.NewFromInt(d.Milliseconds()).Div(millisPerHour).StringFixed(2) + "h"
}

// FormatTotal renders d as hours and minutes, e.g. "9:30h".
func FormatTotal(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	minutes := int64(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%s%d:%02dh", sign, minutes/60, minutes%60)
}
