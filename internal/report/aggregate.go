package report

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Period is one calendar month in UTC. End is the last instant of the month.
type Period struct {
	Month time.Month
	Year  int
	Start time.Time
	End   time.Time
}

// MonthPeriod returns the UTC bounds of month/year.
func MonthPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return Period{}, ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Month: time.Month(month),
		Year:  year,
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}, nil
}

type MonthlyReport struct {
	Period Period
	Pairs  []ShiftPair
}

// Aggregate orders pairs by display name (pt-BR collation), then date.
// Employees sharing a display name stay apart through their ids.
func Aggregate(period Period, pairs []ShiftPair) MonthlyReport {
	sorted := make([]ShiftPair, len(pairs))
	copy(sorted, pairs)

	col := collate.New(language.BrazilianPortuguese)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := col.CompareString(a.Employee.DisplayName, b.Employee.DisplayName); c != 0 {
			return c < 0
		}
		if a.Employee.ID != b.Employee.ID {
			return a.Employee.ID < b.Employee.ID
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Index < b.Index
	})

	return MonthlyReport{Period: period, Pairs: sorted}
}

// TotalWorked sums the worked durations of pairs. Incomplete and anomalous
// pairs add nothing.
func TotalWorked(pairs []ShiftPair) time.Duration {
	var total time.Duration
	for _, p := range pairs {
		if p.Worked == nil || p.Anomalous {
			continue
		}
		total += *p.Worked
	}
	return total
}

// EmployeePairs is one employee's slice of a MonthlyReport.
type EmployeePairs struct {
	Employee Employee
	Pairs    []ShiftPair
}

// GroupByEmployee splits an aggregated report into contiguous per-employee runs.
func GroupByEmployee(r MonthlyReport) []EmployeePairs {
	var groups []EmployeePairs
	for _, p := range r.Pairs {
		last := len(groups) - 1
		if last < 0 || groups[last].Employee.ID != p.Employee.ID {
			groups = append(groups, EmployeePairs{Employee: p.Employee})
			last++
		}
		groups[last].Pairs = append(groups[last].Pairs, p)
	}
	return groups
}
