package report

import (
	"context"
	"strconv"
	"time"

	"ponto-backend/internal/i18n"
)

// Labels carries every user-visible string of a report in one locale.
type Labels struct {
	AppName      string
	Title        string
	Header       []string
	MonthlyTotal string
	Entry        string
	Exit         string
	Empty        string
	SheetName    string

	statuses map[Status]string
	locale   string
}

// NewLabels resolves labels for the locale carried by ctx.
func NewLabels(ctx context.Context, appName string) Labels {
	l := Labels{AppName: appName, locale: i18n.LocaleFromContext(ctx)}
	l.Title = l.text("report_title", nil)
	l.Header = []string{
		l.text("col_employee", nil),
		l.text("col_date", nil),
		l.text("col_entry_time", nil),
		l.text("col_entry_location", nil),
		l.text("col_exit_time", nil),
		l.text("col_exit_location", nil),
		l.text("col_worked", nil),
		l.text("col_status", nil),
	}
	l.MonthlyTotal = l.text("monthly_total", nil)
	l.Entry = l.text("pdf_entry", nil)
	l.Exit = l.text("pdf_exit", nil)
	l.Empty = l.text("pdf_empty", nil)
	l.SheetName = l.text("sheet_name", nil)
	l.statuses = map[Status]string{
		StatusComplete:         l.text("status_complete", nil),
		StatusEntryWithoutExit: l.text("status_entry_without_exit", nil),
		StatusExitWithoutEntry: l.text("status_exit_without_entry", nil),
	}
	return l
}

func (l Labels) text(id string, data map[string]any) string {
	return i18n.T(i18n.WithLocale(context.Background(), l.locale), id, data)
}

func (l Labels) Status(s Status) string {
	if v, ok := l.statuses[s]; ok {
		return v
	}
	return string(s)
}

func (l Labels) MonthName(m time.Month) string {
	return l.text("month_"+strconv.Itoa(int(m)), nil)
}

// Period renders e.g. "Março de 2024".
func (l Labels) Period(p Period) string {
	return l.text("period", map[string]any{"Month": l.MonthName(p.Month), "Year": strconv.Itoa(p.Year)})
}

func (l Labels) EmployeeHeading(name string) string {
	return l.text("pdf_employee", map[string]any{"Name": name})
}

func (l Labels) DateLine(v string) string   { return l.text("pdf_date", map[string]any{"Value": v}) }
func (l Labels) WorkedLine(v string) string { return l.text("pdf_worked", map[string]any{"Value": v}) }
func (l Labels) StatusLine(v string) string { return l.text("pdf_status", map[string]any{"Value": v}) }
func (l Labels) TotalLine(v string) string  { return l.text("pdf_total", map[string]any{"Value": v}) }

func (l Labels) GeneratedAt(now time.Time) string {
	now = now.UTC()
	return l.text("pdf_generated_at", map[string]any{
		"Date": now.Format(dateLayout),
		"Time": now.Format("15:04:05"),
	})
}

func (l Labels) PageOf(page, total int) string {
	return l.text("pdf_page_of", map[string]any{"Page": strconv.Itoa(page), "Total": strconv.Itoa(total)})
}
