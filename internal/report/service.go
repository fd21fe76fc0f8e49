package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"ponto-backend/internal/mailer"
)

// RecordStore reads punch events and the employees they belong to.
type RecordStore interface {
	// QueryPunchEvents returns the events in [start, end], optionally for one employee.
	QueryPunchEvents(ctx context.Context, employeeID *uint, start, end time.Time) ([]PunchEvent, error)
	// GetEmployee returns nil, nil when the employee does not exist.
	GetEmployee(ctx context.Context, id uint) (*Employee, error)
}

type SettingsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
}

type EmailSender interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// SettingReportEmail holds the recipient of emailed reports.
const SettingReportEmail = "report_email"

type Request struct {
	Month      int
	Year       int
	EmployeeID *uint
	Format     Format
}

type File struct {
	Name     string
	MimeType string
	Data     []byte
	Pairs    int
	SentTo   string
}

type Service struct {
	store    RecordStore
	settings SettingsStore
	sender   EmailSender
	appName  string
	now      func() time.Time
}

func NewService(store RecordStore, settings SettingsStore, sender EmailSender, appName string) *Service {
	return &Service{
		store:    store,
		settings: settings,
		sender:   sender,
		appName:  appName,
		now:      time.Now,
	}
}

// Generate builds the monthly report for req and encodes it.
func (s *Service) Generate(ctx context.Context, req Request) (*File, error) {
	// 1. Period
	period, err := MonthPeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	format := req.Format
	if format == "" {
		format = FormatPDF
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return nil, err
	}

	// 2. Punch events
	events, err := s.store.QueryPunchEvents(ctx, req.EmployeeID, period.Start, period.End)
	if err != nil {
		return nil, &StorageError{Op: "query punch events", Err: err}
	}

	// 3. Directory
	directory, err := s.directory(ctx, events)
	if err != nil {
		return nil, err
	}

	// 4. Pairs, ordering, render model
	pairs, err := Reconcile(events, directory)
	if err != nil {
		return nil, err
	}
	doc := BuildDocument(Aggregate(period, pairs), NewLabels(ctx, s.appName), s.now())

	// 5. Encode
	data, err := format.encoder()(doc)
	if err != nil {
		var encErr *EncodingError
		if !errors.As(err, &encErr) {
			err = &EncodingError{Kind: KindGeneric, Format: format, Err: err}
		}
		return nil, err
	}

	return &File{
		Name:     format.FileName(period),
		MimeType: format.MimeType(),
		Data:     data,
		Pairs:    doc.PairCount(),
	}, nil
}

// Email generates the report and sends it to the configured report address.
func (s *Service) Email(ctx context.Context, req Request) (*File, error) {
	to, ok, err := s.settings.Get(ctx, SettingReportEmail)
	if err != nil {
		return nil, &StorageError{Op: "get setting " + SettingReportEmail, Err: err}
	}
	to = strings.TrimSpace(to)
	if !ok || to == "" {
		return nil, ErrReportEmailNotConfigured
	}

	file, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	period, _ := MonthPeriod(req.Month, req.Year)
	msg, err := buildEmail(NewLabels(ctx, s.appName), period, req.Format, s.now(), to, file)
	if err != nil {
		return nil, err
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return nil, &EmailDeliveryError{To: to, Err: err}
	}

	file.SentTo = to
	return file, nil
}

func (s *Service) directory(ctx context.Context, events []PunchEvent) (map[uint]Employee, error) {
	directory := make(map[uint]Employee)
	for _, ev := range events {
		if _, seen := directory[ev.EmployeeID]; seen {
			continue
		}
		emp, err := s.store.GetEmployee(ctx, ev.EmployeeID)
		if err != nil {
			return nil, &StorageError{Op: "get employee", Err: err}
		}
		if emp == nil {
			return nil, &UnknownEmployeeError{EmployeeID: ev.EmployeeID}
		}
		directory[ev.EmployeeID] = *emp
	}
	return directory, nil
}
