package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ponto-backend/internal/middleware"
	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"
	"ponto-backend/internal/report"

	"github.com/gofiber/fiber/v2"
)

func asUser(id uint, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, id)
		c.Locals(middleware.LocalRole, role)
		return c.Next()
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type fakeRecords struct {
	created   []model.TimeRecord
	listStart time.Time
	listEnd   time.Time
	purged    []uint
}

func (f *fakeRecords) Create(_ context.Context, rec *model.TimeRecord) error {
	rec.ID = uint(len(f.created) + 1)
	f.created = append(f.created, *rec)
	return nil
}

func (f *fakeRecords) ListByUser(_ context.Context, _ uint, start, end time.Time) ([]model.TimeRecord, error) {
	f.listStart, f.listEnd = start, end
	return f.created, nil
}

func (f *fakeRecords) ListBetween(context.Context, *uint, time.Time, time.Time) ([]model.TimeRecord, error) {
	return f.created, nil
}

func (f *fakeRecords) Recent(context.Context, int) ([]model.TimeRecord, error) {
	return f.created, nil
}

func (f *fakeRecords) DeleteBetween(_ context.Context, _, _ time.Time, userIDs []uint) (int64, error) {
	f.purged = userIDs
	return 3, nil
}

type fakeGeocoder struct{ calls int }

func (g *fakeGeocoder) Describe(_ context.Context, lat, lng float64) string {
	g.calls++
	return "Rua Augusta, São Paulo"
}

func TestCreateTimeRecord(t *testing.T) {
	records := &fakeRecords{}
	geo := &fakeGeocoder{}
	h := NewTimeRecordHandler(records, geo)
	h.now = func() time.Time { return time.Date(2024, 3, 5, 8, 0, 0, 0, time.FixedZone("BRT", -3*3600)) }

	app := fiber.New()
	app.Post("/time-records", asUser(4, model.RoleEmployee), h.Create)

	resp := doJSON(t, app, "POST", "/time-records", map[string]any{"type": "entry", "latitude": -23.55, "longitude": -46.63})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	rec := records.created[0]
	if rec.UserID != 4 || rec.Type != model.PunchEntry || rec.Location == nil || *rec.Location != "Rua Augusta, São Paulo" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Timestamp.Location() != time.UTC || rec.Timestamp.Hour() != 11 {
		t.Fatalf("timestamp must be stored in UTC, got %v", rec.Timestamp)
	}

	resp = doJSON(t, app, "POST", "/time-records", map[string]any{"type": "exit"})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if records.created[1].Location != nil || geo.calls != 1 {
		t.Fatalf("geocoder must only run with coordinates")
	}

	resp = doJSON(t, app, "POST", "/time-records", map[string]any{"type": "lunch"})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown type, got %d", resp.StatusCode)
	}
}

func TestMonthlyTimeRecordsBounds(t *testing.T) {
	records := &fakeRecords{}
	h := NewTimeRecordHandler(records, &fakeGeocoder{})
	app := fiber.New()
	app.Get("/monthly", asUser(4, model.RoleEmployee), h.Monthly)

	resp := doJSON(t, app, "GET", "/monthly?month=2&year=2024", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !records.listStart.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) ||
		!records.listEnd.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected bounds %v - %v", records.listStart, records.listEnd)
	}

	resp = doJSON(t, app, "GET", "/monthly?month=14&year=2024", nil)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestPurge(t *testing.T) {
	records := &fakeRecords{}
	app := fiber.New()
	app.Delete("/time-records", NewTimeRecordHandler(records, &fakeGeocoder{}).Purge)

	resp := doJSON(t, app, "DELETE", "/time-records", map[string]any{"month": 3, "year": 2024, "user_ids": []uint{2, 5}})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Deleted int64 `json:"deleted"`
	}
	decode(t, resp, &body)
	if body.Deleted != 3 || len(records.purged) != 2 {
		t.Fatalf("unexpected purge result %+v %v", body, records.purged)
	}
}

type fakeReports struct {
	file *report.File
	err  error
	req  report.Request
}

func (f *fakeReports) Generate(_ context.Context, req report.Request) (*report.File, error) {
	f.req = req
	return f.file, f.err
}

func (f *fakeReports) Email(_ context.Context, req report.Request) (*report.File, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	file := *f.file
	file.SentTo = "rh@example.com"
	return &file, nil
}

func TestMonthlyReportDownload(t *testing.T) {
	reports := &fakeReports{file: &report.File{Name: "relatorio-3-2024.csv", MimeType: "text/csv", Data: []byte("x")}}
	app := fiber.New()
	app.Post("/reports", NewReportHandler(reports, time.Second).Monthly)

	resp := doJSON(t, app, "POST", "/reports", map[string]any{"month": 3, "year": 2024, "format": "CSV", "user_id": 7})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="relatorio-3-2024.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if reports.req.Format != report.FormatCSV || reports.req.EmployeeID == nil || *reports.req.EmployeeID != 7 {
		t.Fatalf("unexpected request %+v", reports.req)
	}
}

func TestMonthlyReportErrors(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		err  error
		want int
	}{
		{"missing month", map[string]any{"year": 2024}, nil, fiber.StatusBadRequest},
		{"bad format", map[string]any{"month": 3, "year": 2024, "format": "docx"}, nil, fiber.StatusBadRequest},
		{"email not configured", map[string]any{"month": 3, "year": 2024, "send_email": true}, report.ErrReportEmailNotConfigured, fiber.StatusBadRequest},
		{"delivery failed", map[string]any{"month": 3, "year": 2024, "send_email": true}, &report.EmailDeliveryError{To: "rh@example.com", Err: errors.New("smtp")}, fiber.StatusBadGateway},
		{"pdf engine", map[string]any{"month": 3, "year": 2024}, &report.EncodingError{Kind: report.KindPDFEngineUnavailable, Format: report.FormatPDF, Err: errors.New("font")}, fiber.StatusInternalServerError},
		{"storage", map[string]any{"month": 3, "year": 2024}, &report.StorageError{Op: "query punch events", Err: errors.New("db")}, fiber.StatusInternalServerError},
		{"timeout", map[string]any{"month": 3, "year": 2024}, &report.StorageError{Op: "query punch events", Err: context.DeadlineExceeded}, fiber.StatusGatewayTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Post("/reports", NewReportHandler(&fakeReports{err: tc.err}, 0).Monthly)
			resp := doJSON(t, app, "POST", "/reports", tc.body)
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestMonthlyReportEmail(t *testing.T) {
	reports := &fakeReports{file: &report.File{Name: "relatorio-3-2024.pdf"}}
	app := fiber.New()
	app.Post("/reports", NewReportHandler(reports, 0).Monthly)

	resp := doJSON(t, app, "POST", "/reports", map[string]any{"month": 3, "year": 2024, "send_email": true})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	decode(t, resp, &body)
	if body["to"] != "rh@example.com" || reports.req.Format != report.FormatPDF {
		t.Fatalf("unexpected response %v / %+v", body, reports.req)
	}
}

type memorySettings map[string]string

func (m memorySettings) Get(_ context.Context, key string) (*model.Setting, error) {
	v, ok := m[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.Setting{Key: key, Value: v}, nil
}

func (m memorySettings) Set(_ context.Context, key, value string) (*model.Setting, error) {
	m[key] = value
	return &model.Setting{Key: key, Value: value}, nil
}

func TestSettings(t *testing.T) {
	settings := memorySettings{}
	h := NewSettingHandler(settings)
	app := fiber.New()
	app.Get("/settings/:key", h.Get)
	app.Post("/settings", h.Set)

	if resp := doJSON(t, app, "GET", "/settings/report_email", nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "POST", "/settings", map[string]string{"key": "report_email", "value": "a@example.com"}); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "POST", "/settings", map[string]string{"key": "report_email", "value": "b@example.com"}); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp := doJSON(t, app, "GET", "/settings/report_email", nil)
	var got model.Setting
	decode(t, resp, &got)
	if got.Value != "b@example.com" {
		t.Fatalf("last write must win, got %q", got.Value)
	}
}
