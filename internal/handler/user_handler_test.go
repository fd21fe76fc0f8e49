package handler

import (
	"context"
	"errors"
	"testing"
	"time"

	"ponto-backend/internal/model"
	"ponto-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type memoryUsers struct {
	byID     map[uint]*model.User
	next     uint
	emailErr error
}

func newMemoryUsers(users ...model.User) *memoryUsers {
	m := &memoryUsers{byID: map[uint]*model.User{}}
	for i := range users {
		u := users[i]
		m.byID[u.ID] = &u
		m.next = max(m.next, u.ID)
	}
	return m
}

func (m *memoryUsers) Create(_ context.Context, user *model.User) error {
	m.next++
	user.ID = m.next
	u := *user
	m.byID[u.ID] = &u
	return nil
}

func (m *memoryUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.emailErr != nil {
		return nil, m.emailErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryUsers) ListActive(context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range m.byID {
		if u.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memoryUsers) Update(_ context.Context, user *model.User) error {
	u := *user
	m.byID[u.ID] = &u
	return nil
}

func (m *memoryUsers) Deactivate(_ context.Context, id uint) error {
	u, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsActive = false
	return nil
}

func (m *memoryUsers) Count(context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

func seededUsers() *memoryUsers {
	admin := model.User{Email: "admin@example.com", FirstName: "Ana", Role: model.RoleAdmin, IsActive: true}
	admin.ID = 1
	emp := model.User{Email: "bruno@example.com", FirstName: "Bruno", Role: model.RoleEmployee, IsActive: true}
	emp.ID = 2
	return newMemoryUsers(admin, emp)
}

func userApp(users *memoryUsers) *fiber.App {
	h := NewUserHandler(users)
	app := fiber.New()
	app.Use(asUser(1, model.RoleAdmin))
	app.Get("/users", h.List)
	app.Post("/users", h.Create)
	app.Put("/users/:id", h.Update)
	app.Delete("/users/:id", h.Deactivate)
	return app
}

func TestCreateUser(t *testing.T) {
	users := seededUsers()
	app := userApp(users)

	resp := doJSON(t, app, "POST", "/users", map[string]string{
		"email": " Carla@Example.com ", "password": "secret1", "first_name": "Carla",
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var got map[string]any
	decode(t, resp, &got)
	if got["email"] != "carla@example.com" {
		t.Fatalf("email not normalized: %v", got["email"])
	}
	if got["role"] != model.RoleEmployee {
		t.Fatalf("default role should be employee, got %v", got["role"])
	}
	if _, ok := got["password"]; ok {
		t.Fatalf("password must not be serialized")
	}

	stored, err := users.GetByEmail(context.Background(), "carla@example.com")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.Password == "secret1" || stored.Password == "" {
		t.Fatalf("password must be hashed")
	}
}

func TestCreateUserRejects(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"duplicate email", map[string]string{"email": "bruno@example.com", "password": "secret1", "first_name": "B"}, fiber.StatusConflict},
		{"short password", map[string]string{"email": "x@example.com", "password": "123", "first_name": "X"}, fiber.StatusBadRequest},
		{"bad email", map[string]string{"email": "nope", "password": "secret1", "first_name": "X"}, fiber.StatusBadRequest},
		{"bad role", map[string]string{"email": "y@example.com", "password": "secret1", "first_name": "Y", "role": "root"}, fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, userApp(seededUsers()), "POST", "/users", tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestUpdateUser(t *testing.T) {
	users := seededUsers()
	app := userApp(users)

	resp := doJSON(t, app, "PUT", "/users/2", map[string]any{"last_name": "Lima", "password": ""})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	u, _ := users.GetByID(context.Background(), 2)
	if u.LastName != "Lima" || u.FirstName != "Bruno" {
		t.Fatalf("unexpected user after update: %+v", u)
	}

	if resp := doJSON(t, app, "PUT", "/users/2", map[string]any{"email": "admin@example.com"}); resp.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for taken email, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "PUT", "/users/2", map[string]any{"email": "  Bruno.Lima@Example.com "}); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("padded email should be accepted, got %d", resp.StatusCode)
	}
	if u, _ := users.GetByID(context.Background(), 2); u.Email != "bruno.lima@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if resp := doJSON(t, app, "PUT", "/users/99", map[string]any{"first_name": "X"}); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "PUT", "/users/abc", map[string]any{}); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateUserEmailLookupFails(t *testing.T) {
	users := seededUsers()
	users.emailErr = errors.New("connection reset")
	app := userApp(users)

	resp := doJSON(t, app, "PUT", "/users/2", map[string]any{"email": "new@example.com"})
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if u, _ := users.GetByID(context.Background(), 2); u.Email != "bruno@example.com" {
		t.Fatalf("user must not change when the uniqueness check fails, got %q", u.Email)
	}
}

func TestDeactivateUser(t *testing.T) {
	users := seededUsers()
	app := userApp(users)

	if resp := doJSON(t, app, "DELETE", "/users/1", nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("deactivating self should be 400, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "DELETE", "/users/2", nil); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, app, "DELETE", "/users/99", nil); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var listed []model.User
	decode(t, doJSON(t, app, "GET", "/users", nil), &listed)
	if len(listed) != 1 || listed[0].ID != 1 {
		t.Fatalf("only the admin should remain active, got %+v", listed)
	}
}

type fakeDashboard struct{ day time.Time }

func (f *fakeDashboard) GetStats(_ context.Context, day time.Time) (*repository.DashboardStats, error) {
	f.day = day
	return &repository.DashboardStats{ActiveEmployees: 4, TodayEntries: 3, TodayExits: 1, CurrentlyWorking: 2}, nil
}

type limitRecords struct {
	fakeRecords
	limit int
}

func (l *limitRecords) Recent(_ context.Context, limit int) ([]model.TimeRecord, error) {
	l.limit = limit
	return []model.TimeRecord{
		{UserID: 2, Type: model.PunchEntry, User: &model.User{FirstName: "Bruno", LastName: "Lima"}},
		{UserID: 9, Type: model.PunchExit},
	}, nil
}

func TestDashboard(t *testing.T) {
	dash := &fakeDashboard{}
	records := &limitRecords{}
	h := NewDashboardHandler(dash, records)
	fixed := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	app := fiber.New()
	app.Get("/stats", h.GetStats)
	app.Get("/recent", h.RecentRecords)

	var stats repository.DashboardStats
	decode(t, doJSON(t, app, "GET", "/stats", nil), &stats)
	if stats.CurrentlyWorking != 2 || !dash.day.Equal(fixed) {
		t.Fatalf("unexpected stats %+v for day %v", stats, dash.day)
	}

	var recent []map[string]any
	decode(t, doJSON(t, app, "GET", "/recent", nil), &recent)
	if records.limit != defaultRecentLimit {
		t.Fatalf("expected default limit, got %d", records.limit)
	}
	if recent[0]["user_name"] != "Bruno Lima" || recent[1]["user_name"] != model.UnknownUserName {
		t.Fatalf("unexpected names: %v / %v", recent[0]["user_name"], recent[1]["user_name"])
	}

	doJSON(t, app, "GET", "/recent?limit=5000", nil)
	if records.limit != maxRecentLimit {
		t.Fatalf("limit should be capped, got %d", records.limit)
	}
	if resp := doJSON(t, app, "GET", "/recent?limit=-1", nil); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", Health("Clean My House"))

	var body map[string]string
	decode(t, doJSON(t, app, "GET", "/health", nil), &body)
	if body["status"] != "ok" || body["app"] != "Clean My House" {
		t.Fatalf("unexpected health body %v", body)
	}
}
