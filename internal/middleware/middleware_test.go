package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"ponto-backend/internal/auth"
	"ponto-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func newTestApp(tokens *auth.TokenIssuer) *fiber.App {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/me", Auth(tokens), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"id": id})
	})
	app.Get("/admin", Auth(tokens), Role(model.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuth(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	app := newTestApp(tokens)
	valid, err := tokens.Issue(5, model.RoleEmployee)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + valid, fiber.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestRole(t *testing.T) {
	tokens := auth.NewTokenIssuer("secret", time.Hour)
	app := newTestApp(tokens)

	for role, want := range map[string]int{
		model.RoleEmployee: fiber.StatusForbidden,
		model.RoleAdmin:    fiber.StatusOK,
	} {
		token, err := tokens.Issue(1, role)
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		req := httptest.NewRequest("GET", "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		if resp.StatusCode != want {
			t.Fatalf("role %s: expected %d, got %d", role, want, resp.StatusCode)
		}
	}
}

func TestRequestLoggerKeepsStatus(t *testing.T) {
	app := fiber.New()
	app.Use(RequestLogger())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "teapot")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusTeapot {
		t.Fatalf("expected 418, got %d", resp.StatusCode)
	}
}
