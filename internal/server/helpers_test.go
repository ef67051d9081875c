package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, 25)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})

	tests := []struct {
		name   string
		url    string
		limit  float64
		offset float64
	}{
		{"defaults", "/items", 25, 0},
		{"explicit", "/items?limit=10&offset=30", 10, 30},
		{"negative values fall back", "/items?limit=-5&offset=-1", 25, 0},
		{"cap at max", "/items?limit=5000", 100, 0},
		{"garbage falls back", "/items?limit=abc", 25, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			var body map[string]float64
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.limit, body["limit"])
			assert.Equal(t, tt.offset, body["offset"])
		})
	}
}

func TestParseIDRejectsBadParams(t *testing.T) {
	h := newTestHarness(t)
	token := h.registerUser(t, "alice")

	for _, path := range []string{"/api/posts/abc/like", "/api/posts/0/like", "/api/posts/-1/like"} {
		resp := h.doJSON(t, http.MethodPost, path, token, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "path %s", path)
		_ = resp.Body.Close()
	}
}
