package webserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/salesdesk/salesdesk/config"
	"github.com/stretchr/testify/assert"
)

func TestServerRoutesAndErrors(t *testing.T) {
	cfg := *config.DefaultAppConfig
	cfg.Web.ApiPrefix = "/api"
	s := Init(&cfg, "ctx-value")

	ApiGET("/boom", func(c echo.Context) error {
		return errors.New("disk on fire")
	})
	ApiGET("/ctx", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(AppContextKey).(string))
	})
	ApiPOST("/echo", func(c echo.Context) error {
		var body map[string]interface{}
		if err := c.Bind(&body); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, body)
	})

	cases := []struct {
		name   string
		method string
		target string
		body   string
		code   int
		expect string
	}{
		{"unhandled error", http.MethodGet, "/api/boom", "", http.StatusInternalServerError, `"INTERNAL_ERROR"`},
		{"app context", http.MethodGet, "/api/ctx", "", http.StatusOK, "ctx-value"},
		{"trailing slash", http.MethodGet, "/api/ctx/", "", http.StatusOK, "ctx-value"},
		{"unknown route", http.MethodGet, "/api/nothing", "", http.StatusNotFound, "Not Found"},
		{"json round trip", http.MethodPost, "/api/echo", `{"a":1}`, http.StatusOK, `{"a":1}`},
		{"malformed json", http.MethodPost, "/api/echo", `{"a":`, http.StatusBadRequest, "Bad Request"},
		{"health", http.MethodGet, "/health", "", http.StatusOK, `"ok"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			rec := httptest.NewRecorder()
			s.Echo().ServeHTTP(rec, req)
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.expect)
		})
	}
}
