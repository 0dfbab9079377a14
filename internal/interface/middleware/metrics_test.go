package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/Alessandra005/witcon2026/pkg/apperror"
)

func TestMetrics_RecordsRoutePatternAndStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.HTTPErrorHandler = CustomHTTPErrorHandler
	e.Use(m.Middleware())
	e.GET("/attendees/:id/", func(c echo.Context) error {
		if c.Param("id") == "ghost" {
			return apperror.NewNotFoundError("Profile")
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/attendees/user-1/", "/attendees/user-2/", "/attendees/ghost/"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, promtest.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/attendees/:id/", "200")))
	assert.Equal(t, 1.0, promtest.ToFloat64(m.requestsTotal.WithLabelValues(http.MethodGet, "/attendees/:id/", "404")))
	assert.Equal(t, 2, promtest.CollectAndCount(m.requestsTotal))
}
