package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bme-guide/internal/config"
	"bme-guide/internal/course"
	"bme-guide/internal/sidebar"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Environment:        "test",
		CORSOrigins:        []string{"http://localhost:8080"},
		RateLimitRequests:  3,
		RateLimitWindow:    3600,
		RateLimitBurst:     3,
		EnableMetrics:      true,
		SiteName:           "מדריך אקדמי BME",
		SiteShortName:      "מדריך BME",
		SiteTagline:        "הפקולטה להנדסה ביו-רפואית",
		DefaultLanguage:    "he",
		SidebarDefaultOpen: true,
		ThemeColors:        map[string]string{},
	}
}

func newTestApplication(t *testing.T, cfg *config.Config) *Application {
	t.Helper()
	gin.SetMode(gin.TestMode)

	application, err := New(cfg, Options{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = application.Shutdown(ctx)
	})
	return application
}

func serve(application *Application, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	application.Router().ServeHTTP(rec, req)
	return rec
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, Options{})
	assert.Error(t, err)
}

func TestNewRejectsInvalidThemeOverride(t *testing.T) {
	cfg := testConfig()
	cfg.ThemeColors = map[string]string{"bme-blue": "red;}</style>"}

	_, err := New(cfg, Options{Registry: prometheus.NewRegistry()})
	assert.Error(t, err)
}

func TestRoutes(t *testing.T) {
	application := newTestApplication(t, testConfig())

	cases := []struct {
		path   string
		status int
	}{
		{path: "/", status: http.StatusFound},
		{path: "/Home", status: http.StatusOK},
		{path: "/ProgressTracker", status: http.StatusOK},
		{path: "/health", status: http.StatusOK},
		{path: "/static/shell.css", status: http.StatusOK},
		{path: "/Unknown", status: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := serve(application, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}

func TestPagesCarryStyleHashInPolicy(t *testing.T) {
	application := newTestApplication(t, testConfig())

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/Home", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'"+application.stylesheet.Hash()+"'")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<style>"))
	assert.Contains(t, rec.Body.String(), `<p class="text-slate-600">הפקולטה להנדסה ביו-רפואית</p>`)
}

func TestThemeOverrideFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.ThemeColors = map[string]string{"bme-blue": "#112233"}
	application := newTestApplication(t, cfg)

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/Home", nil))
	assert.Contains(t, rec.Body.String(), "--bme-blue: #112233;")
}

func TestDefaultLanguageSwitchesDirection(t *testing.T) {
	cfg := testConfig()
	cfg.DefaultLanguage = "en"
	application := newTestApplication(t, cfg)

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/Home", nil))
	assert.Contains(t, rec.Body.String(), `<html lang="en" dir="ltr">`)
}

func TestToggleRoundTrip(t *testing.T) {
	application := newTestApplication(t, testConfig())

	form := url.Values{"return_to": {"/ProgressTracker"}}
	req := httptest.NewRequest(http.MethodPost, "/sidebar/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := serve(application, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/ProgressTracker", rec.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == sidebar.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, "false", cookie.Value)

	page := httptest.NewRequest(http.MethodGet, "/ProgressTracker", nil)
	page.AddCookie(cookie)
	body := serve(application, page).Body.String()
	assert.Contains(t, body, `data-state="collapsed"`)
	assert.Contains(t, body, `data-icon="panel-left-open"`)

	metrics := serve(application, httptest.NewRequest(http.MethodGet, "/metrics", nil)).Body.String()
	assert.Contains(t, metrics, `bme_guide_sidebar_toggles_total{state="collapsed"} 1`)
	assert.Contains(t, metrics, `bme_guide_http_requests_total{method="GET",route="/ProgressTracker",status="200"} 1`)
}

func TestToggleRejectsCrossSitePost(t *testing.T) {
	application := newTestApplication(t, testConfig())

	form := url.Values{"return_to": {"/Home"}}
	req := httptest.NewRequest(http.MethodPost, "/sidebar/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "https://evil.example")
	rec := serve(application, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, sidebar.CookieName, c.Name)
	}

	req = httptest.NewRequest(http.MethodPost, "/sidebar/toggle", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	assert.Equal(t, http.StatusSeeOther, serve(application, req).Code)
}

func TestToggleIsRateLimited(t *testing.T) {
	application := newTestApplication(t, testConfig())

	var last int
	for i := 0; i < 4; i++ {
		last = serve(application, httptest.NewRequest(http.MethodPost, "/sidebar/toggle", nil)).Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/Home", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMetrics = false
	application := newTestApplication(t, cfg)

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomCourseProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)
	provider := course.NewStaticProvider("", "תואר ראשון בהנדסה ביו-רפואית")

	application, err := New(testConfig(), Options{Registry: prometheus.NewRegistry(), CourseProvider: provider})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown(context.Background()) })

	rec := serve(application, httptest.NewRequest(http.MethodGet, "/ProgressTracker", nil))
	assert.Contains(t, rec.Body.String(), "תואר ראשון בהנדסה ביו-רפואית")
}
