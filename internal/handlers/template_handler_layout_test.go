package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bme-guide/internal/course"
	"bme-guide/internal/middleware"
	"bme-guide/internal/pages"
	"bme-guide/internal/shell"
	"bme-guide/internal/sidebar"
	"bme-guide/internal/theme"
	"bme-guide/pkg/navigation"
)

func newTemplateHandler(t *testing.T) *TemplateHandler {
	t.Helper()

	tokens, err := theme.Default()
	require.NoError(t, err)
	style := &theme.Stylesheet{}
	style.Register(tokens)

	layout, err := shell.New(shell.Options{
		Brand:      shell.Brand{Title: "מדריך אקדמי BME", Subtitle: "הפקולטה להנדסה ביו-רפואית"},
		Stylesheet: style,
	})
	require.NoError(t, err)

	loader, err := pages.NewLoader("")
	require.NoError(t, err)

	handler, err := NewTemplateHandler(layout, loader)
	require.NoError(t, err)
	return handler
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := newTemplateHandler(t)
	router := gin.New()
	router.Use(middleware.SidebarStateMiddleware(sidebar.CookieOptions{DefaultOpen: true}))
	router.Use(middleware.CourseContextMiddleware(course.NewStaticProvider("הפקולטה להנדסה ביו-רפואית", "")))
	router.GET("/", handler.RenderIndex)
	router.GET(navigation.PageURL(navigation.PageHome), handler.RenderPage(navigation.PageHome))
	router.GET(navigation.PageURL(navigation.PageProgressTracker), handler.RenderPage(navigation.PageProgressTracker))
	router.NoRoute(handler.NotFound)
	return router
}

func TestNewTemplateHandlerRequiresCollaborators(t *testing.T) {
	_, err := NewTemplateHandler(nil, nil)
	assert.Error(t, err)
}

func TestCurrentRouteIsNotNormalised(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []string{"/Home", "/Home/", "//Home", "/home"}
	for _, request := range cases {
		t.Run(request, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest(http.MethodGet, request, nil)

			assert.Equal(t, request, currentRoute(ctx).CurrentPath())
		})
	}
}

func TestSidebarStateWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/Home", nil)

	assert.Nil(t, sidebarState(ctx))
}

func TestRenderIndexRedirectsHome(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/Home", rec.Header().Get("Location"))
}

func TestRenderPageHighlightsActiveEntry(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		path   string
		active string
	}{
		{path: "/Home", active: "/Home"},
		{path: "/ProgressTracker", active: "/ProgressTracker"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Equal(t, 1, strings.Count(body, `aria-current="page"`))
			assert.Contains(t, body, `<a href="`+tc.active+`" class="flex items-center gap-3 px-4 py-3 `+navigation.ClassFor(true)+`"`)
			assert.Contains(t, body, `data-page-content="`+strings.TrimPrefix(tc.path, "/")+`"`)
		})
	}
}

func TestRenderPageExposesCourseContext(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Home", nil))

	assert.Contains(t, rec.Body.String(), `<p class="text-slate-600">הפקולטה להנדסה ביו-רפואית</p>`)
}

func TestRenderPageReadsSidebarCookie(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/Home", nil)
	req.AddCookie(&http.Cookie{Name: sidebar.CookieName, Value: "false"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), `data-state="collapsed"`)
	assert.Contains(t, rec.Body.String(), `data-icon="panel-left-open"`)
}

func TestNotFoundRendersInsideShell(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `data-page-content="NotFound"`)
	assert.Contains(t, body, `data-slot="content"`)
	assert.NotContains(t, body, `aria-current="page"`)
}

func TestTrailingSlashMatchesNoEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTemplateHandler(t)

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/Home/", nil)
	handler.RenderPage(navigation.PageHome)(ctx)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `aria-current="page"`)
}
