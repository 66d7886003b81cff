package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)
}

func TestRouterOptions(t *testing.T) {
	r := NewRouter(gin.New(), WithPrefix("/functions"), WithAPIVersion("v2"))

	assert.Equal(t, "/functions/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithMiddleware(func(c *gin.Context) {
		c.Header("X-Router", "admin")
		c.Next()
	}))

	admin := NewDomainGroup("admin", "/admin")
	admin.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(admin).Setup()

	w := serve(engine, http.MethodGet, "/api/v1/admin/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "admin", w.Header().Get("X-Router"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("deliveries", "/deliveries")
		assert.Equal(t, "deliveries", g.Name())
		assert.Equal(t, "/deliveries", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.Status(http.StatusOK) }

		g := NewDomainGroup("test", "/test")
		g.GET("/items", ok).
			POST("/items", ok).
			PUT("/items/:id", ok).
			DELETE("/items/:id", ok).
			OPTIONS("/items", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/test/items"},
			{http.MethodPost, "/api/v1/test/items"},
			{http.MethodPut, "/api/v1/test/items/123"},
			{http.MethodDelete, "/api/v1/test/items/123"},
			{http.MethodOptions, "/api/v1/test/items"},
		}
		for _, tt := range tests {
			assert.Equal(t, http.StatusOK, serve(engine, tt.method, tt.path).Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies middleware to preflight", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("functions", "")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
		})
		handler := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
		g.POST("/create-payment-intent", handler).OPTIONS("/create-payment-intent", handler)
		g.RegisterRoutes(engine.Group("/functions/v1"))

		w := serve(engine, http.MethodOptions, "/functions/v1/create-payment-intent")
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("creates subgroups", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("admin", "/admin")

		g.Group("deliveries", "/deliveries").GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "deliveries")
		})
		g.Group("drivers", "/drivers").GET("/:driver_id/location", func(c *gin.Context) {
			c.String(http.StatusOK, c.Param("driver_id"))
		})
		g.RegisterRoutes(engine.Group("/api/v1"))

		w1 := serve(engine, http.MethodGet, "/api/v1/admin/deliveries")
		assert.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "deliveries", w1.Body.String())

		w2 := serve(engine, http.MethodGet, "/api/v1/admin/drivers/d7/location")
		assert.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "d7", w2.Body.String())
	})
}

func TestMultipleRouters(t *testing.T) {
	engine := gin.New()

	fn := NewDomainGroup("functions", "")
	fn.POST("/stripe-webhook", func(c *gin.Context) { c.String(http.StatusOK, "fn") })
	NewRouter(engine, WithPrefix("/functions")).Register(fn).Setup()

	admin := NewDomainGroup("admin", "/admin")
	admin.GET("/deliveries", func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	NewRouter(engine).Register(admin).Setup()

	assert.Equal(t, "fn", serve(engine, http.MethodPost, "/functions/v1/stripe-webhook").Body.String())
	assert.Equal(t, "admin", serve(engine, http.MethodGet, "/api/v1/admin/deliveries").Body.String())
}
