package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/noah-isme/lingua-center-api/pkg/config"
)

func newObservedEngine(opts RequestLogOptions) (*gin.Engine, *observer.ObservedLogs) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core), opts))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/students/:id", func(c *gin.Context) { c.String(http.StatusNotFound, "missing") })
	r.GET("/reports/:type/export", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
		c.Status(http.StatusInternalServerError)
	})
	return r, logs
}

func serve(r *gin.Engine, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
}

func TestGinMiddlewareLevelsAndFields(t *testing.T) {
	r, logs := newObservedEngine(RequestLogOptions{
		Fields: func(*gin.Context) []zap.Field { return []zap.Field{zap.Int64("user_id", 7)} },
	})

	serve(r, "/students/12")
	serve(r, "/reports/grades/export")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/students/:id", fields["route"])
	assert.Equal(t, int64(404), fields["status"])
	assert.Equal(t, int64(7), fields["user_id"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap(), "errors")
}

func TestGinMiddlewareSkipsHealthyProbes(t *testing.T) {
	r, logs := newObservedEngine(RequestLogOptions{SkipPaths: []string{"/health"}})

	serve(r, "/health")
	serve(r, "/nowhere")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "unmatched", entries[0].ContextMap()["route"])
}

func TestNewHonoursLevel(t *testing.T) {
	l, err := New(&config.Config{Env: config.EnvProduction, Log: config.LogConfig{Level: "warn", Format: "json"}})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}
