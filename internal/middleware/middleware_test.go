package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apierror "io.winapps.prompts/internal/models/api_error"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierror.ErrorResponse {
	t.Helper()
	var body apierror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCORSMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(CORSMiddleware())
	router.GET("/prompts", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/prompts", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prompts", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, logs := observedLogger()
	router := gin.New()
	router.Use(RequestIDMiddleware(), RecoveryMiddleware(logger))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "Internal server error", body.Message)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestRequestLoggingMiddleware_LevelsByStatus(t *testing.T) {
	logger, logs := observedLogger()
	router := gin.New()
	router.Use(RequestIDMiddleware(), RequestLoggingMiddleware(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/bad", func(c *gin.Context) { c.JSON(http.StatusBadRequest, apierror.New("nope")) })
	router.GET("/fail", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, apierror.New("broken")) })

	for _, path := range []string{"/ok", "/bad", "/fail"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 1, logs.FilterMessage("request completed").Len())
	warn := logs.FilterMessage("request completed with client error").All()
	require.Len(t, warn, 1)
	assert.Contains(t, warn[0].ContextMap()["response"], "nope")
	errs := logs.FilterMessage("request completed with server error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, int64(http.StatusInternalServerError), errs[0].ContextMap()["status"])
}

type fakeVerifier struct {
	uid string
	err error
}

func (f fakeVerifier) VerifyIDToken(_ context.Context, token string) (*auth.Token, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &auth.Token{UID: f.uid}, nil
}

func TestAuthMiddleware(t *testing.T) {
	logger, _ := observedLogger()
	tests := []struct {
		name     string
		header   string
		verifier fakeVerifier
		code     int
		message  string
	}{
		{"missing header", "", fakeVerifier{uid: "u1"}, http.StatusUnauthorized, "Authorization header is required"},
		{"wrong scheme", "Basic abc", fakeVerifier{uid: "u1"}, http.StatusUnauthorized, "Authorization header must start with 'Bearer '"},
		{"empty token", "Bearer  ", fakeVerifier{uid: "u1"}, http.StatusUnauthorized, "Token is required"},
		{"rejected token", "Bearer bad", fakeVerifier{err: errors.New("expired")}, http.StatusUnauthorized, "Invalid or expired token"},
		{"valid token", "Bearer good", fakeVerifier{uid: "u1"}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(AuthMiddleware(tt.verifier, logger))
			router.GET("/prompts", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(UIDKey)) })

			req := httptest.NewRequest(http.MethodGet, "/prompts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, "u1", rec.Body.String())
				return
			}
			assert.Equal(t, tt.message, decodeError(t, rec).Message)
		})
	}
}
