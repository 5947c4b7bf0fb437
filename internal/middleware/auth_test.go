package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "segredo-de-teste"

func assinar(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func claimsBase(typ, rol string, exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"user_id":  "5f0c7a8e-8d1e-4d7e-9a39-2a4f7d7c9b10",
		"username": "admin",
		"nome":     "Administrador",
		"rol":      rol,
		"typ":      typ,
		"exp":      exp.Unix(),
	}
}

func routerProtegido(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/p", JWTAuth(secret), RequireRole(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, GetClaims(c).Nome)
	})
	return r
}

func get(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := routerProtegido("administrador", "supervisor")
	futuro := time.Now().Add(time.Hour)

	w := get(r, assinar(t, secret, claimsBase("access", "administrador", futuro)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Administrador", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	casos := map[string]string{
		"sem token":        "",
		"refresh token":    assinar(t, secret, claimsBase("refresh", "administrador", futuro)),
		"expirado":         assinar(t, secret, claimsBase("access", "administrador", time.Now().Add(-time.Minute))),
		"outra assinatura": assinar(t, "outro", claimsBase("access", "administrador", futuro)),
		"lixo":             "abc.def.ghi",
	}
	for nome, token := range casos {
		t.Run(nome, func(t *testing.T) {
			w := get(r, token)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := routerProtegido("administrador")
	w := get(r, assinar(t, secret, claimsBase("access", "atendente", time.Now().Add(time.Hour))))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequestID_ReusaCabecalho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Body.String())
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panico", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panico", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "boom")
}
