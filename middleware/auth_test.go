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

func signToken(t *testing.T, role, subject string, secret []byte) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/read", BearerAuth(), func(c *gin.Context) {
		principal, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"role": principal.Role, "subject": principal.Subject})
	})
	r.POST("/write", BearerAuth(), RequireCapability(CapManageRooms), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r *gin.Engine, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuthRejectsBadHeaders(t *testing.T) {
	r := authTestRouter()

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "Bearer not-a-jwt").Code)

	forged := signToken(t, RoleAdmin, "admin-1", []byte("wrong-secret"))
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "Bearer "+forged).Code)
}

func TestBearerAuthRejectsExpiredToken(t *testing.T) {
	r := authTestRouter()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := token.SignedString(jwtSecret())
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "Bearer "+signed).Code)
}

func TestBearerAuthRequiresSubject(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, RoleAdmin, "", jwtSecret())

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/read", "Bearer "+token).Code)
}

func TestCapabilityGate(t *testing.T) {
	r := authTestRouter()

	admin := signToken(t, RoleAdmin, "admin-1", jwtSecret())
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPost, "/write", "Bearer "+admin).Code)

	guest := signToken(t, RoleGuest, "guest-1", jwtSecret())
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/read", "Bearer "+guest).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodPost, "/write", "Bearer "+guest).Code)
}

func TestUnknownRoleDowngradesToGuest(t *testing.T) {
	r := authTestRouter()
	token := signToken(t, "janitor", "someone", jwtSecret())

	read := doRequest(r, http.MethodGet, "/read", "Bearer "+token)
	assert.Equal(t, http.StatusOK, read.Code)
	assert.Contains(t, read.Body.String(), RoleGuest)

	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodPost, "/write", "Bearer "+token).Code)
}
