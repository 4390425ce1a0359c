package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipehub/backend/internal/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoAmI(c *gin.Context) {
	p, ok := PrincipalFrom(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, p.UserID.String()+"/"+p.Role)
}

func doRequest(r http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	verifier := NewTokenVerifier("a-very-long-secret-used-only-in-tests")
	r := gin.New()
	r.GET("/", Authenticate(verifier), whoAmI)

	user := types.Principal{UserID: uuid.New(), Role: "user"}
	token, err := verifier.Sign(user, time.Hour)
	require.NoError(t, err)

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, user.UserID.String()+"/user", w.Body.String())

	w = doRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")

	forged, err := NewTokenVerifier("some-other-secret").Sign(user, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, forged).Code)

	expired, err := verifier.Sign(user, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, expired).Code)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "not.a.token").Code)
}

func TestOptionalAuth(t *testing.T) {
	verifier := NewTokenVerifier("a-very-long-secret-used-only-in-tests")
	r := gin.New()
	r.GET("/", OptionalAuth(verifier), whoAmI)

	assert.Equal(t, "anonymous", doRequest(r, "").Body.String())
	assert.Equal(t, "anonymous", doRequest(r, "garbage").Body.String())

	admin := types.Principal{UserID: uuid.New(), Role: "admin"}
	token, err := verifier.Sign(admin, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, admin.UserID.String()+"/admin", doRequest(r, token).Body.String())
}

func TestRequireAdmin(t *testing.T) {
	verifier := NewTokenVerifier("a-very-long-secret-used-only-in-tests")
	r := gin.New()
	r.GET("/", Authenticate(verifier), RequireAdmin(), whoAmI)

	userToken, err := verifier.Sign(types.Principal{UserID: uuid.New(), Role: "user"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doRequest(r, userToken).Code)

	adminToken, err := verifier.Sign(types.Principal{UserID: uuid.New(), Role: "admin"}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doRequest(r, adminToken).Code)
}
