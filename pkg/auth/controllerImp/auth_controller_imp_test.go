package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"olivia/database"
	"olivia/pkg/chat/repositoryImp"
	"olivia/pkg/middleware"
)

func server(t *testing.T, secret string) *echo.Echo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	h := NewAuthController(secret, repositoryImp.New(db), nil)

	e := echo.New()
	e.GET("/devlogin", h.DevLogin, middleware.DevLogin())
	e.GET("/whoami", h.WhoAmI, middleware.Auth(secret, false))
	return e
}

func get(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestDevLoginIssuesUsableToken(t *testing.T) {
	e := server(t, "s3cret")

	rec := get(e, "/devlogin?uid=alice&premium=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		UID     string `json:"uid"`
		Premium bool   `json:"premium"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "alice", out.UID)
	require.True(t, out.Premium)
	require.NotEmpty(t, out.Token)

	rec = get(e, "/whoami", out.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"uid":"alice","premium":true}`, rec.Body.String())

	require.Equal(t, http.StatusUnauthorized, get(e, "/whoami", "").Code)
}

func TestDevLoginWithoutSecret(t *testing.T) {
	e := server(t, "")
	rec := get(e, "/devlogin", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"uid":"U_DEV_DEFAULT","premium":false}`, rec.Body.String())
}

func TestDevLoginSwitchesIdentity(t *testing.T) {
	e := server(t, "")
	req := httptest.NewRequest(http.MethodGet, "/devlogin?uid=bob", nil)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: "alice"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.JSONEq(t, `{"uid":"bob","premium":false}`, rec.Body.String())
	require.Contains(t, rec.Header().Get("Set-Cookie"), middleware.DevCookie+"=bob")

	req = httptest.NewRequest(http.MethodGet, "/devlogin", nil)
	req.AddCookie(&http.Cookie{Name: middleware.DevCookie, Value: "alice"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.JSONEq(t, `{"uid":"alice","premium":false}`, rec.Body.String())
}
