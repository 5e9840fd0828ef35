package controllerImp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"olivia/database"
	"olivia/entities"
	"olivia/pkg/outfit/repository"
	"olivia/pkg/outfit/repositoryImp"
	usagerepo "olivia/pkg/trending/repository"
	usageRepoImp "olivia/pkg/trending/repositoryImp"
	trendingSvcImp "olivia/pkg/trending/serviceImp"
	"olivia/pkg/validation"
)

// 2025-01-15: winter
var winterNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	e     *echo.Echo
	repo  repository.OutfitRepository
	usage usagerepo.UsageRepository
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	repo := repositoryImp.New(db)
	usage := usageRepoImp.New(db)
	clock := func() time.Time { return winterNow }
	h := New(repo, trendingSvcImp.NewTrendingService(usage, repo, clock), clock)

	e := echo.New()
	e.Validator = validation.New()
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("uid", "u1")
			return next(c)
		}
	})
	g.POST("/outfits", h.Create)
	g.GET("/outfits", h.List)
	g.GET("/outfits/seasonal", h.Seasonal)
	g.PATCH("/outfits/:id", h.Patch)
	return fixture{e: e, repo: repo, usage: usage}
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)

	rec := f.do(http.MethodPost, "/outfits", `{"name":"Date night","items":["a","b","a"],"season":["winter"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var o entities.Outfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &o))
	require.NotEmpty(t, o.ID)
	require.Equal(t, "u1", o.UserID)
	require.Equal(t, []string{"a", "b"}, o.Items)

	rec = f.do(http.MethodPost, "/outfits", `{"items":["a"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "name is required")

	rec = f.do(http.MethodGet, "/outfits", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entities.Outfit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
}

func TestPatchFavoriteAndWorn(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	require.NoError(t, f.repo.Create(ctx, &entities.Outfit{ID: "o1", UserID: "u1", Name: "x", Items: []string{"a"}}))
	require.NoError(t, f.repo.Create(ctx, &entities.Outfit{ID: "o2", UserID: "someone-else", Name: "y", Items: []string{"a"}}))

	rec := f.do(http.MethodPatch, "/outfits/o1", `{"favorite":true,"worn":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = f.do(http.MethodPatch, "/outfits/o1", `{"worn":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := f.repo.FindByID(ctx, "o1", "u1")
	require.NoError(t, err)
	require.True(t, got.Favorite)
	require.Equal(t, 2, got.TimesWorn)

	rec = f.do(http.MethodPatch, "/outfits/o1", `{"favorite":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	got, err = f.repo.FindByID(ctx, "o1", "u1")
	require.NoError(t, err)
	require.False(t, got.Favorite)

	require.Equal(t, http.StatusNotFound, f.do(http.MethodPatch, "/outfits/o2", `{"worn":true}`).Code)
	require.Equal(t, http.StatusNotFound, f.do(http.MethodPatch, "/outfits/missing", `{"favorite":true}`).Code)
	require.Equal(t, http.StatusBadRequest, f.do(http.MethodPatch, "/outfits/o1", `{}`).Code)
}

func TestSeasonalRecordsNoiseEvents(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	for id, season := range map[string][]string{
		"w":   {"winter"},
		"any": {"all"},
		"s":   {"summer"},
	} {
		require.NoError(t, f.repo.Create(ctx, &entities.Outfit{ID: id, UserID: "u1", Name: id, Items: []string{"a"}, Season: season}))
	}

	rec := f.do(http.MethodGet, "/outfits/seasonal", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Season  string            `json:"season"`
		Outfits []entities.Outfit `json:"outfits"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "winter", body.Season)
	require.Len(t, body.Outfits, 2)

	all, err := f.usage.Since(ctx, winterNow.Add(-time.Hour), nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, ev := range all {
		require.Equal(t, entities.ActionSeasonalSuggestion, ev.ActionType)
	}

	// trending ignores them
	scored, err := f.usage.Since(ctx, winterNow.Add(-time.Hour), []string{entities.ActionSeasonalSuggestion, entities.ActionSeasonalCache})
	require.NoError(t, err)
	require.Empty(t, scored)
}
