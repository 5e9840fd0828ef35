package serviceImp

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"olivia/database"
	"olivia/entities"
	"olivia/pkg/wardrobe/repositoryImp"
	"olivia/pkg/wardrobe/service"
)

const productHTML = `<!doctype html>
<html><head>
<title>Shop | Something else</title>
<meta property="og:title" content="Merino Crew Sweater">
<meta property="og:image" content="/img/sweater.jpg">
<meta property="product:color" content="navy">
</head><body>
<h1>Merino Crew Sweater</h1>
<span itemprop="material">wool</span>
</body></html>`

func productServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/sweater", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, productHTML)
	})
	mux.HandleFunc("/bare", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Slim Fit Jeans</title></head></html>`)
	})
	mux.HandleFunc("/json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSvc(t *testing.T, domains ...string) service.WardrobeService {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return NewWardrobeService(repositoryImp.New(db), NewPageFetcher(domains, nil))
}

func TestImportFromURL(t *testing.T) {
	srv := productServer(t)
	svc := newSvc(t, "127.0.0.1")
	ctx := context.Background()

	it, err := svc.ImportFromURL(ctx, "u1", service.Import{URL: srv.URL + "/sweater"})
	require.NoError(t, err)
	require.Equal(t, "Merino Crew Sweater", it.Name)
	require.Equal(t, "sweater", it.Type)
	require.Equal(t, "navy", it.Color)
	require.Equal(t, "wool", it.Material)
	require.Equal(t, srv.URL+"/img/sweater.jpg", it.ImageURL)
	require.Equal(t, srv.URL+"/sweater", it.SourceURL)
	require.Equal(t, []string{"all"}, it.Season)

	got, err := svc.Get(ctx, it.ID, "u1")
	require.NoError(t, err)
	require.Equal(t, it.Name, got.Name)

	bare, err := svc.ImportFromURL(ctx, "u1", service.Import{URL: srv.URL + "/bare", Type: "skinny jeans"})
	require.NoError(t, err)
	require.Equal(t, "Slim Fit Jeans", bare.Name)
	require.Equal(t, "skinny jeans", bare.Type)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestImportRejectsOtherHosts(t *testing.T) {
	srv := productServer(t)
	svc := newSvc(t, "shop.example.com")

	_, err := svc.ImportFromURL(context.Background(), "u1", service.Import{URL: srv.URL + "/sweater"})
	require.ErrorIs(t, err, service.ErrDomainNotAllowed)

	_, err = svc.ImportFromURL(context.Background(), "u1", service.Import{URL: "ftp://shop.example.com/x"})
	require.ErrorIs(t, err, service.ErrUnsupportedPage)
}

func TestImportRejectsNonHTML(t *testing.T) {
	srv := productServer(t)
	svc := newSvc(t, "127.0.0.1")
	_, err := svc.ImportFromURL(context.Background(), "u1", service.Import{URL: srv.URL + "/json"})
	require.ErrorIs(t, err, service.ErrUnsupportedPage)
}

func TestHostAllowedSubdomains(t *testing.T) {
	f := NewPageFetcher([]string{"zara.com"}, nil)
	require.True(t, f.hostAllowed("zara.com"))
	require.True(t, f.hostAllowed("www.zara.com:443"))
	require.False(t, f.hostAllowed("notzara.com"))
	require.False(t, NewPageFetcher(nil, nil).hostAllowed("zara.com"))
}

func TestAddNormalizesSeasons(t *testing.T) {
	svc := newSvc(t)
	it, err := svc.Add(context.Background(), &entities.ClothingItem{
		UserID: "u1", Name: "Coat", Type: "coat", Season: []string{"Fall", "winter", "autumn", "monsoon"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, it.ID)
	require.Equal(t, []string{"autumn", "winter"}, it.Season)
}

func TestImportRedirectMustStayOnAllowlist(t *testing.T) {
	internal := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Admin Shirt</title></head></html>`)
	}))
	t.Cleanup(internal.Close)
	_, port, err := net.SplitHostPort(internal.Listener.Addr().String())
	require.NoError(t, err)

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/out":
			http.Redirect(w, r, "http://localhost:"+port+"/", http.StatusFound)
		case "/loop":
			http.Redirect(w, r, "/loop", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(shop.Close)

	svc := newSvc(t, "127.0.0.1")
	ctx := context.Background()

	_, err = svc.ImportFromURL(ctx, "u1", service.Import{URL: shop.URL + "/out"})
	require.ErrorIs(t, err, service.ErrDomainNotAllowed)

	_, err = svc.ImportFromURL(ctx, "u1", service.Import{URL: shop.URL + "/loop"})
	require.ErrorIs(t, err, service.ErrUnsupportedPage)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestRedirectWithinAllowlistIsFollowed(t *testing.T) {
	srv := productServer(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/p/1", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/sweater", http.StatusMovedPermanently)
	})
	front := httptest.NewServer(mux)
	t.Cleanup(front.Close)

	it, err := newSvc(t, "127.0.0.1").ImportFromURL(context.Background(), "u1", service.Import{URL: front.URL + "/p/1"})
	require.NoError(t, err)
	require.Equal(t, "Merino Crew Sweater", it.Name)
}
