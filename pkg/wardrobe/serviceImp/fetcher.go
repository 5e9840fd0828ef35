package serviceImp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"olivia/pkg/planner/types"
	"olivia/pkg/wardrobe/service"
)

const (
	maxPageBytes = 2 << 20
	maxRedirects = 5
)

// Page is what a product page tells us about a garment.
type Page struct {
	Title    string
	Image    string
	Color    string
	Material string
}

// GuessType returns the clothing keyword found in the title, or "".
func (p Page) GuessType() string {
	kw, _, _ := types.MatchKeyword(p.Title)
	return kw
}

// PageFetcher downloads product pages from allow-listed hosts only.
type PageFetcher struct {
	client  *http.Client
	allowed map[string]bool
}

func NewPageFetcher(domains []string, client *http.Client) *PageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	allowed := map[string]bool{}
	for _, d := range domains {
		allowed[strings.ToLower(strings.TrimSpace(d))] = true
	}
	f := &PageFetcher{allowed: allowed}
	c := *client
	c.CheckRedirect = f.checkRedirect
	f.client = &c
	return f
}

// checkRedirect holds every hop to the allowlist, not just the first URL.
func (f *PageFetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: too many redirects", service.ErrUnsupportedPage)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return fmt.Errorf("%w: redirect to %s", service.ErrUnsupportedPage, req.URL.Scheme)
	}
	if !f.hostAllowed(req.URL.Host) {
		return fmt.Errorf("%w: redirect to %s", service.ErrDomainNotAllowed, req.URL.Hostname())
	}
	return nil
}

// hostAllowed accepts an exact host or any subdomain of an allowed one.
func (f *PageFetcher) hostAllowed(host string) bool {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	for d := range f.allowed {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

func (f *PageFetcher) Fetch(ctx context.Context, raw string) (*Page, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: bad url", service.ErrUnsupportedPage)
	}
	if !f.hostAllowed(u.Host) {
		return nil, fmt.Errorf("%w: %s", service.ErrDomainNotAllowed, u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "olivia-wardrobe-import/1.0")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", u.Hostname(), resp.StatusCode)
	}
	if resp.ContentLength > maxPageBytes {
		return nil, fmt.Errorf("%w: page too large", service.ErrUnsupportedPage)
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ct, "text/html") {
		return nil, fmt.Errorf("%w: content-type %s", service.ErrUnsupportedPage, ct)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, err
	}
	return parsePage(b, u)
}

func parsePage(b []byte, base *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	meta := func(sels ...string) string {
		for _, s := range sels {
			if v := strings.TrimSpace(doc.Find(s).First().AttrOr("content", "")); v != "" {
				return v
			}
		}
		return ""
	}
	itemprop := func(name string) string {
		sel := doc.Find(`[itemprop="` + name + `"]`).First()
		if v := strings.TrimSpace(sel.AttrOr("content", "")); v != "" {
			return v
		}
		return strings.TrimSpace(sel.Text())
	}

	p := &Page{
		Title:    meta(`meta[property="og:title"]`, `meta[name="twitter:title"]`),
		Image:    meta(`meta[property="og:image"]`, `meta[name="twitter:image"]`),
		Color:    meta(`meta[property="product:color"]`, `meta[name="color"]`),
		Material: meta(`meta[property="product:material"]`),
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if p.Title == "" {
		p.Title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if p.Color == "" {
		p.Color = itemprop("color")
	}
	if p.Material == "" {
		p.Material = itemprop("material")
	}
	if p.Image != "" {
		if iu, err := base.Parse(p.Image); err == nil {
			p.Image = iu.String()
		}
	}
	if p.Title == "" {
		return nil, fmt.Errorf("%w: no product title", service.ErrUnsupportedPage)
	}
	return p, nil
}
