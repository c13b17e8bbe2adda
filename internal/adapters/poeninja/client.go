package poeninja

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/exilebot/internal/domain"
)

const (
	defaultBaseURL = "https://poe.ninja/api/data/"

	// poe.ninja no publica rate limits; 4 req/s con burst corto es más que
	// suficiente para las 5 categorías de un ciclo.
	requestsPerSec = 4

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// category describe un dataset a pedir al API.
type category struct {
	Name     string // clave en el DataCache ("Scarab", "Gem"...)
	Overview string // "itemoverview" | "currencyoverview"
	ItemType string // parámetro type del API
}

// categories son los datasets que un ciclo de análisis necesita.
var categories = []category{
	{Name: "Currency", Overview: "currencyoverview", ItemType: "Currency"},
	{Name: "Tattoo", Overview: "itemoverview", ItemType: "Tattoo"},
	{Name: "Scarab", Overview: "itemoverview", ItemType: "Scarab"},
	{Name: "Essence", Overview: "itemoverview", ItemType: "Essence"},
	{Name: "Gem", Overview: "itemoverview", ItemType: "SkillGem"},
}

// Config parametriza el cliente de poe.ninja.
type Config struct {
	BaseURL         string
	ItemBlacklist   []string
	MinimumListings int
	CacheDir        string        // "" = sin cache en disco
	CacheTTL        time.Duration // vida útil de una respuesta cacheada
}

// Client implementa ports.MarketProvider contra el API de poe.ninja, con rate
// limiting, retries y un cache de respuestas en disco para no castigar al API
// en ejecuciones repetidas.
type Client struct {
	http      *http.Client
	baseURL   string
	limiter   *rate.Limiter
	blacklist map[string]bool
	minList   int
	cacheDir  string
	cacheTTL  time.Duration
}

// NewClient crea un Client con la configuración dada.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	blacklist := make(map[string]bool, len(cfg.ItemBlacklist))
	for _, name := range cfg.ItemBlacklist {
		blacklist[name] = true
	}
	return &Client{
		http:      &http.Client{Timeout: 15 * time.Second},
		baseURL:   base,
		limiter:   rate.NewLimiter(requestsPerSec, 2),
		blacklist: blacklist,
		minList:   cfg.MinimumListings,
		cacheDir:  cfg.CacheDir,
		cacheTTL:  cfg.CacheTTL,
	}
}

// FetchAll implementa ports.MarketProvider. Una categoría que falle aparece
// como tabla vacía: el ciclo degrada en vez de abortar por un fallo parcial.
func (c *Client) FetchAll(ctx context.Context, league string) (domain.DataCache, error) {
	cache := make(domain.DataCache, len(categories))
	total := 0

	for _, cat := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		table, err := c.fetchCategory(ctx, cat, league)
		if err != nil {
			slog.Warn("fetch category failed", "category", cat.Name, "league", league, "err", err)
			table = nil
		}
		cache[cat.Name] = table
		total += len(table)
	}

	slog.Info("data acquisition complete", "league", league, "records", total)
	return cache, nil
}

// fetchCategory devuelve la tabla de una categoría, usando el cache en disco
// si la respuesta aún es fresca.
func (c *Client) fetchCategory(ctx context.Context, cat category, league string) (domain.PriceTable, error) {
	raw, hit := c.readCache(cat, league)
	if !hit {
		u := fmt.Sprintf("%s%s?league=%s&type=%s",
			c.baseURL, cat.Overview, url.QueryEscape(league), url.QueryEscape(cat.ItemType))

		body, err := c.get(ctx, u)
		if err != nil {
			return nil, err
		}
		raw = body
		c.writeCache(cat, league, raw)
	}

	table, err := c.decode(cat, raw)
	if err != nil {
		return nil, err
	}
	slog.Debug("category loaded", "category", cat.Name, "entries", len(table), "cache_hit", hit)
	return table, nil
}

// decode parsea la respuesta cruda según el tipo de overview y la mapea al
// modelo de dominio.
func (c *Client) decode(cat category, raw []byte) (domain.PriceTable, error) {
	if cat.Overview == "currencyoverview" {
		var resp currencyOverviewResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("poeninja.decode %s: %w", cat.Name, err)
		}
		return mapCurrencyLines(resp.Lines, c.blacklist), nil
	}

	var resp itemOverviewResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("poeninja.decode %s: %w", cat.Name, err)
	}
	return mapItemLines(resp.Lines, c.blacklist, c.minList), nil
}

// get hace un GET con rate limiting y retries con backoff.
func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := baseRetryWait * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("poeninja.get: status %d", resp.StatusCode)
			continue
		default:
			return nil, fmt.Errorf("poeninja.get: status %d", resp.StatusCode)
		}
	}
	return nil, fmt.Errorf("poeninja.get: %d attempts: %w", maxRetries, lastErr)
}

// --- cache en disco ---

// cachePath devuelve la ruta del archivo de cache de una categoría y liga.
func (c *Client) cachePath(cat category, league string) string {
	return filepath.Join(c.cacheDir, fmt.Sprintf("%s_%s.json", league, cat.ItemType))
}

// readCache devuelve la respuesta cacheada si existe y no ha expirado.
func (c *Client) readCache(cat category, league string) ([]byte, bool) {
	if c.cacheDir == "" || c.cacheTTL <= 0 {
		return nil, false
	}
	path := c.cachePath(cat, league)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > c.cacheTTL {
		return nil, false
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return raw, true
}

// writeCache guarda la respuesta cruda. Un fallo de escritura solo degrada el
// cache, nunca el fetch.
func (c *Client) writeCache(cat category, league string, raw []byte) {
	if c.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		slog.Debug("cache dir create failed", "dir", c.cacheDir, "err", err)
		return
	}
	if err := os.WriteFile(c.cachePath(cat, league), raw, 0o644); err != nil {
		slog.Debug("cache write failed", "err", err)
	}
}
