// Package geoip resolves client IPs to locale defaults (country, currency,
// timezone, language) used to seed new tenants. Lookups go to ipapi.co
// with retries and a per-IP cache; failures and private addresses fall
// back to the Moroccan defaults.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	gocache "github.com/patrickmn/go-cache"

	"github.com/beenayasoft/tenant-service/internal/domain/tenant"
	"github.com/beenayasoft/tenant-service/pkg/logger"
)

// headerCandidates are checked in order for the real client IP behind
// proxies and load balancers.
var headerCandidates = []string{
	"X-Forwarded-For",
	"X-Real-IP",
	"CF-Connecting-IP",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
}

// ClientIP extracts the first public client address from proxy headers,
// falling back to the connection's remote address.
func ClientIP(r *http.Request) string {
	for _, header := range headerCandidates {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		ip := strings.TrimSpace(strings.Split(value, ",")[0])
		if ip != "" && !IsPrivateIP(ip) {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// IsPrivateIP reports whether the address is loopback, link-local or in a
// private range, and therefore useless for geolocation.
func IsPrivateIP(ip string) bool {
	if ip == "" || ip == "localhost" {
		return true
	}
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return true
	}
	return parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsLinkLocalUnicast() || parsed.IsUnspecified()
}

// currencyByCountry overrides the API's currency for countries we know.
var currencyByCountry = map[string]string{
	"FR": "EUR", "BE": "EUR", "LU": "EUR", "ES": "EUR", "IT": "EUR", "DE": "EUR",
	"CH": "CHF",
	"MA": "MAD",
	"TN": "TND",
	"DZ": "DZD",
	"CA": "CAD",
	"US": "USD",
	"GB": "GBP",
}

// languageByCountry picks the business language per country; French for
// the Maghreb and Canada.
var languageByCountry = map[string]string{
	"FR": "fr", "BE": "fr", "MA": "fr", "TN": "fr", "DZ": "fr", "CA": "fr",
	"ES": "es",
	"IT": "it",
	"DE": "de",
	"US": "en", "GB": "en",
}

// DefaultLocation is used for private IPs and lookup failures.
func DefaultLocation() *tenant.Location {
	return &tenant.Location{
		CountryCode: "MA",
		CountryName: "Morocco",
		Currency:    "MAD",
		Timezone:    "Africa/Casablanca",
		Language:    "fr",
	}
}

const (
	defaultBaseURL    = "https://ipapi.co"
	cacheTTL          = 24 * time.Hour
	cacheSweep        = time.Hour
	lookupTimeout     = 5 * time.Second
	lookupRetryBudget = 2
)

// Client looks up IP geolocation with caching. Implements the tenant
// locator contract.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *gocache.Cache
}

var _ tenant.Locator = (*Client)(nil)

// NewClient creates a geoip client. baseURL is the ipapi.co root; empty
// selects the public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = lookupRetryBudget
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = lookupTimeout
	rc.Logger = nil

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc.StandardClient(),
		cache:   gocache.New(cacheTTL, cacheSweep),
	}
}

// apiResponse is the subset of the ipapi.co payload we consume.
type apiResponse struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Currency    string `json:"currency"`
	Timezone    string `json:"timezone"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Postal      string `json:"postal"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Locate resolves the IP to locale defaults. It never fails: private IPs,
// network errors and API errors all yield the default location.
func (c *Client) Locate(ctx context.Context, ip string) *tenant.Location {
	if IsPrivateIP(ip) {
		return DefaultLocation()
	}
	if cached, ok := c.cache.Get(ip); ok {
		loc := cached.(tenant.Location)
		return &loc
	}

	loc, err := c.lookup(ctx, ip)
	if err != nil {
		logger.Warn(ctx, "geoip lookup failed, using defaults", "ip", ip, "error", err)
		return DefaultLocation()
	}

	c.cache.Set(ip, *loc, gocache.DefaultExpiration)
	return loc
}

func (c *Client) lookup(ctx context.Context, ip string) (*tenant.Location, error) {
	url := fmt.Sprintf("%s/%s/json/", c.baseURL, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Error {
		return nil, fmt.Errorf("api error: %s", data.Reason)
	}

	country := data.CountryCode
	if country == "" {
		return DefaultLocation(), nil
	}

	loc := &tenant.Location{
		CountryCode: country,
		CountryName: data.CountryName,
		Currency:    data.Currency,
		Timezone:    data.Timezone,
		Language:    "fr",
		Region:      data.Region,
		City:        data.City,
		PostalCode:  data.Postal,
	}
	if currency, ok := currencyByCountry[country]; ok {
		loc.Currency = currency
	}
	if loc.Currency == "" {
		loc.Currency = "MAD"
	}
	if language, ok := languageByCountry[country]; ok {
		loc.Language = language
	}
	if loc.Timezone == "" {
		loc.Timezone = "Africa/Casablanca"
	}
	return loc, nil
}
