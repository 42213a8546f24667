package geoip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPrivateIP(t *testing.T) {
	private := []string{
		"",
		"localhost",
		"127.0.0.1",
		"10.0.0.5",
		"172.16.3.1",
		"192.168.1.42",
		"169.254.0.1",
		"0.0.0.0",
		"::1",
		"not-an-ip",
	}
	for _, ip := range private {
		assert.True(t, IsPrivateIP(ip), ip)
	}

	public := []string{"8.8.8.8", "196.200.1.1", "2a00:1450:4007:80e::200e"}
	for _, ip := range public {
		assert.False(t, IsPrivateIP(ip), ip)
	}
}

func TestClientIP(t *testing.T) {
	newRequest := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "203.0.113.7:54321"
		return r
	}

	t.Run("forwarded for takes first entry", func(t *testing.T) {
		r := newRequest()
		r.Header.Set("X-Forwarded-For", "196.200.1.1, 10.0.0.2")
		assert.Equal(t, "196.200.1.1", ClientIP(r))
	})

	t.Run("private forwarded addresses are skipped", func(t *testing.T) {
		r := newRequest()
		r.Header.Set("X-Forwarded-For", "192.168.1.10")
		r.Header.Set("X-Real-IP", "41.140.20.3")
		assert.Equal(t, "41.140.20.3", ClientIP(r))
	})

	t.Run("falls back to remote addr", func(t *testing.T) {
		r := newRequest()
		assert.Equal(t, "203.0.113.7", ClientIP(r))
	})

	t.Run("remote addr without port", func(t *testing.T) {
		r := newRequest()
		r.RemoteAddr = "203.0.113.7"
		assert.Equal(t, "203.0.113.7", ClientIP(r))
	})
}

func TestDefaultLocation(t *testing.T) {
	loc := DefaultLocation()
	assert.Equal(t, "MA", loc.CountryCode)
	assert.Equal(t, "MAD", loc.Currency)
	assert.Equal(t, "Africa/Casablanca", loc.Timezone)
	assert.Equal(t, "fr", loc.Language)
}

func TestClient_Locate(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/196.200.1.1/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"country_code": "MA",
			"country_name": "Morocco",
			"currency": "MAD",
			"timezone": "Africa/Casablanca",
			"region": "Casablanca-Settat",
			"city": "Casablanca",
			"postal": "20000"
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	loc := client.Locate(ctx, "196.200.1.1")
	assert.Equal(t, "MA", loc.CountryCode)
	assert.Equal(t, "MAD", loc.Currency)
	assert.Equal(t, "fr", loc.Language)
	assert.Equal(t, "Casablanca", loc.City)

	// Second lookup must come from the cache.
	client.Locate(ctx, "196.200.1.1")
	assert.Equal(t, int32(1), hits.Load())
}

func TestClient_Locate_PrivateIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("private addresses must not reach the API")
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	loc := client.Locate(context.Background(), "127.0.0.1")
	assert.Equal(t, "MA", loc.CountryCode)
}

func TestClient_Locate_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": true, "reason": "Reserved IP Address"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	loc := client.Locate(context.Background(), "198.51.100.9")
	assert.Equal(t, "MA", loc.CountryCode)
	assert.Equal(t, "MAD", loc.Currency)
}

func TestClient_Locate_CurrencyOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"country_code": "FR", "country_name": "France", "currency": "XXX", "timezone": "Europe/Paris"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	loc := client.Locate(context.Background(), "90.63.0.1")
	assert.Equal(t, "FR", loc.CountryCode)
	assert.Equal(t, "EUR", loc.Currency)
	assert.Equal(t, "fr", loc.Language)
}
