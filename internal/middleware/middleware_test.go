package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/config"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/utils"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRoles(t *testing.T) {
	e := echo.New()
	g := e.Group("/admin", JWTAuth("secret"), RequireStaff())
	g.GET("/who", func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.String(http.StatusOK, id.Email+"|"+c.Get("user_id").(string))
	})

	token := func(role model.Role) string {
		tok, err := utils.NewAccessToken("secret", model.Identity{UserID: 5, Email: "x@example.com", Role: role}, 5)
		if err != nil {
			t.Fatalf("NewAccessToken: %v", err)
		}
		return tok.Token
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"tourist", "Bearer " + token(model.RoleTourist), http.StatusForbidden},
		{"manager", "Bearer " + token(model.RoleManager), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/who", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := serve(e, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusOK && rec.Body.String() != "x@example.com|5" {
				t.Fatalf("body = %q", rec.Body.String())
			}
		})
	}
}

func TestPassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	e.Use(NewRedisCache(config.CacheConfig{Enabled: true}, nil))
	e.Use(NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil))
	e.Use(NewCachePurger(config.CacheConfig{Enabled: true}, nil).PurgeOnWrite())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" || rec.Header().Get("X-Cache") != "" {
		t.Fatalf("unexpected response %d %q %v", rec.Code, rec.Body.String(), rec.Header())
	}
}

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("encodePayload: %v", err)
	}
	status, gotHdr, body, ok := decodePayload(bs)
	if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "application/json" || string(body) != `{"ok":true}` {
		t.Fatalf("decodePayload = %d %v %q %v", status, gotHdr, body, ok)
	}
	if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0}); ok {
		t.Fatalf("truncated payload accepted")
	}
}

func TestCacheKeyUsesConcretePath(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "tr:cache"}
	key := func(target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		c.SetPath("/v1/restaurants/:id")
		return cacheKeyFrom(cfg, c)
	}
	if key("/v1/restaurants/a") == key("/v1/restaurants/b") {
		t.Fatalf("different restaurants share a cache key")
	}
	if key("/v1/restaurants?q=x") == key("/v1/restaurants?q=y") {
		t.Fatalf("different queries share a cache key")
	}
}

func TestParseBucketResult(t *testing.T) {
	d, err := parseBucketResult([]any{int64(0), int64(0), int64(1500)})
	if err != nil {
		t.Fatalf("parseBucketResult: %v", err)
	}
	if d.Allowed || d.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("decision = %+v", d)
	}
	if _, err := parseBucketResult("nope"); err == nil {
		t.Fatalf("expected error for malformed result")
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	req.Header.Set("X-Real-IP", "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/bookings")
	c.Set("user_id", "42")

	got := buildRateKey(config.RateLimitConfig{Prefix: "tr:rl"}, c)
	if want := "tr:rl:ip:10.0.0.1:user:42:route:POST /v1/bookings"; got != want {
		t.Fatalf("key = %q, want %q", got, want)
	}
	got = buildRateKey(config.RateLimitConfig{Prefix: "tr:rl", KeyStrategy: "ip"}, c)
	if got != "tr:rl:ip:10.0.0.1" {
		t.Fatalf("ip key = %q", got)
	}
}
