package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCronRouter(secret string, skip bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cron/job", CronAuth(secret, skip), func(c *gin.Context) {
		c.String(http.StatusOK, "ran")
	})
	return r
}

func TestCronAuth(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		skip   bool
		header string
		want   int
	}{
		{"valid token", "s3cret", false, "Bearer s3cret", http.StatusOK},
		{"wrong token", "s3cret", false, "Bearer nope", http.StatusUnauthorized},
		{"missing header", "s3cret", false, "", http.StatusUnauthorized},
		{"not bearer", "s3cret", false, "Basic s3cret", http.StatusUnauthorized},
		{"empty bearer", "s3cret", false, "Bearer ", http.StatusUnauthorized},
		{"lowercase scheme", "s3cret", false, "bearer s3cret", http.StatusOK},
		{"empty secret rejects all", "", false, "Bearer anything", http.StatusUnauthorized},
		{"dev bypass", "s3cret", true, "", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newCronRouter(tc.secret, tc.skip)
			req := httptest.NewRequest(http.MethodGet, "/cron/job", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status = %d; want %d", w.Code, tc.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"Bearer", ""},
		{"Basic abc", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.in); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q; want %q", tc.in, got, tc.want)
		}
	}
}
