package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"billboard_compliance/internal/service"

	"github.com/gin-gonic/gin"
)

func TestPublicTiers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{Incentives: service.NewIncentiveService(nil)}
	r := gin.New()
	r.GET("/api/v1/public/rewards/tiers", h.PublicTiers)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/rewards/tiers", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Tiers []struct {
			Name           string `json:"name"`
			PointsRequired int    `json:"points_required"`
			IconSlug       string `json:"icon_slug"`
		} `json:"tiers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(body.Tiers) != 4 {
		t.Fatalf("tiers = %d, want 4", len(body.Tiers))
	}

	want := []struct {
		name   string
		points int
	}{
		{"Citizen", 0},
		{"Enforcer", 100},
		{"Champion", 500},
		{"Legend", 2000},
	}
	for i, w := range want {
		got := body.Tiers[i]
		if got.Name != w.name || got.PointsRequired != w.points {
			t.Errorf("tier[%d] = %s/%d, want %s/%d", i, got.Name, got.PointsRequired, w.name, w.points)
		}
		if got.IconSlug == "" {
			t.Errorf("tier[%d] missing icon slug", i)
		}
	}

	// thresholds must come back ascending for the client progress bar
	for i := 1; i < len(body.Tiers); i++ {
		if body.Tiers[i].PointsRequired <= body.Tiers[i-1].PointsRequired {
			t.Errorf("tier thresholds not ascending at index %d", i)
		}
	}
}

func TestPagingDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 100, 0},
		{"?limit=25&offset=50", 25, 50},
		{"?limit=0", 100, 0},
		{"?limit=9999", 100, 0},
		{"?offset=-3", 100, 0},
		{"?limit=abc&offset=xyz", 100, 0},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/x"+tc.query, nil)

		limit, offset := paging(c, 100)
		if limit != tc.wantLimit || offset != tc.wantOffset {
			t.Errorf("paging(%q) = %d/%d, want %d/%d", tc.query, limit, offset, tc.wantLimit, tc.wantOffset)
		}
	}
}
