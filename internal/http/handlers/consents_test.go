package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"billboard_compliance/internal/service"

	"github.com/gin-gonic/gin"
)

func TestConsentRequirements(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{Consents: service.NewConsentService(nil)}
	r := gin.New()
	r.GET("/api/v1/consents/requirements", h.ConsentRequirements)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/consents/requirements?feature=photo_upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Feature      string `json:"feature"`
		Requirements []struct {
			Type     string `json:"type"`
			Required bool   `json:"required"`
		} `json:"requirements"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Feature != "photo_upload" {
		t.Errorf("feature = %q", body.Feature)
	}
	if len(body.Requirements) != 3 {
		t.Fatalf("requirements = %d, want 3", len(body.Requirements))
	}

	var required int
	for _, r := range body.Requirements {
		if r.Required {
			required++
		}
	}
	if required != 2 {
		t.Errorf("required consents = %d, want 2", required)
	}
}

func TestConsentRequirements_MissingFeature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := &Handler{Consents: service.NewConsentService(nil)}
	r := gin.New()
	r.GET("/api/v1/consents/requirements", h.ConsentRequirements)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/consents/requirements", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
