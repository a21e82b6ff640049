package service

import (
	"testing"

	"billboard_compliance/internal/domain"
)

func TestRequiredConsents(t *testing.T) {
	reqs := RequiredConsents(FeaturePhotoUpload)
	if len(reqs) != 3 {
		t.Fatalf("photo_upload requirements = %d, want 3", len(reqs))
	}

	byType := make(map[string]ConsentRequirement, len(reqs))
	for _, r := range reqs {
		byType[r.Type] = r
	}

	if !byType[domain.ConsentPrivacyPolicy].Required {
		t.Error("privacy_policy should be required")
	}
	if !byType[domain.ConsentCameraAccess].Required {
		t.Error("camera_access should be required")
	}
	if byType[domain.ConsentLocationTracking].Required {
		t.Error("location_tracking should be optional")
	}
	if byType[domain.ConsentLocationTracking].DefaultExpiryDays != 90 {
		t.Errorf("location expiry = %d, want 90", byType[domain.ConsentLocationTracking].DefaultExpiryDays)
	}

	if got := RequiredConsents("no_such_feature"); len(got) != 0 {
		t.Errorf("unknown feature returned %d requirements", len(got))
	}
}

func TestEvaluateAccess(t *testing.T) {
	reqs := RequiredConsents(FeaturePhotoUpload)

	// all required consents granted, optional one missing
	res := evaluateAccess(reqs, map[string]bool{
		domain.ConsentPrivacyPolicy: true,
		domain.ConsentCameraAccess:  true,
	})
	if !res.HasAccess {
		t.Errorf("access denied with all required consents: missing %v", res.MissingConsents)
	}
	if len(res.MissingConsents) != 0 {
		t.Errorf("missing = %v, want none", res.MissingConsents)
	}
	if len(res.RequiredConsents) != 3 {
		t.Errorf("checks = %d, want 3", len(res.RequiredConsents))
	}

	// a required consent missing blocks access and is named
	res = evaluateAccess(reqs, map[string]bool{
		domain.ConsentPrivacyPolicy: true,
	})
	if res.HasAccess {
		t.Error("access granted without camera_access")
	}
	if len(res.MissingConsents) != 1 || res.MissingConsents[0] != domain.ConsentCameraAccess {
		t.Errorf("missing = %v, want [camera_access]", res.MissingConsents)
	}

	// no requirements means open access
	res = evaluateAccess(nil, nil)
	if !res.HasAccess || len(res.MissingConsents) != 0 {
		t.Errorf("empty requirements should grant access: %+v", res)
	}
}

func TestDefaultExpiryFor(t *testing.T) {
	if got := defaultExpiryFor(domain.ConsentLocationTracking); got != 90 {
		t.Errorf("location expiry = %d, want 90", got)
	}
	if got := defaultExpiryFor("unknown_type"); got != defaultConsentExpiryDays {
		t.Errorf("unknown type expiry = %d, want %d", got, defaultConsentExpiryDays)
	}
}
