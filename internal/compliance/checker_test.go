package compliance

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"billboard_compliance/internal/domain"
)

func permittedBillboard() *domain.Billboard {
	permit := "BLB-2024-001"
	future := time.Now().AddDate(1, 0, 0)
	return &domain.Billboard{
		ID:            1,
		ZoneType:      domain.ZoneCommercial,
		BillboardType: domain.TypeUnipole,
		WidthMeters:   10,
		HeightMeters:  3.5,
		PermitNumber:  &permit,
		PermitExpiry:  &future,
	}
}

func TestCheck_Compliant(t *testing.T) {
	c := NewChecker(nil)
	res := c.Check(permittedBillboard(), Observation{
		DistanceFromIntersection: 50,
		HasStructuralCert:        true,
	})
	if !res.IsCompliant {
		t.Fatalf("expected compliant, got findings: %+v", res.Findings)
	}
}

func TestCheck_SizeFindings(t *testing.T) {
	b := permittedBillboard()
	b.WidthMeters = 15 // over the 12m commercial limit, area 15*3.5=52.5 over 48
	c := NewChecker(nil)

	res := c.Check(b, Observation{HasStructuralCert: true})
	if res.IsCompliant {
		t.Fatal("expected size findings")
	}

	var sizeFindings int
	for _, f := range res.Findings {
		if f.ViolationType == domain.ViolationSize {
			sizeFindings++
			if f.RuleID != "SIZE-COMM-001" {
				t.Errorf("unexpected rule id %s", f.RuleID)
			}
		}
	}
	// width and area both breached
	if sizeFindings != 2 {
		t.Errorf("size findings = %d, want 2", sizeFindings)
	}
}

func TestCheck_LocationFinding(t *testing.T) {
	c := NewChecker(nil)
	res := c.Check(permittedBillboard(), Observation{
		DistanceFromIntersection: 10,
		HasStructuralCert:        true,
	})
	if res.IsCompliant {
		t.Fatal("expected location finding")
	}
	got := res.Findings[0]
	if got.ViolationType != domain.ViolationLocation {
		t.Errorf("type = %s", got.ViolationType)
	}
	if got.Severity != domain.SeverityCritical {
		t.Errorf("severity = %s", got.Severity)
	}
}

func TestCheck_Administrative(t *testing.T) {
	b := permittedBillboard()
	b.PermitNumber = nil
	expired := time.Now().AddDate(-1, 0, 0)
	b.PermitExpiry = &expired

	c := NewChecker(nil)
	res := c.Check(b, Observation{HasStructuralCert: true})

	var types []domain.ViolationType
	for _, f := range res.Findings {
		types = append(types, f.ViolationType)
	}
	if !hasType(types, domain.ViolationUnauthorized) {
		t.Errorf("missing permit finding absent: %v", types)
	}
	if !hasType(types, domain.ViolationExpiredPermit) {
		t.Errorf("expired permit finding absent: %v", types)
	}
}

func TestCheck_StructuralCert(t *testing.T) {
	c := NewChecker(nil)
	res := c.Check(permittedBillboard(), Observation{})
	if res.IsCompliant {
		t.Fatal("expected structural finding without certificate")
	}
	if res.Findings[0].ViolationType != domain.ViolationStructural {
		t.Errorf("type = %s", res.Findings[0].ViolationType)
	}
}

func TestCheck_ProhibitedContent(t *testing.T) {
	c := NewChecker(nil)
	res := c.Check(permittedBillboard(), Observation{
		HasStructuralCert: true,
		DetectedContent:   []string{"hate_speech", "puppies"},
	})
	var found bool
	for _, f := range res.Findings {
		if f.ViolationType == domain.ViolationContent {
			found = true
		}
	}
	if !found {
		t.Fatal("expected content finding for hate_speech")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := `
jurisdiction: Test City
effective_date: "2026-01-01"
size_rules:
  - rule_id: SIZE-001
    description: test size rule
    severity: high
    zones: [commercial]
    billboard_types: [unipole]
    max_width_meters: 5
    max_height_meters: 2
    max_area_sqm: 10
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Jurisdiction != "Test City" {
		t.Errorf("jurisdiction = %q", cfg.Jurisdiction)
	}
	if len(cfg.SizeRules) != 1 || cfg.SizeRules[0].MaxWidthMeters != 5 {
		t.Errorf("size rules not parsed: %+v", cfg.SizeRules)
	}

	b := permittedBillboard()
	b.WidthMeters, b.HeightMeters = 6, 1
	res := NewChecker(cfg).Check(b, Observation{HasStructuralCert: true})
	if res.IsCompliant {
		t.Error("expected width finding from loaded rules")
	}
}

func TestLoadConfig_MissingJurisdiction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("effective_date: x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for missing jurisdiction")
	}
}

func hasType(types []domain.ViolationType, want domain.ViolationType) bool {
	for _, tp := range types {
		if tp == want {
			return true
		}
	}
	return false
}
