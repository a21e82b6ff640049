package compliance

import (
	"time"

	"billboard_compliance/internal/domain"
)

// Observation carries report-side evidence used by location and content checks.
// Zero values mean the measurement is unavailable and the check is skipped.
type Observation struct {
	DistanceFromIntersection float64  `json:"distance_from_intersection,omitempty"`
	DistanceFromRoad         float64  `json:"distance_from_road,omitempty"`
	DetectedContent          []string `json:"detected_content,omitempty"`
	HasStructuralCert        bool     `json:"has_structural_certificate"`
}

// Finding is a single rule breach
type Finding struct {
	RuleID        string               `json:"rule_id"`
	ViolationType domain.ViolationType `json:"type"`
	Severity      domain.Severity      `json:"severity"`
	Message       string               `json:"message"`
	RuleText      string               `json:"rule_description"`
}

// Result of a compliance check
type Result struct {
	BillboardID int64     `json:"billboard_id"`
	IsCompliant bool      `json:"is_compliant"`
	Findings    []Finding `json:"violations"`
	CheckedAt   time.Time `json:"checked_at"`
}

// Checker evaluates billboards against a jurisdiction's rule set
type Checker struct {
	cfg *Config
}

func NewChecker(cfg *Config) *Checker {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Checker{cfg: cfg}
}

// Check runs every applicable rule against the billboard and observation
func (c *Checker) Check(b *domain.Billboard, obs Observation) Result {
	var findings []Finding
	findings = append(findings, c.checkSize(b)...)
	findings = append(findings, c.checkLocation(b, obs)...)
	findings = append(findings, c.checkContent(b, obs)...)
	findings = append(findings, c.checkSafety(b, obs)...)
	findings = append(findings, c.checkAdministrative(b)...)

	return Result{
		BillboardID: b.ID,
		IsCompliant: len(findings) == 0,
		Findings:    findings,
		CheckedAt:   time.Now().UTC(),
	}
}

func (c *Checker) checkSize(b *domain.Billboard) []Finding {
	var out []Finding
	for i := range c.cfg.SizeRules {
		r := &c.cfg.SizeRules[i]
		if !r.AppliesTo(b.ZoneType, b.BillboardType) {
			continue
		}
		if b.WidthMeters > r.MaxWidthMeters {
			out = append(out, finding(&r.Rule, domain.ViolationSize, "width exceeds maximum allowed"))
		}
		if b.HeightMeters > r.MaxHeightMeters {
			out = append(out, finding(&r.Rule, domain.ViolationSize, "height exceeds maximum allowed"))
		}
		if b.AreaSqm() > r.MaxAreaSqm {
			out = append(out, finding(&r.Rule, domain.ViolationSize, "area exceeds maximum allowed"))
		}
	}
	return out
}

func (c *Checker) checkLocation(b *domain.Billboard, obs Observation) []Finding {
	var out []Finding
	for i := range c.cfg.LocationRules {
		r := &c.cfg.LocationRules[i]
		if !r.AppliesTo(b.ZoneType, b.BillboardType) {
			continue
		}
		if obs.DistanceFromIntersection > 0 && obs.DistanceFromIntersection < r.MinDistIntersection {
			out = append(out, finding(&r.Rule, domain.ViolationLocation, "too close to intersection"))
		}
		if obs.DistanceFromRoad > 0 && obs.DistanceFromRoad < r.MinDistRoad {
			out = append(out, finding(&r.Rule, domain.ViolationLocation, "too close to road"))
		}
	}
	return out
}

func (c *Checker) checkContent(b *domain.Billboard, obs Observation) []Finding {
	if len(obs.DetectedContent) == 0 {
		return nil
	}
	detected := make(map[string]bool, len(obs.DetectedContent))
	for _, d := range obs.DetectedContent {
		detected[d] = true
	}

	var out []Finding
	for i := range c.cfg.ContentRules {
		r := &c.cfg.ContentRules[i]
		if !r.AppliesTo(b.ZoneType, b.BillboardType) {
			continue
		}
		for _, prohibited := range r.ProhibitedContent {
			if detected[prohibited] {
				out = append(out, finding(&r.Rule, domain.ViolationContent, "prohibited content: "+prohibited))
			}
		}
	}
	return out
}

func (c *Checker) checkSafety(b *domain.Billboard, obs Observation) []Finding {
	var out []Finding
	for i := range c.cfg.SafetyRules {
		r := &c.cfg.SafetyRules[i]
		if !r.AppliesTo(b.ZoneType, b.BillboardType) {
			continue
		}
		if r.RequiresStructuralCert && !obs.HasStructuralCert {
			out = append(out, finding(&r.Rule, domain.ViolationStructural, "missing structural certificate"))
		}
	}
	return out
}

func (c *Checker) checkAdministrative(b *domain.Billboard) []Finding {
	var out []Finding
	now := time.Now()
	for i := range c.cfg.AdminRules {
		r := &c.cfg.AdminRules[i]
		if !r.AppliesTo(b.ZoneType, b.BillboardType) {
			continue
		}
		if r.RequiresPermit && (b.PermitNumber == nil || *b.PermitNumber == "") {
			out = append(out, finding(&r.Rule, domain.ViolationUnauthorized, "missing permit"))
		}
		if b.PermitExpiry != nil && b.PermitExpiry.Before(now) {
			out = append(out, finding(&r.Rule, domain.ViolationExpiredPermit, "permit expired"))
		}
	}
	return out
}

func finding(r *Rule, vt domain.ViolationType, msg string) Finding {
	return Finding{
		RuleID:        r.RuleID,
		ViolationType: vt,
		Severity:      r.Severity,
		Message:       msg,
		RuleText:      r.Description,
	}
}
