package compliance

import (
	"fmt"
	"os"

	"billboard_compliance/internal/domain"

	"gopkg.in/yaml.v3"
)

// Rule is the common part of every compliance rule
type Rule struct {
	RuleID         string                 `yaml:"rule_id"`
	Description    string                 `yaml:"description"`
	Severity       domain.Severity        `yaml:"severity"`
	Zones          []domain.ZoneType      `yaml:"zones"`
	BillboardTypes []domain.BillboardType `yaml:"billboard_types"`
}

// AppliesTo reports whether the rule covers the given zone and structure
func (r *Rule) AppliesTo(zone domain.ZoneType, bt domain.BillboardType) bool {
	return contains(r.Zones, zone) && contains(r.BillboardTypes, bt)
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// SizeRule restricts billboard dimensions
type SizeRule struct {
	Rule               `yaml:",inline"`
	MaxWidthMeters     float64 `yaml:"max_width_meters"`
	MaxHeightMeters    float64 `yaml:"max_height_meters"`
	MaxAreaSqm         float64 `yaml:"max_area_sqm"`
	MinGroundClearance float64 `yaml:"min_ground_clearance"`
}

// LocationRule restricts billboard placement
type LocationRule struct {
	Rule                    `yaml:",inline"`
	MinDistIntersection     float64            `yaml:"min_distance_from_intersection"`
	MinDistPedestrianPath   float64            `yaml:"min_distance_from_pedestrian_path"`
	MinDistRoad             float64            `yaml:"min_distance_from_road"`
	ProhibitedNearbyPlaces  map[string]float64 `yaml:"prohibited_nearby_places"`
}

// ContentRule restricts what a billboard may display
type ContentRule struct {
	Rule              `yaml:",inline"`
	ProhibitedContent []string `yaml:"prohibited_content"`
	RequiredElements  []string `yaml:"required_elements"`
}

// SafetyRule covers structural and public safety
type SafetyRule struct {
	Rule                   `yaml:",inline"`
	RequiresStructuralCert bool    `yaml:"requires_structural_certificate"`
	MaxWindSpeedRating     float64 `yaml:"max_wind_speed_rating"`
}

// AdminRule covers permits and documentation
type AdminRule struct {
	Rule               `yaml:",inline"`
	RequiresPermit     bool `yaml:"requires_permit"`
	PermitRenewalYears int  `yaml:"permit_renewal_years"`
	RequiresInsurance  bool `yaml:"required_insurance"`
}

// Config is the full rule set for a jurisdiction
type Config struct {
	Jurisdiction   string         `yaml:"jurisdiction"`
	EffectiveDate  string         `yaml:"effective_date"`
	SizeRules      []SizeRule     `yaml:"size_rules"`
	LocationRules  []LocationRule `yaml:"location_rules"`
	ContentRules   []ContentRule  `yaml:"content_rules"`
	SafetyRules    []SafetyRule   `yaml:"safety_rules"`
	AdminRules     []AdminRule    `yaml:"administrative_rules"`
}

// LoadConfig reads a rule set from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if cfg.Jurisdiction == "" {
		return nil, fmt.Errorf("rules file %s: jurisdiction is required", path)
	}
	return &cfg, nil
}

var allZones = []domain.ZoneType{
	domain.ZoneProhibited, domain.ZoneRestricted, domain.ZonePermitted,
	domain.ZoneHeritage, domain.ZoneResidential, domain.ZoneCommercial,
	domain.ZoneIndustrial,
}

var allTypes = []domain.BillboardType{
	domain.TypeUnipole, domain.TypeGantry, domain.TypeWallMounted,
	domain.TypeRooftop, domain.TypeKiosk, domain.TypeBusShelter,
	domain.TypeDigital, domain.TypeTraditional,
}

func zonesExcept(excluded domain.ZoneType) []domain.ZoneType {
	var out []domain.ZoneType
	for _, z := range allZones {
		if z != excluded {
			out = append(out, z)
		}
	}
	return out
}

// DefaultConfig is used when no rules file is configured
func DefaultConfig() *Config {
	return &Config{
		Jurisdiction:  "Example City Municipal Corporation",
		EffectiveDate: "2023-01-01",
		SizeRules: []SizeRule{
			{
				Rule: Rule{
					RuleID:         "SIZE-COMM-001",
					Description:    "Maximum size for commercial zone billboards",
					Severity:       domain.SeverityHigh,
					Zones:          []domain.ZoneType{domain.ZoneCommercial},
					BillboardTypes: []domain.BillboardType{domain.TypeUnipole, domain.TypeGantry},
				},
				MaxWidthMeters:     12.0,
				MaxHeightMeters:    4.0,
				MaxAreaSqm:         48.0,
				MinGroundClearance: 2.5,
			},
		},
		LocationRules: []LocationRule{
			{
				Rule: Rule{
					RuleID:         "LOC-001",
					Description:    "Minimum distance from intersections",
					Severity:       domain.SeverityCritical,
					Zones:          []domain.ZoneType{domain.ZonePermitted, domain.ZoneCommercial},
					BillboardTypes: []domain.BillboardType{domain.TypeUnipole, domain.TypeGantry},
				},
				MinDistIntersection:   30.0,
				MinDistPedestrianPath: 1.0,
				MinDistRoad:           1.0,
				ProhibitedNearbyPlaces: map[string]float64{
					"schools":          100.0,
					"hospitals":        100.0,
					"religious_places": 50.0,
					"heritage_sites":   100.0,
				},
			},
		},
		ContentRules: []ContentRule{
			{
				Rule: Rule{
					RuleID:         "CONT-001",
					Description:    "Prohibited content",
					Severity:       domain.SeverityHigh,
					Zones:          allZones,
					BillboardTypes: allTypes,
				},
				ProhibitedContent: []string{
					"obscene", "defamatory", "inciting_violence",
					"hate_speech", "unauthorized_political",
				},
				RequiredElements: []string{"permit_number", "owner_contact", "validity_date"},
			},
		},
		SafetyRules: []SafetyRule{
			{
				Rule: Rule{
					RuleID:         "SAFE-001",
					Description:    "Structural safety requirements",
					Severity:       domain.SeverityCritical,
					Zones:          zonesExcept(domain.ZoneProhibited),
					BillboardTypes: allTypes,
				},
				RequiresStructuralCert: true,
				MaxWindSpeedRating:     120.0,
			},
		},
		AdminRules: []AdminRule{
			{
				Rule: Rule{
					RuleID:         "ADMIN-001",
					Description:    "Permit requirements",
					Severity:       domain.SeverityHigh,
					Zones:          zonesExcept(domain.ZoneProhibited),
					BillboardTypes: allTypes,
				},
				RequiresPermit:     true,
				PermitRenewalYears: 1,
				RequiresInsurance:  true,
			},
		},
	}
}
