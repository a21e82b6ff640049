package incentive

import "testing"

func ladder() []Tier {
	return []Tier{
		{Name: "Citizen", PointsRequired: 0},
		{Name: "Bronze", PointsRequired: 100},
		{Name: "Silver", PointsRequired: 500},
	}
}

func TestResolveTier_Examples(t *testing.T) {
	cases := []struct {
		name    string
		points  int
		index   int
		percent int
		toNext  int
	}{
		{"entry tier midway", 50, 0, 50, 50},
		{"exact threshold", 100, 1, 0, 400},
		{"last threshold", 500, 2, 100, 0},
		{"beyond last tier", 750, 2, 100, 0},
		{"zero points", 0, 0, 0, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveTier(ladder(), tc.points)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.CurrentTierIndex != tc.index {
				t.Errorf("index = %d, want %d", got.CurrentTierIndex, tc.index)
			}
			if got.ProgressPercent != tc.percent {
				t.Errorf("percent = %d, want %d", got.ProgressPercent, tc.percent)
			}
			if got.PointsToNext != tc.toNext {
				t.Errorf("points to next = %d, want %d", got.PointsToNext, tc.toNext)
			}
		})
	}
}

func TestResolveTier_Rounding(t *testing.T) {
	tiers := []Tier{
		{Name: "A", PointsRequired: 0},
		{Name: "B", PointsRequired: 3},
	}
	// 1/3 of the way: 33.33 rounds to 33
	got, err := ResolveTier(tiers, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProgressPercent != 33 {
		t.Errorf("percent = %d, want 33", got.ProgressPercent)
	}
	// 2/3 of the way: 66.67 rounds to 67
	got, _ = ResolveTier(tiers, 2)
	if got.ProgressPercent != 67 {
		t.Errorf("percent = %d, want 67", got.ProgressPercent)
	}
}

func TestResolveTier_IndexMonotonic(t *testing.T) {
	tiers := DefaultTiers()
	prev := 0
	for p := 0; p <= 2500; p += 7 {
		got, err := ResolveTier(tiers, p)
		if err != nil {
			t.Fatalf("points=%d: %v", p, err)
		}
		if got.CurrentTierIndex < prev {
			t.Fatalf("index decreased at points=%d: %d -> %d", p, prev, got.CurrentTierIndex)
		}
		prev = got.CurrentTierIndex
	}
}

func TestResolveTier_ExactThresholdResetsProgress(t *testing.T) {
	tiers := DefaultTiers()
	for i, tier := range tiers[:len(tiers)-1] {
		got, err := ResolveTier(tiers, tier.PointsRequired)
		if err != nil {
			t.Fatalf("tier %d: %v", i, err)
		}
		if got.CurrentTierIndex != i {
			t.Errorf("tier %d: index = %d", i, got.CurrentTierIndex)
		}
		if got.ProgressPercent != 0 {
			t.Errorf("tier %d: percent = %d, want 0", i, got.ProgressPercent)
		}
	}
}

func TestResolveTier_InvalidInput(t *testing.T) {
	if _, err := ResolveTier(nil, 10); err != ErrNoTiers {
		t.Errorf("empty tiers: err = %v, want ErrNoTiers", err)
	}
	if _, err := ResolveTier(ladder(), -1); err != ErrNegativePoints {
		t.Errorf("negative points: err = %v, want ErrNegativePoints", err)
	}
}

func TestMarkAffordable(t *testing.T) {
	rewards := []Reward{
		{Name: "Sticker pack", PointsRequired: 50},
		{Name: "T-shirt", PointsRequired: 300},
	}
	got := MarkAffordable(rewards, 100)
	if !got[0].Affordable {
		t.Errorf("expected 50-point reward to be affordable at 100 points")
	}
	if got[1].Affordable {
		t.Errorf("expected 300-point reward to be unaffordable at 100 points")
	}
	// input slice untouched
	if rewards[0].Affordable {
		t.Errorf("input slice was mutated")
	}
}

func TestTierIconSlug(t *testing.T) {
	if got := (Tier{Name: "Gold Star"}).IconSlug(); got != "gold-star" {
		t.Errorf("slug = %q", got)
	}
	if got := (Tier{Name: "Gold", Icon: "custom"}).IconSlug(); got != "custom" {
		t.Errorf("explicit icon overridden: %q", got)
	}
}
