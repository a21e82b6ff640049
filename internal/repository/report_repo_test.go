package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"billboard_compliance/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Integration test, requires a migrated database. Skipped unless
// DATABASE_URL is set.
func TestDeleteOlderThanCountsReports(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	users := NewUserRepository(pool)
	billboards := NewBillboardRepository(pool)
	reports := NewReportRepository(pool)

	user := &domain.User{
		Email:        fmt.Sprintf("retention-%s@test.local", uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         domain.RoleCitizen,
	}
	if err := users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, user.ID)

	b := &domain.Billboard{
		Latitude: 1, Longitude: 1,
		WidthMeters: 1, HeightMeters: 1,
		ZoneType:      domain.ZoneCommercial,
		BillboardType: domain.TypeUnipole,
	}
	if err := billboards.Create(ctx, b); err != nil {
		t.Fatalf("create billboard: %v", err)
	}
	defer pool.Exec(ctx, `DELETE FROM billboards WHERE id = $1`, b.ID)

	// clear anything already past the cutoff so the counts below are exact
	if _, _, err := reports.DeleteOlderThan(ctx, time.Now().AddDate(-1, 0, 0)); err != nil {
		t.Fatalf("pre-clean: %v", err)
	}

	image := "https://cdn.test.local/reports/images/a.jpg"
	video := "https://cdn.test.local/reports/videos/a.mp4"

	// one report with two media URLs, one with one, one with none
	fixtures := []*domain.Report{
		{BillboardID: b.ID, ReporterID: user.ID, Status: domain.ReportPending, Latitude: 1, Longitude: 1, ImageURL: &image, VideoURL: &video},
		{BillboardID: b.ID, ReporterID: user.ID, Status: domain.ReportPending, Latitude: 1, Longitude: 1, ImageURL: &image},
		{BillboardID: b.ID, ReporterID: user.ID, Status: domain.ReportPending, Latitude: 1, Longitude: 1},
	}
	for _, rep := range fixtures {
		if err := reports.Create(ctx, rep); err != nil {
			t.Fatalf("create report: %v", err)
		}
		if _, err := pool.Exec(ctx,
			`UPDATE reports SET created_at = now() - interval '2 years' WHERE id = $1`, rep.ID); err != nil {
			t.Fatalf("backdate report: %v", err)
		}
	}

	deleted, urls, err := reports.DeleteOlderThan(ctx, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	// the deleted count is per report, independent of how many media URLs
	// each one carried
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}
	if len(urls) != 3 {
		t.Errorf("media urls = %d, want 3", len(urls))
	}
}
