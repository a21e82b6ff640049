package repository

import (
	"context"
	"errors"

	"billboard_compliance/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BillboardRepository struct {
	db *pgxpool.Pool
}

func NewBillboardRepository(db *pgxpool.Pool) *BillboardRepository {
	return &BillboardRepository{db: db}
}

const billboardColumns = `id, latitude, longitude, COALESCE(address, ''), width_meters, height_meters,
	zone_type, billboard_type, is_permitted, permit_number, permit_expiry,
	COALESCE(owner_name, ''), COALESCE(owner_contact, ''), created_at, updated_at`

func scanBillboard(row pgx.Row) (*domain.Billboard, error) {
	var b domain.Billboard
	err := row.Scan(&b.ID, &b.Latitude, &b.Longitude, &b.Address, &b.WidthMeters, &b.HeightMeters,
		&b.ZoneType, &b.BillboardType, &b.IsPermitted, &b.PermitNumber, &b.PermitExpiry,
		&b.OwnerName, &b.OwnerContact, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *BillboardRepository) Create(ctx context.Context, b *domain.Billboard) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO billboards (latitude, longitude, address, width_meters, height_meters,
			zone_type, billboard_type, is_permitted, permit_number, permit_expiry,
			owner_name, owner_contact)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at`,
		b.Latitude, b.Longitude, b.Address, b.WidthMeters, b.HeightMeters,
		b.ZoneType, b.BillboardType, b.IsPermitted, b.PermitNumber, b.PermitExpiry,
		b.OwnerName, b.OwnerContact,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *BillboardRepository) GetByID(ctx context.Context, id int64) (*domain.Billboard, error) {
	return scanBillboard(r.db.QueryRow(ctx,
		`SELECT `+billboardColumns+` FROM billboards WHERE id = $1`, id))
}

func (r *BillboardRepository) List(ctx context.Context, limit, offset int) ([]*domain.Billboard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+billboardColumns+` FROM billboards ORDER BY id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*domain.Billboard
	for rows.Next() {
		b, err := scanBillboard(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}
