package domain

import "time"

// ZoneType - zoning classification a billboard stands in
type ZoneType string

const (
	ZoneProhibited  ZoneType = "prohibited"
	ZoneRestricted  ZoneType = "restricted"
	ZonePermitted   ZoneType = "permitted"
	ZoneHeritage    ZoneType = "heritage"
	ZoneResidential ZoneType = "residential"
	ZoneCommercial  ZoneType = "commercial"
	ZoneIndustrial  ZoneType = "industrial"
)

// BillboardType - physical structure category
type BillboardType string

const (
	TypeUnipole     BillboardType = "unipole"
	TypeGantry      BillboardType = "gantry"
	TypeWallMounted BillboardType = "wall_mounted"
	TypeRooftop     BillboardType = "rooftop"
	TypeKiosk       BillboardType = "kiosk"
	TypeBusShelter  BillboardType = "bus_shelter"
	TypeDigital     BillboardType = "digital"
	TypeTraditional BillboardType = "traditional"
)

type Billboard struct {
	ID            int64         `db:"id" json:"id"`
	Latitude      float64       `db:"latitude" json:"latitude"`
	Longitude     float64       `db:"longitude" json:"longitude"`
	Address       string        `db:"address" json:"address"`
	WidthMeters   float64       `db:"width_meters" json:"width_meters"`
	HeightMeters  float64       `db:"height_meters" json:"height_meters"`
	ZoneType      ZoneType      `db:"zone_type" json:"zone_type"`
	BillboardType BillboardType `db:"billboard_type" json:"billboard_type"`
	IsPermitted   bool          `db:"is_permitted" json:"is_permitted"`
	PermitNumber  *string       `db:"permit_number" json:"permit_number,omitempty"`
	PermitExpiry  *time.Time    `db:"permit_expiry" json:"permit_expiry,omitempty"`
	OwnerName     string        `db:"owner_name" json:"owner_name,omitempty"`
	OwnerContact  string        `db:"owner_contact" json:"owner_contact,omitempty"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}

// AreaSqm returns the face area of the billboard
func (b *Billboard) AreaSqm() float64 {
	return b.WidthMeters * b.HeightMeters
}
