package models

import (
	"math"

	"github.com/tourbook/catalog/internal/types"
	"gorm.io/datatypes"
)

// MaxAsientos is the largest seat count a GraphQL Int can carry.
const MaxAsientos = math.MaxInt32

// Departure is a dated, priced run of a Tour ("Salida").
type Departure struct {
	BaseModel

	FechaInicio datatypes.Date `gorm:"not null" validate:"-"`
	FechaFin    datatypes.Date `gorm:"not null" validate:"-"`
	Asientos    int            `gorm:"not null" validate:"gte=0,lte=2147483647"`
	Precio      float64        `gorm:"type:decimal(10,2);not null" validate:"gte=0"`
	TourID      uint           `gorm:"not null;index" validate:"required"`

	// Relationships
	Tour *Tour `gorm:"foreignKey:TourID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
}

func (Departure) TableName() string {
	return "salidas"
}

type DeparturePatch struct {
	FechaInicio types.Optional[datatypes.Date]
	FechaFin    types.Optional[datatypes.Date]
	Asientos    types.Optional[int]
	Precio      types.Optional[float64]
	TourID      types.Optional[uint]
}

func (p DeparturePatch) Apply(d *Departure) {
	p.FechaInicio.Assign(&d.FechaInicio)
	p.FechaFin.Assign(&d.FechaFin)
	p.Asientos.Assign(&d.Asientos)
	p.Precio.Assign(&d.Precio)
	p.TourID.Assign(&d.TourID)
}
