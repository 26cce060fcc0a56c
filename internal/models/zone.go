package models

import "github.com/tourbook/catalog/internal/types"

// Zone is a geographic location a tour departs from or arrives at. The
// inverse relations are served by TourRepository.ListDepartingFrom and
// ListArrivingAt rather than has-many fields.
type Zone struct {
	BaseModel

	Name        string   `gorm:"size:100;not null" validate:"required,max=100"`
	Description *string  `gorm:"type:text"`
	Latitud     *float64 `gorm:"type:decimal(9,6)" validate:"omitempty,gte=-90,lte=90"`
	Longitud    *float64 `gorm:"type:decimal(9,6)" validate:"omitempty,gte=-180,lte=180"`
}

type ZonePatch struct {
	Name        types.Optional[string]
	Description types.Optional[string]
	Latitud     types.Optional[float64]
	Longitud    types.Optional[float64]
}

func (p ZonePatch) Apply(z *Zone) {
	p.Name.Assign(&z.Name)
	p.Description.AssignPtr(&z.Description)
	p.Latitud.AssignPtr(&z.Latitud)
	p.Longitud.AssignPtr(&z.Longitud)
}
