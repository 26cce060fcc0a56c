package models

import "github.com/tourbook/catalog/internal/types"

type Tour struct {
	BaseModel

	Name          string  `gorm:"size:100;not null" validate:"required,max=100"`
	Slug          *string `gorm:"size:100;index" validate:"omitempty,max=100"`
	Operator      *string `gorm:"size:100" validate:"omitempty,max=100"`
	Type          *string `gorm:"size:50" validate:"omitempty,max=50"`
	Description   string  `gorm:"type:text;not null" validate:"required"`
	Img           *string `gorm:"size:255" validate:"omitempty,max=255"`
	Pais          *string `gorm:"size:60" validate:"omitempty,max=60"`
	ZonaSalidaID  uint    `gorm:"not null;index" validate:"required"`
	ZonaLlegadaID uint    `gorm:"not null;index" validate:"required,nefield=ZonaSalidaID"`

	// Relationships
	ZonaSalida  *Zone `gorm:"foreignKey:ZonaSalidaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
	ZonaLlegada *Zone `gorm:"foreignKey:ZonaLlegadaID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" validate:"-"`
}

type TourPatch struct {
	Name          types.Optional[string]
	Slug          types.Optional[string]
	Operator      types.Optional[string]
	Type          types.Optional[string]
	Description   types.Optional[string]
	Img           types.Optional[string]
	Pais          types.Optional[string]
	ZonaSalidaID  types.Optional[uint]
	ZonaLlegadaID types.Optional[uint]
}

func (p TourPatch) Apply(t *Tour) {
	p.Name.Assign(&t.Name)
	p.Slug.AssignPtr(&t.Slug)
	p.Operator.AssignPtr(&t.Operator)
	p.Type.AssignPtr(&t.Type)
	p.Description.Assign(&t.Description)
	p.Img.AssignPtr(&t.Img)
	p.Pais.AssignPtr(&t.Pais)
	p.ZonaSalidaID.Assign(&t.ZonaSalidaID)
	p.ZonaLlegadaID.Assign(&t.ZonaLlegadaID)
}

// ZoneIDs lists the zone references the patch would write.
func (p TourPatch) ZoneIDs() []uint {
	var ids []uint

	if id, ok := p.ZonaSalidaID.Get(); ok {
		ids = append(ids, id)
	}

	if id, ok := p.ZonaLlegadaID.Get(); ok {
		ids = append(ids, id)
	}

	return ids
}
