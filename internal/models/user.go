package models

import (
	"github.com/tourbook/catalog/internal/types"
	"gorm.io/datatypes"
)

type Genre string

const (
	GenreHombre Genre = "H"
	GenreMujer  Genre = "M"
)

func (g Genre) Valid() bool {
	return g == GenreHombre || g == GenreMujer
}

type User struct {
	BaseModel

	Name     string          `gorm:"size:40;not null" validate:"required,max=40"`
	LastName *string         `gorm:"size:80" validate:"omitempty,max=80"`
	Email    string          `gorm:"size:254;not null" validate:"required,email,max=254"`
	Birthday *datatypes.Date `validate:"-"`
	Genre    Genre           `gorm:"size:1;not null" validate:"required,oneof=H M"`
	Key      *string         `gorm:"size:40" validate:"omitempty,max=40"`
	Type     *string         `gorm:"size:45" validate:"omitempty,max=45"`
}

func (User) TableName() string {
	return "users"
}

type UserPatch struct {
	Name     types.Optional[string]
	LastName types.Optional[string]
	Email    types.Optional[string]
	Birthday types.Optional[datatypes.Date]
	Genre    types.Optional[Genre]
	Key      types.Optional[string]
	Type     types.Optional[string]
}

func (p UserPatch) Apply(u *User) {
	p.Name.Assign(&u.Name)
	p.LastName.AssignPtr(&u.LastName)
	p.Email.Assign(&u.Email)
	p.Birthday.AssignPtr(&u.Birthday)
	p.Genre.Assign(&u.Genre)
	p.Key.AssignPtr(&u.Key)
	p.Type.AssignPtr(&u.Type)
}
