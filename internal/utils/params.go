package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourbook/catalog/internal/types"
	"gorm.io/datatypes"
)

func GetID(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := ParseID(idStr)

	if err != nil {
		return 0, errors.New("Invalid ID")
	}

	return id, nil
}

// ParseID accepts positive decimal identifiers only.
func ParseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 32)

	if err != nil {
		return 0, err
	}

	if id == 0 {
		return 0, errors.New("id must be positive")
	}

	return uint(id), nil
}

func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(types.DateLayout, s)

	if err != nil {
		return datatypes.Date{}, errors.New("date must be formatted as YYYY-MM-DD")
	}

	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(types.DateLayout)
}

func FormatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}

	s := FormatDate(*d)
	return &s
}
