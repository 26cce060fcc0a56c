package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tourbook/catalog/internal/types"
	"gorm.io/datatypes"
)

func mustDate(t *testing.T, s string) datatypes.Date {
	t.Helper()
	d, err := time.Parse(types.DateLayout, s)
	require.NoError(t, err)
	return datatypes.Date(d)
}
