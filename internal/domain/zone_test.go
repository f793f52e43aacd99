package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestZone(t *testing.T) *ParkingZone {
	t.Helper()
	z, err := NewParkingZone("A", 2.5, []VehicleCategory{CategoryStandard, CategoryHigher})
	require.NoError(t, err)
	return z
}

// TestParkingZone_AddSpaces тестирует принадлежность мест зоне
func TestParkingZone_AddSpaces(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr bool
		count   int
	}{
		{name: "совпадающий префикс", ids: []string{"A1", "A2"}, count: 2},
		{name: "префикс в другом регистре", ids: []string{"a3"}, count: 1},
		{name: "чужой префикс", ids: []string{"B1"}, wantErr: true},
		{name: "чужой префикс в нижнем регистре", ids: []string{"b1"}, wantErr: true},
		{name: "одно неверное место - ничего не добавлено", ids: []string{"A1", "B2", "A3"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := newTestZone(t)
			err := z.AddSpaces(tt.ids...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrZoneMismatch)
				assert.Empty(t, z.Spaces)
				return
			}
			require.NoError(t, err)
			assert.Len(t, z.Spaces, tt.count)
		})
	}
}

func TestNewParkingZone_Validation(t *testing.T) {
	_, err := NewParkingZone("A", -1, nil)
	assert.ErrorIs(t, err, ErrInvalidRate)

	_, err = NewParkingZone(" ", 1, nil)
	assert.ErrorIs(t, err, ErrInvalidZoneData)
}

func TestParkingZone_FreeSpacesAndAccepts(t *testing.T) {
	z := newTestZone(t)
	require.NoError(t, z.AddSpaces("A1", "A2", "A3"))

	v, err := NewVehicle("X1", CategoryStandard, 1.5, 4)
	require.NoError(t, err)
	require.NoError(t, z.Spaces[1].Park(v))

	free := z.FreeSpaces()
	require.Len(t, free, 2)
	assert.Equal(t, "A1", free[0].ID)
	assert.Equal(t, "A3", free[1].ID)
	assert.Equal(t, 1, z.OccupiedCount())

	assert.ErrorIs(t, z.Spaces[1].Park(v), ErrSpaceOccupied)

	assert.True(t, z.Accepts(CategoryHigher))
	assert.False(t, z.Accepts(CategoryCoach))

	assert.Same(t, v, z.Spaces[1].Vacate())
	assert.True(t, z.Spaces[1].IsFree())
}

func TestParkingZone_CloneIsIndependent(t *testing.T) {
	z := newTestZone(t)
	require.NoError(t, z.AddSpaces("A1"))
	v, err := NewVehicle("X1", CategoryStandard, 1.5, 4)
	require.NoError(t, err)
	require.NoError(t, z.Spaces[0].Park(v))

	c := z.Clone()
	c.Spaces[0].Vacate()
	c.Accepted[0] = CategoryCoach

	assert.False(t, z.Spaces[0].IsFree())
	assert.Equal(t, CategoryStandard, z.Accepted[0])
}
