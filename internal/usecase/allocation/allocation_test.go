package allocation

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

var all = []domain.VehicleCategory{
	domain.CategoryStandard, domain.CategoryHigher, domain.CategoryLonger,
}

func newZone(t *testing.T, id string, rate float64, accepted []domain.VehicleCategory, spaces ...string) *domain.ParkingZone {
	t.Helper()
	z, err := domain.NewParkingZone(id, rate, accepted)
	require.NoError(t, err)
	require.NoError(t, z.AddSpaces(spaces...))
	return z
}

func park(t *testing.T, z *domain.ParkingZone, spaceID, plate string, receiptID int) {
	t.Helper()
	s, ok := z.Space(spaceID)
	require.True(t, ok)
	v, err := domain.NewVehicle(plate, domain.CategoryStandard, 1.5, 4)
	require.NoError(t, err)
	v.Receipt = domain.NewParkingReceipt(receiptID, time.Now(), false)
	require.NoError(t, s.Park(v))
}

func TestRegistry_AddAndRemoveZone(t *testing.T) {
	r := NewRegistry()
	a := newZone(t, "A", 2, all, "A1", "A2")
	require.NoError(t, r.AddZone(a))

	err := r.AddZone(newZone(t, "A", 3, all))
	assert.ErrorIs(t, err, domain.ErrZoneAlreadyExists)

	park(t, a, "A1", "AB123", 0)
	assert.ErrorIs(t, r.RemoveZone("A"), domain.ErrZoneOccupied)
	assert.ErrorIs(t, r.RemoveZone("Z"), domain.ErrZoneNotFound)

	a.Spaces[0].Vacate()
	require.NoError(t, r.RemoveZone("A"))
	assert.Empty(t, r.Zones())
}

func TestRegistry_Lookups(t *testing.T) {
	r := NewRegistry()
	a := newZone(t, "A", 2, all, "A1", "A2")
	b := newZone(t, "B", 5, []domain.VehicleCategory{domain.CategoryMotorbike}, "B1")
	require.NoError(t, r.AddZone(a))
	require.NoError(t, r.AddZone(b))
	park(t, a, "A2", "XY999", 4)
	park(t, b, "B1", "MB1", 9)

	free, err := r.FreeSpaces("A")
	require.NoError(t, err)
	require.Len(t, free, 1)
	assert.Equal(t, "A1", free[0].ID)

	spaces, err := r.AllSpaces("A")
	require.NoError(t, err)
	assert.Len(t, spaces, 2)

	_, err = r.FreeSpaces("Q")
	assert.ErrorIs(t, err, domain.ErrZoneNotFound)

	ok, err := r.Accepts("B", domain.CategoryMotorbike)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.Accepts("B", domain.CategoryStandard)
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := r.SpaceByID("B1")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Zone.ID)
	_, err = r.SpaceByID("b1")
	assert.ErrorIs(t, err, domain.ErrSpaceNotFound)

	p, err = r.FindByPlate(" xy999 ")
	require.NoError(t, err)
	assert.Equal(t, "A2", p.Space.ID)
	_, err = r.FindByPlate("NOPE")
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)

	p, err = r.FindByReceipt(9)
	require.NoError(t, err)
	assert.Equal(t, "MB1", p.Space.Vehicle.LicensePlate)
	_, err = r.FindByReceipt(5)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)

	assert.Equal(t, 10, r.NextReceiptID())
	assert.Len(t, r.Vehicles(), 2)
}

func TestRegistry_NextReceiptID_Empty(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.AddZone(newZone(t, "A", 1, all, "A1")))
	assert.Equal(t, 0, r.NextReceiptID())
}

func TestAllocator_Allocate(t *testing.T) {
	tests := []struct {
		name     string
		category domain.VehicleCategory
		setup    func(t *testing.T, r *Registry)
		wantErr  error
		check    func(t *testing.T, p Placement)
	}{
		{
			name:     "нет зон для категории",
			category: domain.CategoryCoach,
			setup: func(t *testing.T, r *Registry) {
				require.NoError(t, r.AddZone(newZone(t, "A", 1, all, "A1")))
			},
			wantErr: domain.ErrNoFreeSpace,
		},
		{
			name:     "единственная зона заполнена",
			category: domain.CategoryStandard,
			setup: func(t *testing.T, r *Registry) {
				a := newZone(t, "A", 1, all, "A1")
				park(t, a, "A1", "P1", 0)
				require.NoError(t, r.AddZone(a))
			},
			wantErr: domain.ErrNoFreeSpace,
		},
		{
			name:     "единственное свободное место",
			category: domain.CategoryHigher,
			setup: func(t *testing.T, r *Registry) {
				a := newZone(t, "A", 1, all, "A1", "A2", "A3")
				park(t, a, "A1", "P1", 0)
				park(t, a, "A3", "P3", 1)
				require.NoError(t, r.AddZone(a))
				require.NoError(t, r.AddZone(newZone(t, "M", 1, []domain.VehicleCategory{domain.CategoryMotorbike}, "M1")))
			},
			check: func(t *testing.T, p Placement) {
				assert.Equal(t, "A", p.Zone.ID)
				assert.Equal(t, "A2", p.Space.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.setup(t, r)
			a := NewAllocator(r, rand.New(rand.NewPCG(1, 2)), logger.NewNoop())

			p, err := a.Allocate(tt.category)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

// Выбранная заполненная зона не приводит к поиску в других зонах
func TestAllocator_NoFallbackWithinCall(t *testing.T) {
	r := NewRegistry()
	full := newZone(t, "A", 1, all, "A1")
	park(t, full, "A1", "P1", 0)
	require.NoError(t, r.AddZone(full))
	require.NoError(t, r.AddZone(newZone(t, "B", 1, all, "B1")))

	a := NewAllocator(r, rand.New(rand.NewPCG(7, 7)), logger.NewNoop())

	var sawFull, sawFree bool
	for i := 0; i < 200; i++ {
		p, err := a.Allocate(domain.CategoryStandard)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrNoFreeSpace)
			sawFull = true
			continue
		}
		assert.Equal(t, "B1", p.Space.ID)
		sawFree = true
	}
	assert.True(t, sawFull)
	assert.True(t, sawFree)
}

func TestAllocator_NeverReturnsOccupiedOrIneligible(t *testing.T) {
	r := NewRegistry()
	a1 := newZone(t, "A", 1, all, "A1", "A2", "A3", "A4")
	park(t, a1, "A2", "P2", 0)
	require.NoError(t, r.AddZone(a1))
	require.NoError(t, r.AddZone(newZone(t, "C", 1, []domain.VehicleCategory{domain.CategoryCoach}, "C1")))
	require.NoError(t, r.AddZone(newZone(t, "D", 1, all, "D1", "D2")))

	a := NewAllocator(r, rand.New(rand.NewPCG(3, 4)), logger.NewNoop())
	for i := 0; i < 500; i++ {
		p, err := a.Allocate(domain.CategoryLonger)
		require.NoError(t, err)
		assert.True(t, p.Space.IsFree())
		assert.True(t, p.Zone.Accepts(domain.CategoryLonger))
		assert.NotEqual(t, "C", p.Zone.ID)
	}
}

func TestAllocator_AllocateAcrossZones(t *testing.T) {
	r := NewRegistry()
	full := newZone(t, "A", 1, all, "A1")
	park(t, full, "A1", "P1", 0)
	require.NoError(t, r.AddZone(full))
	require.NoError(t, r.AddZone(newZone(t, "B", 1, all, "B1")))

	a := NewAllocator(r, rand.New(rand.NewPCG(7, 7)), logger.NewNoop())
	for i := 0; i < 50; i++ {
		p, err := a.AllocateAcrossZones(domain.CategoryStandard)
		require.NoError(t, err)
		assert.Equal(t, "B1", p.Space.ID)
	}

	park(t, r.zones[1], "B1", "P2", 1)
	_, err := a.AllocateAcrossZones(domain.CategoryStandard)
	assert.ErrorIs(t, err, domain.ErrNoFreeSpace)
}
