package allocation

import (
	"fmt"
	"math/rand/v2"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

// Allocator выбирает свободное место для категории автомобиля
type Allocator struct {
	registry *Registry
	rng      *rand.Rand
	logger   logger.Logger
}

// NewAllocator создает новый экземпляр Allocator
func NewAllocator(registry *Registry, rng *rand.Rand, logger logger.Logger) *Allocator {
	return &Allocator{
		registry: registry,
		rng:      rng,
		logger:   logger,
	}
}

// Allocate выбирает случайную зону среди принимающих категорию, затем случайное свободное место в ней.
// Если выбранная зона заполнена, другие зоны в этом вызове не пробуются.
func (a *Allocator) Allocate(category domain.VehicleCategory) (Placement, error) {
	eligible := a.registry.EligibleZones(category)
	if len(eligible) == 0 {
		a.logger.Debug("No zone accepts category", map[string]interface{}{
			"category": category,
		})
		return Placement{}, fmt.Errorf("%w: no zone accepts %s", domain.ErrNoFreeSpace, category)
	}

	zone := eligible[a.rng.IntN(len(eligible))]
	return a.pickSpace(zone)
}

// AllocateAcrossZones обходит подходящие зоны в случайном порядке до первой со свободным местом
func (a *Allocator) AllocateAcrossZones(category domain.VehicleCategory) (Placement, error) {
	eligible := a.registry.EligibleZones(category)
	a.rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	for _, zone := range eligible {
		placement, err := a.pickSpace(zone)
		if err == nil {
			return placement, nil
		}
	}
	return Placement{}, fmt.Errorf("%w: %s", domain.ErrNoFreeSpace, category)
}

func (a *Allocator) pickSpace(zone *domain.ParkingZone) (Placement, error) {
	free := zone.FreeSpaces()
	if len(free) == 0 {
		a.logger.Debug("Picked zone is full", map[string]interface{}{
			"zone_id": zone.ID,
		})
		return Placement{}, fmt.Errorf("%w: zone %s is full", domain.ErrNoFreeSpace, zone.ID)
	}

	space := free[a.rng.IntN(len(free))]
	return Placement{Zone: zone, Space: space}, nil
}
