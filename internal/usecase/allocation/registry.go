package allocation

import (
	"fmt"

	"github.com/frontandrew/parking/internal/domain"
)

// Placement - место вместе с зоной, которой оно принадлежит
type Placement struct {
	Zone  *domain.ParkingZone
	Space *domain.ParkingSpace
}

// Registry хранит зоны в порядке добавления.
// Места ищутся глобально по точному совпадению ID; уникальность ID между зонами обеспечивает вызывающий.
type Registry struct {
	zones []*domain.ParkingZone
}

// NewRegistry создает пустой реестр зон
func NewRegistry() *Registry {
	return &Registry{}
}

// AddZone добавляет зону
func (r *Registry) AddZone(zone *domain.ParkingZone) error {
	if _, err := r.Zone(zone.ID); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrZoneAlreadyExists, zone.ID)
	}
	r.zones = append(r.zones, zone)
	return nil
}

// RemoveZone удаляет зону без припаркованных автомобилей
func (r *Registry) RemoveZone(id string) error {
	for i, z := range r.zones {
		if z.ID != id {
			continue
		}
		if z.OccupiedCount() > 0 {
			return fmt.Errorf("%w: %s", domain.ErrZoneOccupied, id)
		}
		r.zones = append(r.zones[:i], r.zones[i+1:]...)
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrZoneNotFound, id)
}

// Reset заменяет все зоны
func (r *Registry) Reset(zones []*domain.ParkingZone) {
	r.zones = append([]*domain.ParkingZone(nil), zones...)
}

// Zone возвращает зону по ID
func (r *Registry) Zone(id string) (*domain.ParkingZone, error) {
	for _, z := range r.zones {
		if z.ID == id {
			return z, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrZoneNotFound, id)
}

// Zones возвращает все зоны в порядке добавления
func (r *Registry) Zones() []*domain.ParkingZone {
	return append([]*domain.ParkingZone(nil), r.zones...)
}

// FreeSpaces возвращает свободные места зоны
func (r *Registry) FreeSpaces(zoneID string) ([]*domain.ParkingSpace, error) {
	z, err := r.Zone(zoneID)
	if err != nil {
		return nil, err
	}
	return z.FreeSpaces(), nil
}

// AllSpaces возвращает все места зоны
func (r *Registry) AllSpaces(zoneID string) ([]*domain.ParkingSpace, error) {
	z, err := r.Zone(zoneID)
	if err != nil {
		return nil, err
	}
	return append([]*domain.ParkingSpace(nil), z.Spaces...), nil
}

// Accepts проверяет, принимает ли зона категорию
func (r *Registry) Accepts(zoneID string, category domain.VehicleCategory) (bool, error) {
	z, err := r.Zone(zoneID)
	if err != nil {
		return false, err
	}
	return z.Accepts(category), nil
}

// EligibleZones возвращает зоны, принимающие категорию
func (r *Registry) EligibleZones(category domain.VehicleCategory) []*domain.ParkingZone {
	var eligible []*domain.ParkingZone
	for _, z := range r.zones {
		if z.Accepts(category) {
			eligible = append(eligible, z)
		}
	}
	return eligible
}

// SpaceByID ищет место во всех зонах, первое совпадение побеждает
func (r *Registry) SpaceByID(id string) (Placement, error) {
	for _, z := range r.zones {
		if s, ok := z.Space(id); ok {
			return Placement{Zone: z, Space: s}, nil
		}
	}
	return Placement{}, fmt.Errorf("%w: %s", domain.ErrSpaceNotFound, id)
}

// FindByPlate ищет место с автомобилем по номеру
func (r *Registry) FindByPlate(plate string) (Placement, error) {
	plate = domain.NormalizeLicensePlate(plate)
	found, ok := r.find(func(v *domain.Vehicle) bool {
		return v.LicensePlate == plate
	})
	if !ok {
		return Placement{}, fmt.Errorf("%w: %s", domain.ErrVehicleNotFound, plate)
	}
	return found, nil
}

// FindByReceipt ищет место с автомобилем по номеру квитанции
func (r *Registry) FindByReceipt(receiptID int) (Placement, error) {
	found, ok := r.find(func(v *domain.Vehicle) bool {
		return v.Receipt != nil && v.Receipt.ID == receiptID
	})
	if !ok {
		return Placement{}, fmt.Errorf("%w: receipt %d", domain.ErrVehicleNotFound, receiptID)
	}
	return found, nil
}

// NextReceiptID возвращает максимальный ID открытых квитанций + 1, или 0
func (r *Registry) NextReceiptID() int {
	maxID := -1
	r.each(func(_ *domain.ParkingZone, s *domain.ParkingSpace) {
		if s.Vehicle.Receipt != nil && s.Vehicle.Receipt.ID > maxID {
			maxID = s.Vehicle.Receipt.ID
		}
	})
	return maxID + 1
}

// Vehicles возвращает все припаркованные автомобили вместе с местами
func (r *Registry) Vehicles() []Placement {
	var placed []Placement
	r.each(func(z *domain.ParkingZone, s *domain.ParkingSpace) {
		placed = append(placed, Placement{Zone: z, Space: s})
	})
	return placed
}

func (r *Registry) find(match func(*domain.Vehicle) bool) (Placement, bool) {
	for _, z := range r.zones {
		for _, s := range z.Spaces {
			if !s.IsFree() && match(s.Vehicle) {
				return Placement{Zone: z, Space: s}, true
			}
		}
	}
	return Placement{}, false
}

// each обходит только занятые места
func (r *Registry) each(fn func(*domain.ParkingZone, *domain.ParkingSpace)) {
	for _, z := range r.zones {
		for _, s := range z.Spaces {
			if !s.IsFree() {
				fn(z, s)
			}
		}
	}
}
