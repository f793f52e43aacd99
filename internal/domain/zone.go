package domain

import (
	"fmt"
	"strings"
)

// ParkingSpace - одно парковочное место.
// Место свободно, если в нем нет автомобиля. Места не удаляются, меняется только занятость.
type ParkingSpace struct {
	ID      string   `json:"id"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
}

// IsFree проверяет, свободно ли место
func (s *ParkingSpace) IsFree() bool {
	return s.Vehicle == nil
}

// Park ставит автомобиль на место
func (s *ParkingSpace) Park(v *Vehicle) error {
	if !s.IsFree() {
		return fmt.Errorf("%w: %s", ErrSpaceOccupied, s.ID)
	}
	s.Vehicle = v
	return nil
}

// Vacate освобождает место и возвращает стоявший на нем автомобиль
func (s *ParkingSpace) Vacate() *Vehicle {
	v := s.Vehicle
	s.Vehicle = nil
	return v
}

// ParkingZone - зона с почасовым тарифом, списком допустимых категорий и упорядоченными местами
type ParkingZone struct {
	ID       string            `json:"id"`
	Rate     float64           `json:"rate"`
	Accepted []VehicleCategory `json:"accepted_vehicles"`
	Spaces   []*ParkingSpace   `json:"spaces"`
}

// NewParkingZone создает зону без мест
func NewParkingZone(id string, rate float64, accepted []VehicleCategory) (*ParkingZone, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty zone id", ErrInvalidZoneData)
	}
	if rate < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, rate)
	}
	return &ParkingZone{
		ID:       id,
		Rate:     rate,
		Accepted: append([]VehicleCategory(nil), accepted...),
	}, nil
}

// Owns проверяет, что идентификатор места начинается с идентификатора зоны (без учета регистра)
func (z *ParkingZone) Owns(spaceID string) bool {
	return strings.HasPrefix(strings.ToUpper(spaceID), strings.ToUpper(z.ID))
}

// AddSpaces добавляет места по принципу "все или ничего".
// Если хотя бы одно место не принадлежит зоне, ничего не добавляется.
func (z *ParkingZone) AddSpaces(ids ...string) error {
	for _, id := range ids {
		if !z.Owns(id) {
			return fmt.Errorf("%w: space %q in zone %q", ErrZoneMismatch, id, z.ID)
		}
	}
	for _, id := range ids {
		z.Spaces = append(z.Spaces, &ParkingSpace{ID: id})
	}
	return nil
}

// Accepts проверяет, допускается ли категория в зону
func (z *ParkingZone) Accepts(c VehicleCategory) bool {
	for _, a := range z.Accepted {
		if a == c {
			return true
		}
	}
	return false
}

// FreeSpaces возвращает свободные места в порядке объявления
func (z *ParkingZone) FreeSpaces() []*ParkingSpace {
	free := make([]*ParkingSpace, 0, len(z.Spaces))
	for _, s := range z.Spaces {
		if s.IsFree() {
			free = append(free, s)
		}
	}
	return free
}

// OccupiedCount возвращает количество занятых мест
func (z *ParkingZone) OccupiedCount() int {
	return len(z.Spaces) - len(z.FreeSpaces())
}

// Space ищет место зоны по точному совпадению идентификатора
func (z *ParkingZone) Space(id string) (*ParkingSpace, bool) {
	for _, s := range z.Spaces {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// Clone возвращает глубокую копию зоны вместе с автомобилями
func (z *ParkingZone) Clone() *ParkingZone {
	c := &ParkingZone{
		ID:       z.ID,
		Rate:     z.Rate,
		Accepted: append([]VehicleCategory(nil), z.Accepted...),
		Spaces:   make([]*ParkingSpace, 0, len(z.Spaces)),
	}
	for _, s := range z.Spaces {
		cs := &ParkingSpace{ID: s.ID}
		if s.Vehicle != nil {
			cs.Vehicle = s.Vehicle.Clone()
		}
		c.Spaces = append(c.Spaces, cs)
	}
	return c
}
