package parking

import (
	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/snapshot"
)

// Snapshot возвращает независимую копию состояния парковки
func (s *Service) Snapshot() *snapshot.State {
	zones := s.registry.Zones()
	state := &snapshot.State{
		Name:      s.name,
		Employees: s.Employees(),
		Zones:     make([]*domain.ParkingZone, 0, len(zones)),
		Tokens:    s.exits.Tokens(),
	}
	for _, z := range zones {
		state.Zones = append(state.Zones, z.Clone())
	}
	return state
}

// Restore заменяет все состояние парковки. Состояние копируется, вызывающий может его менять.
// Занятые сотрудники возвращаются в свободные.
func (s *Service) Restore(state *snapshot.State) {
	zones := make([]*domain.ParkingZone, 0, len(state.Zones))
	for _, z := range state.Zones {
		zones = append(zones, z.Clone())
	}

	if state.Name != "" {
		s.name = state.Name
	}
	s.registry.Reset(zones)
	s.roster.Reset(state.Employees)
	s.exits.Reset(state.Tokens)

	s.logger.Info("Facility state restored", map[string]interface{}{
		"name":      s.name,
		"zones":     len(zones),
		"vehicles":  len(s.registry.Vehicles()),
		"employees": len(state.Employees),
		"tokens":    len(state.Tokens),
	})
}
