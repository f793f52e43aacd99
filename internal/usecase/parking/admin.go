package parking

import (
	"github.com/frontandrew/parking/internal/domain"
)

// AddZone создает зону с местами. Если хотя бы одно место не принадлежит зоне, зона не создается.
func (s *Service) AddZone(id string, rate float64, accepted []domain.VehicleCategory, spaceIDs []string) error {
	zone, err := domain.NewParkingZone(id, rate, accepted)
	if err != nil {
		return err
	}
	if err := zone.AddSpaces(spaceIDs...); err != nil {
		return err
	}
	for _, spaceID := range spaceIDs {
		if _, err := s.registry.SpaceByID(spaceID); err == nil {
			s.logger.Warn("Space id already used by another zone", map[string]interface{}{
				"space_id": spaceID,
				"zone_id":  id,
			})
		}
	}
	if err := s.registry.AddZone(zone); err != nil {
		return err
	}

	s.logger.Info("Zone added", map[string]interface{}{
		"zone_id": id,
		"rate":    rate,
		"spaces":  len(spaceIDs),
	})
	return nil
}

// RemoveZone удаляет пустую зону
func (s *Service) RemoveZone(id string) error {
	if err := s.registry.RemoveZone(id); err != nil {
		return err
	}
	s.logger.Info("Zone removed", map[string]interface{}{
		"zone_id": id,
	})
	return nil
}

// RemoveVehicle убирает автомобиль вместе с квитанцией без оплаты (действие персонала)
func (s *Service) RemoveVehicle(plate string) (*VehicleInfo, error) {
	placement, err := s.registry.FindByPlate(plate)
	if err != nil {
		return nil, err
	}

	info := vehicleInfo(placement.Zone, placement.Space)
	placement.Space.Vacate()

	s.logger.Info("Vehicle removed by staff", map[string]interface{}{
		"plate":    info.LicensePlate,
		"space_id": info.SpaceID,
	})
	return info, nil
}

// AddEmployee добавляет свободного сотрудника
func (s *Service) AddEmployee(name string) (*domain.Employee, error) {
	return s.roster.AddIdle(name)
}

// RemoveEmployee удаляет свободного сотрудника
func (s *Service) RemoveEmployee(id int) (*domain.Employee, error) {
	return s.roster.RemoveIdle(id)
}

// Employees возвращает всех сотрудников: сначала свободных, затем занятых
func (s *Service) Employees() []*domain.Employee {
	return append(s.roster.Idle(), s.roster.Assigned()...)
}
