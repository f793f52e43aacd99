package parking

import (
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/parking/internal/domain"
)

// VehicleInfo - сведения о припаркованном автомобиле
type VehicleInfo struct {
	LicensePlate string
	Category     domain.VehicleCategory
	Height       float64
	Length       float64
	ZoneID       string
	SpaceID      string
	ReceiptID    int
	Since        time.Time
	Disabled     bool
}

// ZoneAvailability - количество свободных мест в зоне
type ZoneAvailability struct {
	ZoneID string
	Free   int
	Total  int
}

// SpaceStatus - занятость одного места
type SpaceStatus struct {
	SpaceID      string
	Occupied     bool
	LicensePlate string
}

// ZoneStatistics - занятость мест зоны
type ZoneStatistics struct {
	ZoneID   string
	Rate     float64
	Accepted []domain.VehicleCategory
	Spaces   []SpaceStatus
}

// VehicleInfo возвращает сведения об автомобиле по номеру
func (s *Service) VehicleInfo(plate string) (*VehicleInfo, error) {
	placement, err := s.registry.FindByPlate(plate)
	if err != nil {
		return nil, err
	}
	return vehicleInfo(placement.Zone, placement.Space), nil
}

// FreeSpaceCounts возвращает число свободных мест по зонам
func (s *Service) FreeSpaceCounts() []ZoneAvailability {
	zones := s.registry.Zones()
	counts := make([]ZoneAvailability, 0, len(zones))
	for _, z := range zones {
		counts = append(counts, ZoneAvailability{
			ZoneID: z.ID,
			Free:   len(z.FreeSpaces()),
			Total:  len(z.Spaces),
		})
	}
	return counts
}

// Statistics возвращает занятость каждого места по зонам
func (s *Service) Statistics() []ZoneStatistics {
	zones := s.registry.Zones()
	stats := make([]ZoneStatistics, 0, len(zones))
	for _, z := range zones {
		zs := ZoneStatistics{
			ZoneID:   z.ID,
			Rate:     z.Rate,
			Accepted: append([]domain.VehicleCategory(nil), z.Accepted...),
			Spaces:   make([]SpaceStatus, 0, len(z.Spaces)),
		}
		for _, sp := range z.Spaces {
			st := SpaceStatus{SpaceID: sp.ID, Occupied: !sp.IsFree()}
			if st.Occupied {
				st.LicensePlate = sp.Vehicle.LicensePlate
			}
			zs.Spaces = append(zs.Spaces, st)
		}
		stats = append(stats, zs)
	}
	return stats
}

// Describe возвращает полное текстовое описание парковки
func (s *Service) Describe() string {
	var sb strings.Builder
	sb.WriteString(s.name)

	zones := s.registry.Zones()
	sb.WriteString("\n\n---------- PARKING ZONES ----------\n")
	if len(zones) == 0 {
		sb.WriteString("No parking zones.\n")
	}
	for _, z := range zones {
		fmt.Fprintf(&sb, "Zone %s, %.2f per hour, accepts %s, %d/%d free\n",
			z.ID, z.Rate, joinCategories(z.Accepted), len(z.FreeSpaces()), len(z.Spaces))
	}

	placed := s.registry.Vehicles()
	sb.WriteString("\n---------- VEHICLES ----------\n")
	if len(placed) == 0 {
		sb.WriteString("No vehicles parked.\n")
	}
	for _, p := range placed {
		info := vehicleInfo(p.Zone, p.Space)
		fmt.Fprintf(&sb, "%s (%s, %.2fx%.2f m) in %s, receipt %d since %s\n",
			info.LicensePlate, info.Category, info.Height, info.Length,
			info.SpaceID, info.ReceiptID, info.Since.Format(time.DateTime))
	}

	employees := s.Employees()
	sb.WriteString("\n---------- EMPLOYEES ----------\n")
	if len(employees) == 0 {
		sb.WriteString("No employees.\n")
	}
	for _, e := range employees {
		fmt.Fprintf(&sb, "%d %s (%s)\n", e.ID, e.Name, e.Pool)
	}

	tokens := s.exits.Tokens()
	sb.WriteString("\n---------- EXIT TOKENS ----------\n")
	if len(tokens) == 0 {
		sb.WriteString("No exit tokens.\n")
	}
	for _, t := range tokens {
		fmt.Fprintf(&sb, "%d issued %s\n", t.ID, t.IssuedAt.Format(time.DateTime))
	}

	return sb.String()
}

func vehicleInfo(zone *domain.ParkingZone, space *domain.ParkingSpace) *VehicleInfo {
	v := space.Vehicle
	return &VehicleInfo{
		LicensePlate: v.LicensePlate,
		Category:     v.Category,
		Height:       v.Height,
		Length:       v.Length,
		ZoneID:       zone.ID,
		SpaceID:      space.ID,
		ReceiptID:    v.Receipt.ID,
		Since:        v.Receipt.StartDate,
		Disabled:     v.Receipt.Disabled,
	}
}

func joinCategories(categories []domain.VehicleCategory) string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
