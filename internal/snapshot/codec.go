package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/parking/internal/domain"
)

// Document - сохраняемое представление парковки. Имена ключей JSON менять нельзя.
type Document struct {
	Name            string            `json:"name"`
	Employees       []EmployeeRecord  `json:"employees"`
	ParkingZones    []ZoneRecord      `json:"parkingZones"`
	Vehicles        []VehicleRecord   `json:"vehicles"`
	ParkingReceipts []ReceiptRecord   `json:"parkingReceipts"`
	ExitTokens      []ExitTokenRecord `json:"exitTokens"`
}

// EmployeeRecord - свободный сотрудник
type EmployeeRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ZoneRecord - зона с местами
type ZoneRecord struct {
	ID               string        `json:"id"`
	ParkingSpaces    []SpaceRecord `json:"parkingSpaces"`
	Price            float64       `json:"price"`
	AcceptedVehicles []string      `json:"acceptedVehicles"`
}

// SpaceRecord - место без данных о занятости
type SpaceRecord struct {
	ID string `json:"id"`
}

// VehicleRecord - припаркованный автомобиль со ссылкой на квитанцию
type VehicleRecord struct {
	LicensePlate string  `json:"licensePlate"`
	ParkingSpace string  `json:"parkingSpace"`
	Type         string  `json:"type"`
	Height       float64 `json:"height"`
	Length       float64 `json:"length"`
	ReceiptID    int     `json:"receiptId"`
}

// ReceiptRecord - открытая квитанция. Тариф и дата окончания не сохраняются.
type ReceiptRecord struct {
	ID         int   `json:"id"`
	DateStart  int64 `json:"dateStart"` // epoch-ms
	IsDisabled bool  `json:"isDisabled"`
}

// ExitTokenRecord - невыкупленный жетон на выезд
type ExitTokenRecord struct {
	ID   int   `json:"id"`
	Date int64 `json:"date"` // epoch-ms
}

// State - состояние парковки в памяти.
// Автомобили находятся внутри мест зон, квитанции внутри автомобилей.
type State struct {
	Name      string
	Employees []*domain.Employee
	Zones     []*domain.ParkingZone
	Tokens    []*domain.ExitToken
}

// Empty возвращает пустой, но корректный документ
func Empty() *Document {
	return &Document{
		Employees:       []EmployeeRecord{},
		ParkingZones:    []ZoneRecord{},
		Vehicles:        []VehicleRecord{},
		ParkingReceipts: []ReceiptRecord{},
		ExitTokens:      []ExitTokenRecord{},
	}
}

// Encode переводит состояние в документ. Сохраняются только свободные сотрудники.
func Encode(state *State) *Document {
	doc := Empty()
	doc.Name = state.Name

	for _, e := range state.Employees {
		if !e.IsIdle() {
			continue
		}
		doc.Employees = append(doc.Employees, EmployeeRecord{ID: e.ID, Name: e.Name})
	}

	for _, z := range state.Zones {
		zr := ZoneRecord{
			ID:               z.ID,
			ParkingSpaces:    make([]SpaceRecord, 0, len(z.Spaces)),
			Price:            z.Rate,
			AcceptedVehicles: make([]string, 0, len(z.Accepted)),
		}
		for _, c := range z.Accepted {
			zr.AcceptedVehicles = append(zr.AcceptedVehicles, strings.ToUpper(string(c)))
		}

		for _, s := range z.Spaces {
			zr.ParkingSpaces = append(zr.ParkingSpaces, SpaceRecord{ID: s.ID})
			if s.IsFree() {
				continue
			}

			v := s.Vehicle
			doc.Vehicles = append(doc.Vehicles, VehicleRecord{
				LicensePlate: v.LicensePlate,
				ParkingSpace: s.ID,
				Type:         strings.ToUpper(string(v.Category)),
				Height:       v.Height,
				Length:       v.Length,
				ReceiptID:    v.Receipt.ID,
			})
			doc.ParkingReceipts = append(doc.ParkingReceipts, ReceiptRecord{
				ID:         v.Receipt.ID,
				DateStart:  v.Receipt.StartDate.UnixMilli(),
				IsDisabled: v.Receipt.Disabled,
			})
		}
		doc.ParkingZones = append(doc.ParkingZones, zr)
	}

	for _, t := range state.Tokens {
		doc.ExitTokens = append(doc.ExitTokens, ExitTokenRecord{ID: t.ID, Date: t.IssuedAt.UnixMilli()})
	}

	return doc
}

// Decode восстанавливает состояние из документа.
// Сначала создаются зоны, затем отдельно автомобили и квитанции, затем один проход связывания.
// При любой ошибке возвращается ErrCorruptSnapshot и никакого частичного состояния.
func Decode(doc *Document) (*State, error) {
	state := &State{Name: doc.Name}

	employees, err := decodeEmployees(doc.Employees)
	if err != nil {
		return nil, err
	}
	state.Employees = employees

	zones, err := decodeZones(doc.ParkingZones)
	if err != nil {
		return nil, err
	}
	state.Zones = zones

	vehicles, err := decodeVehicles(doc.Vehicles)
	if err != nil {
		return nil, err
	}

	receipts, err := decodeReceipts(doc.ParkingReceipts)
	if err != nil {
		return nil, err
	}

	if err := link(zones, vehicles, receipts); err != nil {
		return nil, err
	}

	tokens, err := decodeTokens(doc.ExitTokens)
	if err != nil {
		return nil, err
	}
	state.Tokens = tokens

	return state, nil
}

// detachedVehicle - автомобиль до связывания с квитанцией и местом
type detachedVehicle struct {
	vehicle   *domain.Vehicle
	spaceID   string
	receiptID int
}

func decodeEmployees(records []EmployeeRecord) ([]*domain.Employee, error) {
	employees := make([]*domain.Employee, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		e := &domain.Employee{ID: r.ID, Name: r.Name, Pool: domain.PoolIdle}
		if err := e.Validate(); err != nil {
			return nil, corrupt("employee %d: %v", r.ID, err)
		}
		if seen[r.ID] {
			return nil, corrupt("duplicate employee id %d", r.ID)
		}
		seen[r.ID] = true
		employees = append(employees, e)
	}
	return employees, nil
}

func decodeZones(records []ZoneRecord) ([]*domain.ParkingZone, error) {
	zones := make([]*domain.ParkingZone, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, r := range records {
		if seen[r.ID] {
			return nil, corrupt("duplicate zone id %q", r.ID)
		}
		seen[r.ID] = true

		accepted := make([]domain.VehicleCategory, 0, len(r.AcceptedVehicles))
		for _, name := range r.AcceptedVehicles {
			c, err := domain.ParseVehicleCategory(name)
			if err != nil {
				return nil, corrupt("zone %q: %v", r.ID, err)
			}
			accepted = append(accepted, c)
		}

		zone, err := domain.NewParkingZone(r.ID, r.Price, accepted)
		if err != nil {
			return nil, corrupt("zone %q: %v", r.ID, err)
		}

		ids := make([]string, 0, len(r.ParkingSpaces))
		for _, s := range r.ParkingSpaces {
			ids = append(ids, s.ID)
		}
		if err := zone.AddSpaces(ids...); err != nil {
			return nil, corrupt("zone %q: %v", r.ID, err)
		}
		zones = append(zones, zone)
	}
	return zones, nil
}

func decodeVehicles(records []VehicleRecord) (map[int]*detachedVehicle, error) {
	vehicles := make(map[int]*detachedVehicle, len(records))
	plates := make(map[string]bool, len(records))
	for _, r := range records {
		category, err := domain.ParseVehicleCategory(r.Type)
		if err != nil {
			return nil, corrupt("vehicle %q: %v", r.LicensePlate, err)
		}
		v, err := domain.NewVehicle(r.LicensePlate, category, r.Height, r.Length)
		if err != nil {
			return nil, corrupt("vehicle %q: %v", r.LicensePlate, err)
		}
		if plates[v.LicensePlate] {
			return nil, corrupt("duplicate vehicle %q", v.LicensePlate)
		}
		if _, ok := vehicles[r.ReceiptID]; ok {
			return nil, corrupt("receipt %d referenced by several vehicles", r.ReceiptID)
		}
		plates[v.LicensePlate] = true
		vehicles[r.ReceiptID] = &detachedVehicle{vehicle: v, spaceID: r.ParkingSpace, receiptID: r.ReceiptID}
	}
	return vehicles, nil
}

func decodeReceipts(records []ReceiptRecord) (map[int]*domain.ParkingReceipt, error) {
	receipts := make(map[int]*domain.ParkingReceipt, len(records))
	for _, r := range records {
		if _, ok := receipts[r.ID]; ok {
			return nil, corrupt("duplicate receipt id %d", r.ID)
		}
		receipts[r.ID] = domain.NewParkingReceipt(r.ID, time.UnixMilli(r.DateStart), r.IsDisabled)
	}
	return receipts, nil
}

// link прикрепляет квитанции к автомобилям и ставит автомобили на места.
// Тариф квитанции берется из зоны места.
func link(zones []*domain.ParkingZone, vehicles map[int]*detachedVehicle, receipts map[int]*domain.ParkingReceipt) error {
	for id, receipt := range receipts {
		dv, ok := vehicles[id]
		if !ok {
			return corrupt("receipt %d has no vehicle", id)
		}
		dv.vehicle.Receipt = receipt
	}

	for _, dv := range vehicles {
		if dv.vehicle.Receipt == nil {
			return corrupt("vehicle %q references missing receipt %d", dv.vehicle.LicensePlate, dv.receiptID)
		}

		zone, space := findSpace(zones, dv.spaceID)
		if space == nil {
			return corrupt("vehicle %q is in unknown space %q", dv.vehicle.LicensePlate, dv.spaceID)
		}
		if err := space.Park(dv.vehicle); err != nil {
			return corrupt("vehicle %q: %v", dv.vehicle.LicensePlate, err)
		}
		dv.vehicle.Receipt.BindRate(zone.Rate)
	}
	return nil
}

func decodeTokens(records []ExitTokenRecord) ([]*domain.ExitToken, error) {
	tokens := make([]*domain.ExitToken, 0, len(records))
	seen := make(map[int]bool, len(records))
	for _, r := range records {
		if r.ID < domain.MinExitTokenID || r.ID > domain.MaxExitTokenID {
			return nil, corrupt("exit token %d out of range", r.ID)
		}
		if seen[r.ID] {
			return nil, corrupt("duplicate exit token %d", r.ID)
		}
		seen[r.ID] = true
		tokens = append(tokens, &domain.ExitToken{ID: r.ID, IssuedAt: time.UnixMilli(r.Date)})
	}
	return tokens, nil
}

func findSpace(zones []*domain.ParkingZone, id string) (*domain.ParkingZone, *domain.ParkingSpace) {
	for _, z := range zones {
		if s, ok := z.Space(id); ok {
			return z, s
		}
	}
	return nil, nil
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrCorruptSnapshot, fmt.Sprintf(format, args...))
}
