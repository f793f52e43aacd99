package parking

import (
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/usecase/allocation"
	"github.com/frontandrew/parking/internal/usecase/billing"
	"github.com/frontandrew/parking/internal/usecase/exit"
	"github.com/frontandrew/parking/internal/usecase/staff"
)

// ParkRequest - запрос на парковку
type ParkRequest struct {
	LicensePlate string
	Height       float64
	Length       float64
	Category     domain.VehicleCategory // Пусто - определяется по размерам; MOTORBIKE и COACH задаются явно
	Disabled     bool
	Assisted     bool   // Автомобиль паркует сотрудник
	SpaceID      string // Место, выбранное сотрудником; учитывается только при парковке сотрудником
}

// ParkResult - результат парковки
type ParkResult struct {
	ReceiptID             int
	LicensePlate          string
	Category              domain.VehicleCategory
	ZoneID                string
	SpaceID               string
	Employee              *domain.Employee // nil, если водитель парковался сам
	AssistanceUnavailable bool             // Помощь запрошена, но свободных сотрудников нет
}

// Bill - счет при выдаче автомобиля
type Bill struct {
	ReceiptID     int
	LicensePlate  string
	Category      domain.VehicleCategory
	ZoneID        string
	SpaceID       string
	Start         time.Time
	End           time.Time
	Hours         int64 // Полных часов стоянки
	Minutes       int64 // Минут сверх полных часов
	BillableHours int64
	Rate          float64
	Price         float64 // Без скидок
	Fee           float64 // К оплате
}

// Collection - результат выдачи оплаченного автомобиля
type Collection struct {
	Token                 *domain.ExitToken
	LicensePlate          string
	SpaceID               string
	Employee              *domain.Employee // nil, если водитель забирал сам
	AssistanceUnavailable bool
}

// Settings - настройки парковки
type Settings struct {
	Name       string           // Имя по умолчанию, если в состоянии имя пустое
	RetryZones bool             // Пробовать другие зоны, если выбранная заполнена
	Clock      func() time.Time // nil - time.Now
}

// Service владеет всем состоянием парковки. Запросы возвращают копии.
type Service struct {
	name       string
	registry   *allocation.Registry
	allocator  *allocation.Allocator
	ledger     *billing.Ledger
	exits      *exit.Registry
	roster     *staff.Roster
	retryZones bool
	now        func() time.Time
	logger     logger.Logger
}

// NewService создает новый экземпляр Service
func NewService(
	registry *allocation.Registry,
	allocator *allocation.Allocator,
	ledger *billing.Ledger,
	exits *exit.Registry,
	roster *staff.Roster,
	settings Settings,
	logger logger.Logger,
) *Service {
	now := settings.Clock
	if now == nil {
		now = time.Now
	}
	return &Service{
		name:       settings.Name,
		registry:   registry,
		allocator:  allocator,
		ledger:     ledger,
		exits:      exits,
		roster:     roster,
		retryZones: settings.RetryZones,
		now:        now,
		logger:     logger,
	}
}

// Name возвращает название парковки
func (s *Service) Name() string {
	return s.name
}

// ParkVehicle ставит автомобиль на место и открывает квитанцию.
// При любой ошибке состояние парковки не меняется.
func (s *Service) ParkVehicle(req ParkRequest) (*ParkResult, error) {
	vehicle, err := domain.NewVehicle(req.LicensePlate, "", req.Height, req.Length)
	if err != nil {
		return nil, err
	}

	if _, err := s.registry.FindByPlate(vehicle.LicensePlate); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrVehicleAlreadyExists, vehicle.LicensePlate)
	}

	category, err := domain.ClassifyVehicle(req.Category, req.Height, req.Length)
	if err != nil {
		s.logger.Info("Vehicle rejected by size", map[string]interface{}{
			"plate":  vehicle.LicensePlate,
			"height": req.Height,
			"length": req.Length,
		})
		return nil, err
	}
	vehicle.Category = category

	result := &ParkResult{LicensePlate: vehicle.LicensePlate, Category: category}

	assisted := req.Assisted && category.SupportsAssistance()
	if assisted && len(s.roster.Idle()) == 0 {
		assisted = false
		result.AssistanceUnavailable = true
	}

	var placement allocation.Placement
	if assisted && req.SpaceID != "" {
		placement, err = s.chosenSpace(req.SpaceID, category)
	} else {
		placement, err = s.allocate(category)
	}
	if err != nil {
		return nil, err
	}

	if assisted {
		employee, err := s.roster.AssignRandom()
		if err != nil {
			return nil, err
		}
		defer s.release(employee.ID)
		result.Employee = employee
	}

	receipt := s.ledger.Open(s.registry.NextReceiptID(), s.now(), req.Disabled)
	s.ledger.BindRate(receipt, placement.Zone.Rate)
	vehicle.Receipt = receipt

	if err := placement.Space.Park(vehicle); err != nil {
		return nil, err
	}

	result.ReceiptID = receipt.ID
	result.ZoneID = placement.Zone.ID
	result.SpaceID = placement.Space.ID

	s.logger.Info("Vehicle parked", map[string]interface{}{
		"plate":      vehicle.LicensePlate,
		"category":   category,
		"space_id":   placement.Space.ID,
		"receipt_id": receipt.ID,
		"assisted":   result.Employee != nil,
	})

	if result.Employee != nil {
		result.Employee.Pool = domain.PoolIdle
	}
	return result, nil
}

// CheckoutVehicle закрывает квитанцию и выставляет счет. Автомобиль остается на месте до оплаты.
func (s *Service) CheckoutVehicle(receiptID int) (*Bill, error) {
	placement, err := s.registry.FindByReceipt(receiptID)
	if err != nil {
		return nil, err
	}

	vehicle := placement.Space.Vehicle
	receipt := vehicle.Receipt

	s.ledger.BindRate(receipt, placement.Zone.Rate)
	if err := s.ledger.Close(receipt, s.now()); err != nil {
		return nil, err
	}

	price, err := s.ledger.Price(receipt)
	if err != nil {
		return nil, err
	}
	fee, err := s.ledger.Charge(receipt, vehicle.Category)
	if err != nil {
		return nil, err
	}
	duration, err := receipt.Duration()
	if err != nil {
		return nil, err
	}
	billable, err := receipt.BillableHours()
	if err != nil {
		return nil, err
	}

	bill := &Bill{
		ReceiptID:     receipt.ID,
		LicensePlate:  vehicle.LicensePlate,
		Category:      vehicle.Category,
		ZoneID:        placement.Zone.ID,
		SpaceID:       placement.Space.ID,
		Start:         receipt.StartDate,
		End:           *receipt.EndDate,
		Hours:         int64(duration / time.Hour),
		Minutes:       int64(duration % time.Hour / time.Minute),
		BillableHours: billable,
		Rate:          placement.Zone.Rate,
		Price:         price,
		Fee:           fee,
	}

	s.logger.Info("Vehicle checked out", map[string]interface{}{
		"receipt_id": receipt.ID,
		"plate":      vehicle.LicensePlate,
		"fee":        fee,
	})
	return bill, nil
}

// CompleteCollection выдает жетон на выезд после оплаты и освобождает место
func (s *Service) CompleteCollection(receiptID int, assisted bool) (*Collection, error) {
	placement, err := s.registry.FindByReceipt(receiptID)
	if err != nil {
		return nil, err
	}

	vehicle := placement.Space.Vehicle
	if !vehicle.Receipt.IsClosed() {
		return nil, fmt.Errorf("%w: receipt %d", domain.ErrReceiptNotClosed, receiptID)
	}

	token, err := s.exits.Issue(s.now())
	if err != nil {
		return nil, err
	}

	collection := &Collection{
		Token:        token,
		LicensePlate: vehicle.LicensePlate,
		SpaceID:      placement.Space.ID,
	}

	if assisted && vehicle.Category.SupportsAssistance() {
		employee, err := s.roster.AssignRandom()
		switch {
		case errors.Is(err, domain.ErrNoIdleEmployee):
			collection.AssistanceUnavailable = true
		case err != nil:
			return nil, err
		default:
			s.release(employee.ID)
			employee.Pool = domain.PoolIdle
			collection.Employee = employee
		}
	}

	placement.Space.Vacate()

	s.logger.Info("Vehicle collected", map[string]interface{}{
		"receipt_id": receiptID,
		"plate":      vehicle.LicensePlate,
		"token_id":   token.ID,
		"assisted":   collection.Employee != nil,
	})
	return collection, nil
}

// ExitParking проверяет жетон на шлагбауме и погашает его
func (s *Service) ExitParking(tokenID int) error {
	return s.exits.Consume(tokenID, s.now())
}

// ValidateToken проверяет жетон, не погашая его
func (s *Service) ValidateToken(tokenID int) domain.TokenStatus {
	return s.exits.Validate(tokenID, s.now())
}

func (s *Service) allocate(category domain.VehicleCategory) (allocation.Placement, error) {
	if s.retryZones {
		return s.allocator.AllocateAcrossZones(category)
	}
	return s.allocator.Allocate(category)
}

// chosenSpace проверяет место, выбранное сотрудником
func (s *Service) chosenSpace(spaceID string, category domain.VehicleCategory) (allocation.Placement, error) {
	placement, err := s.registry.SpaceByID(spaceID)
	if err != nil {
		return allocation.Placement{}, err
	}
	if !placement.Zone.Accepts(category) {
		return allocation.Placement{}, fmt.Errorf("%w: %s in zone %s", domain.ErrCategoryNotAccepted, category, placement.Zone.ID)
	}
	if !placement.Space.IsFree() {
		return allocation.Placement{}, fmt.Errorf("%w: %s", domain.ErrSpaceOccupied, spaceID)
	}
	return placement, nil
}

func (s *Service) release(employeeID int) {
	if _, err := s.roster.Release(employeeID); err != nil {
		s.logger.Error("Failed to release employee", map[string]interface{}{
			"employee_id": employeeID,
			"error":       err,
		})
	}
}
