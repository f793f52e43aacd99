package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
	"github.com/frontandrew/parking/internal/repository"
	"github.com/frontandrew/parking/internal/snapshot"
	"github.com/frontandrew/parking/internal/usecase/billing"
	"github.com/frontandrew/parking/internal/usecase/parking"
)

// FacilityService - операции парковки, доступные из меню
type FacilityService interface {
	Name() string
	ParkVehicle(req parking.ParkRequest) (*parking.ParkResult, error)
	CheckoutVehicle(receiptID int) (*parking.Bill, error)
	CompleteCollection(receiptID int, assisted bool) (*parking.Collection, error)
	ExitParking(tokenID int) error
	FreeSpaceCounts() []parking.ZoneAvailability
	Statistics() []parking.ZoneStatistics
	RemoveVehicle(plate string) (*parking.VehicleInfo, error)
	VehicleInfo(plate string) (*parking.VehicleInfo, error)
	AddEmployee(name string) (*domain.Employee, error)
	RemoveEmployee(id int) (*domain.Employee, error)
	AddZone(id string, rate float64, accepted []domain.VehicleCategory, spaceIDs []string) error
	RemoveZone(id string) error
	Describe() string
	Snapshot() *snapshot.State
}

// errInputClosed - ввод закончился посреди диалога
var errInputClosed = errors.New("input closed")

// Menu - текстовое меню оператора
type Menu struct {
	service FacilityService
	store   repository.SnapshotRepository
	in      *bufio.Scanner
	out     io.Writer
	logger  logger.Logger
}

// NewMenu создает новое меню
func NewMenu(service FacilityService, store repository.SnapshotRepository, in io.Reader, out io.Writer, logger logger.Logger) *Menu {
	return &Menu{
		service: service,
		store:   store,
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
	}
}

// Run показывает меню до выбора Q или конца ввода
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()

		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return nil
		}

		err = m.dispatch(ctx, strings.ToUpper(choice))
		switch {
		case errors.Is(err, errQuit):
			m.println("Thank you for using the parking application. Closing now...")
			return nil
		case errors.Is(err, errInputClosed):
			return nil
		case err != nil:
			m.println(describeError(err))
		}
	}
}

var errQuit = errors.New("quit")

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addVehicle()
	case "2":
		return m.collectVehicle()
	case "3":
		m.freeSpaces()
		return nil
	case "4":
		return m.exitParking()
	case "A":
		m.statistics()
		return nil
	case "B":
		return m.removeVehicle()
	case "C":
		return m.vehicleInfo()
	case "D":
		return m.addEmployee()
	case "E":
		return m.removeEmployee()
	case "F":
		return m.addZone()
	case "G":
		return m.removeZone()
	case "X":
		m.println(m.service.Describe())
		return nil
	case "S":
		return m.save(ctx)
	case "Q":
		return errQuit
	default:
		m.println("This option does not exist! Try again.")
		return nil
	}
}

func (m *Menu) printMenu() {
	m.println("")
	m.println("----- CUSTOMER MENU -----")
	m.println("1. Add a vehicle")
	m.println("2. Collect a vehicle")
	m.println("3. Get number of free parking spaces")
	m.println("4. Exit the parking (with a token)")
	m.println("----- EMPLOYEE MENU -----")
	m.println("A. See parking statistics")
	m.println("B. Remove a vehicle (and its parking receipt)")
	m.println("C. Get info about a vehicle")
	m.println("D. Add an employee")
	m.println("E. Remove an employee")
	m.println("F. Add a parking zone")
	m.println("G. Remove a parking zone")
	m.println("----- APPLICATION MENU -----")
	m.println("X. Describe the parking")
	m.println("S. Save")
	m.println("Q. Quit")
}

func (m *Menu) addVehicle() error {
	plate, err := m.promptNonEmpty("Enter your vehicle's license plate: ")
	if err != nil {
		return err
	}

	var category domain.VehicleCategory
	coach, err := m.promptYesNo("Is your vehicle a coach? [y/n] ")
	if err != nil {
		return err
	}
	if coach {
		category = domain.CategoryCoach
	} else {
		motorbike, err := m.promptYesNo("Is your vehicle a motorbike? [y/n] ")
		if err != nil {
			return err
		}
		if motorbike {
			category = domain.CategoryMotorbike
		}
	}

	height, err := m.promptFloat("What's your vehicle's height (in metres)? ")
	if err != nil {
		return err
	}
	length, err := m.promptFloat("What's your vehicle's length (in metres)? ")
	if err != nil {
		return err
	}
	disabled, err := m.promptYesNo("Are you disabled? [y/n] ")
	if err != nil {
		return err
	}

	req := parking.ParkRequest{
		LicensePlate: plate,
		Height:       height,
		Length:       length,
		Category:     category,
		Disabled:     disabled,
	}

	if !category.IsExplicit() {
		req.Assisted, err = m.promptYesNo("Do you need assistance parking your vehicle? [y/n] ")
		if err != nil {
			return err
		}
		if req.Assisted {
			chosen, err := m.promptYesNo("Employee: park it in a specific parking space? [y/n] ")
			if err != nil {
				return err
			}
			if chosen {
				if req.SpaceID, err = m.promptNonEmpty("Enter parking space ID: "); err != nil {
					return err
				}
				req.SpaceID = strings.ToUpper(req.SpaceID)
			}
		}
	}

	res, err := m.service.ParkVehicle(req)
	if err != nil {
		return err
	}

	if res.AssistanceUnavailable {
		m.println("Sorry, all employees are busy at the moment. You need to park the vehicle yourself.")
	}
	if res.Employee != nil {
		m.printf("Employee %s parked the vehicle in parking space %s.\n", res.Employee.Name, res.SpaceID)
	} else {
		m.printf("Park your vehicle in parking space %s.\n", res.SpaceID)
	}
	m.printf("Your parking receipt number is: %d\n", res.ReceiptID)
	return nil
}

func (m *Menu) collectVehicle() error {
	receiptID, err := m.promptInt("Enter your parking receipt number: ")
	if err != nil {
		return err
	}

	bill, err := m.service.CheckoutVehicle(receiptID)
	if err != nil {
		return err
	}

	m.printf("You've been parked for %d hours %d min and your payment is: %.2f units.\n",
		bill.Hours, bill.Minutes, bill.Fee)

	machine := billing.NewPaymentMachine(bill.Fee)
	for !machine.IsPaid() {
		m.printf("Still to pay: %.2f units\n", machine.Remaining())
		m.println("You can insert: 20.00, 10.00, 5.00, 2.00, 1.00, 0.50, 0.20, 0.10")
		coin, err := m.promptFloat("Insert: ")
		if err != nil {
			return err
		}
		if err := machine.Insert(coin); err != nil {
			m.println(describeError(err))
		}
	}
	if change := machine.Change(); change > 0 {
		m.printf("Your change is %.2f units.\n", change)
	}

	assisted := false
	if bill.Category.SupportsAssistance() {
		if assisted, err = m.promptYesNo("Do you need assistance collecting your vehicle? [y/n] "); err != nil {
			return err
		}
	}

	collection, err := m.service.CompleteCollection(receiptID, assisted)
	if err != nil {
		return err
	}

	if collection.AssistanceUnavailable {
		m.println("Sorry, all employees are busy at the moment. You need to collect the vehicle yourself.")
	}
	if collection.Employee != nil {
		m.printf("Employee %s delivered your vehicle from parking space %s.\n", collection.Employee.Name, collection.SpaceID)
	} else {
		m.printf("Your vehicle is parked in parking space %s.\n", collection.SpaceID)
	}
	m.printf("Head towards the exit barrier. Your exit token is: %d\n", collection.Token.ID)
	return nil
}

func (m *Menu) freeSpaces() {
	m.println("Number of free parking spaces:")
	for _, z := range m.service.FreeSpaceCounts() {
		m.printf("Zone %s -- %d\n", z.ZoneID, z.Free)
	}
}

func (m *Menu) exitParking() error {
	tokenID, err := m.promptInt("Enter your exit token: ")
	if err != nil {
		return err
	}
	if err := m.service.ExitParking(tokenID); err != nil {
		return err
	}
	m.println("Thank you for choosing our parking! Have a great day.")
	return nil
}

func (m *Menu) statistics() {
	m.println("----- Parking statistics -----")
	m.println(m.service.Name())
	for _, z := range m.service.Statistics() {
		m.printf("Parking zone %s (has %d parking spaces)\n", z.ZoneID, len(z.Spaces))
		for _, s := range z.Spaces {
			state := "free"
			if s.Occupied {
				state = "occupied by " + s.LicensePlate
			}
			m.printf("%s -- %s\n", s.SpaceID, state)
		}
	}
}

func (m *Menu) removeVehicle() error {
	plate, err := m.promptNonEmpty("Enter vehicle's license plate: ")
	if err != nil {
		return err
	}
	info, err := m.service.RemoveVehicle(plate)
	if err != nil {
		return err
	}
	m.printf("The vehicle %s has been removed from parking space %s.\n", info.LicensePlate, info.SpaceID)
	return nil
}

func (m *Menu) vehicleInfo() error {
	plate, err := m.promptNonEmpty("Enter vehicle's license plate: ")
	if err != nil {
		return err
	}
	info, err := m.service.VehicleInfo(plate)
	if err != nil {
		return err
	}
	m.printf("%s: %s, %.2f m high, %.2f m long\n", info.LicensePlate, info.Category, info.Height, info.Length)
	m.printf("Parked in %s (zone %s) since %s, receipt %d, disabled: %t\n",
		info.SpaceID, info.ZoneID, info.Since.Format("2006-01-02 15:04"), info.ReceiptID, info.Disabled)
	return nil
}

func (m *Menu) addEmployee() error {
	name, err := m.promptNonEmpty("Enter new employee's name: ")
	if err != nil {
		return err
	}
	e, err := m.service.AddEmployee(name)
	if err != nil {
		return err
	}
	m.printf("The employee %s has been added as employee ID %d\n", e.Name, e.ID)
	return nil
}

func (m *Menu) removeEmployee() error {
	id, err := m.promptInt("Enter employee's ID: ")
	if err != nil {
		return err
	}
	e, err := m.service.RemoveEmployee(id)
	if err != nil {
		return err
	}
	m.printf("Removed employee %s (%d)\n", e.Name, e.ID)
	return nil
}

func (m *Menu) addZone() error {
	id, err := m.promptNonEmpty("Enter zone ID: ")
	if err != nil {
		return err
	}
	rate, err := m.promptFloat("Enter price per hour: ")
	if err != nil {
		return err
	}
	rawCategories, err := m.promptNonEmpty("Accepted vehicles (comma separated): ")
	if err != nil {
		return err
	}
	var accepted []domain.VehicleCategory
	for _, name := range splitList(rawCategories) {
		c, err := domain.ParseVehicleCategory(name)
		if err != nil {
			return err
		}
		accepted = append(accepted, c)
	}
	rawSpaces, err := m.promptNonEmpty("Parking space IDs (comma separated): ")
	if err != nil {
		return err
	}

	id = strings.ToUpper(id)
	if err := m.service.AddZone(id, rate, accepted, splitList(strings.ToUpper(rawSpaces))); err != nil {
		return err
	}
	m.printf("Parking zone %s has been added.\n", id)
	return nil
}

func (m *Menu) removeZone() error {
	id, err := m.promptNonEmpty("Enter zone ID: ")
	if err != nil {
		return err
	}
	id = strings.ToUpper(id)
	if err := m.service.RemoveZone(id); err != nil {
		return err
	}
	m.printf("Parking zone %s has been removed.\n", id)
	return nil
}

func (m *Menu) save(ctx context.Context) error {
	if err := m.store.Save(ctx, snapshot.Encode(m.service.Snapshot())); err != nil {
		m.logger.Error("Failed to save snapshot", map[string]interface{}{
			"error": err,
		})
		return err
	}
	m.println("All changes successfully saved")
	return nil
}

// Ввод

func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", errInputClosed
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) promptNonEmpty(label string) (string, error) {
	for {
		s, err := m.prompt(label)
		if err != nil || s != "" {
			return s, err
		}
	}
}

func (m *Menu) promptYesNo(label string) (bool, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return false, err
		}
		switch strings.ToUpper(s) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
	}
}

func (m *Menu) promptInt(label string) (int, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(s)
		if err == nil {
			return v, nil
		}
		m.println("This is not a valid number!")
	}
}

func (m *Menu) promptFloat(label string) (float64, error) {
	for {
		s, err := m.prompt(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err == nil {
			return v, nil
		}
		m.printf("Invalid value (%s)!\n", s)
	}
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
