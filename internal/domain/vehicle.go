package domain

import (
	"fmt"
	"strings"
)

// VehicleCategory представляет категорию транспортного средства
type VehicleCategory string

const (
	CategoryStandard  VehicleCategory = "STANDARD"  // Высота до 2 м, длина до 5 м
	CategoryHigher    VehicleCategory = "HIGHER"    // Высота 2-3 м, длина до 5 м
	CategoryLonger    VehicleCategory = "LONGER"    // Высота до 3 м, длина 5.1-6 м
	CategoryMotorbike VehicleCategory = "MOTORBIKE" // Только явный выбор
	CategoryCoach     VehicleCategory = "COACH"     // Только явный выбор, длина до 15 м
)

// Границы размеров (в метрах)
const (
	maxStandardHeight = 2.0
	maxHigherHeight   = 3.0
	maxShortLength    = 5.0
	minLongerLength   = 5.1
	maxLongerLength   = 6.0
	maxCoachLength    = 15.0
)

// Categories возвращает все категории в порядке объявления
func Categories() []VehicleCategory {
	return []VehicleCategory{
		CategoryStandard,
		CategoryHigher,
		CategoryLonger,
		CategoryMotorbike,
		CategoryCoach,
	}
}

// ParseVehicleCategory преобразует строку в категорию (регистр не важен)
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	c := VehicleCategory(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVehicleCategory, s)
}

// IsExplicit сообщает, что категория не выводится из размеров
func (c VehicleCategory) IsExplicit() bool {
	return c == CategoryMotorbike || c == CategoryCoach
}

// SupportsAssistance сообщает, может ли сотрудник перегнать такой транспорт
func (c VehicleCategory) SupportsAssistance() bool {
	return !c.IsExplicit()
}

// Classify определяет категорию по размерам. Первое подходящее правило побеждает.
func Classify(height, length float64) (VehicleCategory, error) {
	switch {
	case height <= 0 || length <= 0:
		return "", ErrVehicleSizeNotSupported
	case height < maxStandardHeight && length < maxShortLength:
		return CategoryStandard, nil
	case height >= maxStandardHeight && height < maxHigherHeight && length < maxShortLength:
		return CategoryHigher, nil
	case height < maxHigherHeight && length >= minLongerLength && length < maxLongerLength:
		return CategoryLonger, nil
	default:
		return "", ErrVehicleSizeNotSupported
	}
}

// ClassifyVehicle учитывает явный выбор вызывающего.
// MOTORBIKE и COACH минуют правила размеров, для COACH проверяется только длина.
// Пустая или любая другая категория выводится из размеров.
func ClassifyVehicle(explicit VehicleCategory, height, length float64) (VehicleCategory, error) {
	switch explicit {
	case CategoryMotorbike:
		return CategoryMotorbike, nil
	case CategoryCoach:
		if length > maxCoachLength {
			return "", ErrVehicleSizeNotSupported
		}
		return CategoryCoach, nil
	default:
		return Classify(height, length)
	}
}

// Vehicle - припаркованный автомобиль
// Категория неизменна после присвоения, у автомобиля ровно одна квитанция
type Vehicle struct {
	LicensePlate string          `json:"license_plate"`
	Category     VehicleCategory `json:"category"`
	Height       float64         `json:"height"`
	Length       float64         `json:"length"`

	Receipt *ParkingReceipt `json:"receipt,omitempty"`
}

// NewVehicle создает автомобиль с нормализованным номером
func NewVehicle(licensePlate string, category VehicleCategory, height, length float64) (*Vehicle, error) {
	plate := NormalizeLicensePlate(licensePlate)
	if plate == "" {
		return nil, ErrInvalidLicensePlate
	}
	return &Vehicle{
		LicensePlate: plate,
		Category:     category,
		Height:       height,
		Length:       length,
	}, nil
}

// NormalizeLicensePlate нормализует номер автомобиля (убирает пробелы, приводит к верхнему регистру)
func NormalizeLicensePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), " ", ""))
}

// Clone возвращает независимую копию автомобиля вместе с квитанцией
func (v *Vehicle) Clone() *Vehicle {
	c := *v
	if v.Receipt != nil {
		c.Receipt = v.Receipt.Clone()
	}
	return &c
}
