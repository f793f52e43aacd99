package domain

import "strings"

// Pool - состояние сотрудника
type Pool string

const (
	PoolIdle     Pool = "idle"     // Свободен
	PoolAssigned Pool = "assigned" // Перегоняет автомобиль
)

// Employee - сотрудник парковки.
// Один и тот же сотрудник (ID, имя) в каждый момент находится ровно в одном пуле.
type Employee struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Pool Pool   `json:"pool"`
}

// IsIdle проверяет, свободен ли сотрудник
func (e *Employee) IsIdle() bool {
	return e.Pool == PoolIdle
}

// Validate проверяет корректность данных сотрудника
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrInvalidEmployeeData
	}
	if e.ID < 0 {
		return ErrInvalidEmployeeData
	}
	if e.Pool != PoolIdle && e.Pool != PoolAssigned {
		return ErrInvalidEmployeeData
	}
	return nil
}
