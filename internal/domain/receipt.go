package domain

import (
	"fmt"
	"time"
)

// rateUnset - тариф еще не привязан к квитанции
const rateUnset = -1.0

// ParkingReceipt - квитанция, открывается при парковке и закрывается при выдаче автомобиля.
// Тариф привязывается лениво из зоны: при парковке или при выдаче.
type ParkingReceipt struct {
	ID        int        `json:"id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"` // nil - автомобиль еще на парковке
	Disabled  bool       `json:"is_disabled"`         // Владелец - инвалид (скидки)

	rate float64
}

// NewParkingReceipt создает открытую квитанцию без тарифа.
// Уникальность ID проверяет вызывающий.
func NewParkingReceipt(id int, start time.Time, disabled bool) *ParkingReceipt {
	return &ParkingReceipt{
		ID:        id,
		StartDate: start,
		Disabled:  disabled,
		rate:      rateUnset,
	}
}

// IsClosed проверяет, установлена ли дата окончания
func (r *ParkingReceipt) IsClosed() bool {
	return r.EndDate != nil
}

// Close устанавливает дату окончания. При end раньше start квитанция остается открытой.
func (r *ParkingReceipt) Close(end time.Time) error {
	if end.UnixMilli() < r.StartDate.UnixMilli() {
		return fmt.Errorf("%w: receipt %d", ErrInvalidInterval, r.ID)
	}
	r.EndDate = &end
	return nil
}

// BindRate привязывает почасовой тариф
func (r *ParkingReceipt) BindRate(rate float64) {
	r.rate = rate
}

// Rate возвращает привязанный тариф
func (r *ParkingReceipt) Rate() (float64, error) {
	if r.rate == rateUnset {
		return 0, fmt.Errorf("%w: receipt %d", ErrRateUnbound, r.ID)
	}
	return r.rate, nil
}

// Duration возвращает длительность стоянки закрытой квитанции
func (r *ParkingReceipt) Duration() (time.Duration, error) {
	if !r.IsClosed() {
		return 0, fmt.Errorf("%w: receipt %d", ErrReceiptNotClosed, r.ID)
	}
	return time.Duration(r.EndDate.UnixMilli()-r.StartDate.UnixMilli()) * time.Millisecond, nil
}

// BillableHours - оплачиваемые часы. Каждый начатый час (даже на секунду) считается полным.
// Миллисекунды отбрасываются.
func (r *ParkingReceipt) BillableHours() (int64, error) {
	if !r.IsClosed() {
		return 0, fmt.Errorf("%w: receipt %d", ErrReceiptNotClosed, r.ID)
	}
	millis := r.EndDate.UnixMilli() - r.StartDate.UnixMilli()
	seconds := millis / 1000
	minutes := seconds / 60
	hours := minutes / 60
	if seconds%3600 != 0 {
		hours++
	}
	return hours, nil
}

// Price возвращает стоимость без скидок: оплачиваемые часы * тариф
func (r *ParkingReceipt) Price() (float64, error) {
	rate, err := r.Rate()
	if err != nil {
		return 0, err
	}
	hours, err := r.BillableHours()
	if err != nil {
		return 0, err
	}
	return float64(hours) * rate, nil
}

// Clone возвращает независимую копию квитанции
func (r *ParkingReceipt) Clone() *ParkingReceipt {
	c := *r
	if r.EndDate != nil {
		end := *r.EndDate
		c.EndDate = &end
	}
	return &c
}
