package billing

import (
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

// Ledger открывает, закрывает и тарифицирует квитанции
type Ledger struct {
	logger logger.Logger
}

// NewLedger создает новый экземпляр Ledger
func NewLedger(logger logger.Logger) *Ledger {
	return &Ledger{logger: logger}
}

// Open создает открытую квитанцию без тарифа
func (l *Ledger) Open(id int, now time.Time, disabled bool) *domain.ParkingReceipt {
	l.logger.Debug("Receipt opened", map[string]interface{}{
		"receipt_id": id,
		"disabled":   disabled,
	})
	return domain.NewParkingReceipt(id, now, disabled)
}

// Close закрывает квитанцию; при now раньше начала квитанция остается открытой
func (l *Ledger) Close(receipt *domain.ParkingReceipt, now time.Time) error {
	if err := receipt.Close(now); err != nil {
		l.logger.Warn("Receipt close rejected", map[string]interface{}{
			"receipt_id": receipt.ID,
			"error":      err,
		})
		return err
	}
	return nil
}

// BindRate привязывает тариф зоны к квитанции
func (l *Ledger) BindRate(receipt *domain.ParkingReceipt, rate float64) {
	receipt.BindRate(rate)
}

// Price возвращает стоимость без скидок
func (l *Ledger) Price(receipt *domain.ParkingReceipt) (float64, error) {
	return receipt.Price()
}

// Charge возвращает сумму к оплате с учетом скидок.
// Инвалидам (кроме автобусов) половина цены; если стоянка началась и закончилась в воскресенье - бесплатно.
func (l *Ledger) Charge(receipt *domain.ParkingReceipt, category domain.VehicleCategory) (float64, error) {
	price, err := receipt.Price()
	if err != nil {
		return 0, err
	}

	if !receipt.Disabled {
		return price, nil
	}

	if category != domain.CategoryCoach {
		price /= 2
	}

	// День недели берется в часовом поясе самих меток времени
	if receipt.StartDate.Weekday() == time.Sunday && receipt.EndDate.Weekday() == time.Sunday {
		l.logger.Debug("Sunday exemption applied", map[string]interface{}{
			"receipt_id": receipt.ID,
		})
		price = 0
	}

	return price, nil
}
