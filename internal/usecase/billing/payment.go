package billing

import (
	"fmt"
	"math"

	"github.com/frontandrew/parking/internal/domain"
)

// Номиналы принимаемых монет и купюр в сотых долях единицы
var acceptedCoins = map[int64]struct{}{
	2000: {}, 1000: {}, 500: {}, 200: {}, 100: {}, 50: {}, 20: {}, 10: {},
}

// AcceptedCoins возвращает номиналы по убыванию
func AcceptedCoins() []float64 {
	return []float64{20, 10, 5, 2, 1, 0.50, 0.20, 0.10}
}

// PaymentMachine - автомат оплаты одной квитанции.
// Суммы хранятся в целых сотых долях.
type PaymentMachine struct {
	due  int64
	paid int64
}

// NewPaymentMachine создает автомат для суммы к оплате
func NewPaymentMachine(amount float64) *PaymentMachine {
	return &PaymentMachine{due: toCents(amount)}
}

// Insert принимает монету. Неизвестный номинал не меняет состояние.
func (m *PaymentMachine) Insert(coin float64) error {
	cents := toCents(coin)
	if _, ok := acceptedCoins[cents]; !ok {
		return fmt.Errorf("%w: %.2f", domain.ErrInvalidCoin, coin)
	}
	if m.IsPaid() {
		return nil
	}
	m.paid += cents
	return nil
}

// Remaining возвращает оставшуюся сумму к оплате
func (m *PaymentMachine) Remaining() float64 {
	if m.paid >= m.due {
		return 0
	}
	return fromCents(m.due - m.paid)
}

// IsPaid проверяет, внесена ли вся сумма. Нулевая сумма считается оплаченной сразу.
func (m *PaymentMachine) IsPaid() bool {
	return m.paid >= m.due
}

// Change возвращает сдачу
func (m *PaymentMachine) Change() float64 {
	if m.paid <= m.due {
		return 0
	}
	return fromCents(m.paid - m.due)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
