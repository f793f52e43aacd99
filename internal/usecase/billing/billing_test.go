package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

var (
	monday = time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	sunday = time.Date(2024, time.January, 7, 9, 0, 0, 0, time.UTC)
)

func TestLedger_Charge(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		elapsed  time.Duration
		disabled bool
		category domain.VehicleCategory
		rate     float64
		expected float64
	}{
		{name: "обычный тариф", start: monday, elapsed: 2 * time.Hour, category: domain.CategoryStandard, rate: 3, expected: 6},
		{name: "инвалид - половина", start: monday, elapsed: 2 * time.Hour, disabled: true, category: domain.CategoryStandard, rate: 3, expected: 3},
		{name: "автобус без скидки", start: monday, elapsed: 2 * time.Hour, disabled: true, category: domain.CategoryCoach, rate: 10, expected: 20},
		{name: "воскресенье для инвалида бесплатно", start: sunday, elapsed: 3 * time.Hour, disabled: true, category: domain.CategoryStandard, rate: 3, expected: 0},
		{name: "воскресенье для автобуса инвалида бесплатно", start: sunday, elapsed: time.Hour, disabled: true, category: domain.CategoryCoach, rate: 10, expected: 0},
		{name: "воскресенье без инвалидности платно", start: sunday, elapsed: time.Hour, category: domain.CategoryStandard, rate: 3, expected: 3},
		{name: "с воскресенья на понедельник", start: sunday.Add(14 * time.Hour), elapsed: 2 * time.Hour, disabled: true, category: domain.CategoryStandard, rate: 4, expected: 4},
		{name: "с субботы на воскресенье", start: sunday.Add(-10 * time.Hour), elapsed: 12 * time.Hour, disabled: true, category: domain.CategoryStandard, rate: 4, expected: 24},
	}

	ledger := NewLedger(logger.NewNoop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ledger.Open(1, tt.start, tt.disabled)
			ledger.BindRate(r, tt.rate)
			require.NoError(t, ledger.Close(r, tt.start.Add(tt.elapsed)))

			charge, err := ledger.Charge(r, tt.category)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, charge, 1e-9)
		})
	}
}

func TestLedger_Errors(t *testing.T) {
	ledger := NewLedger(logger.NewNoop())
	r := ledger.Open(3, monday, false)

	_, err := ledger.Charge(r, domain.CategoryStandard)
	assert.ErrorIs(t, err, domain.ErrRateUnbound)

	ledger.BindRate(r, 1)
	_, err = ledger.Price(r)
	assert.ErrorIs(t, err, domain.ErrReceiptNotClosed)

	assert.ErrorIs(t, ledger.Close(r, monday.Add(-time.Second)), domain.ErrInvalidInterval)
	assert.False(t, r.IsClosed())
}

func TestPaymentMachine(t *testing.T) {
	tests := []struct {
		name      string
		amount    float64
		coins     []float64
		paid      bool
		remaining float64
		change    float64
	}{
		{name: "точная сумма", amount: 3, coins: []float64{2, 1}, paid: true},
		{name: "со сдачей", amount: 2.5, coins: []float64{1, 1, 1}, paid: true, change: 0.5},
		{name: "мелочь без погрешности", amount: 0.3, coins: []float64{0.1, 0.1, 0.1}, paid: true},
		{name: "не хватает", amount: 5, coins: []float64{2, 0.5}, remaining: 2.5},
		{name: "нулевая сумма оплачена сразу", amount: 0, paid: true},
		{name: "крупная купюра", amount: 1.5, coins: []float64{20}, paid: true, change: 18.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPaymentMachine(tt.amount)
			for _, c := range tt.coins {
				require.NoError(t, m.Insert(c))
			}
			assert.Equal(t, tt.paid, m.IsPaid())
			assert.InDelta(t, tt.remaining, m.Remaining(), 1e-9)
			assert.InDelta(t, tt.change, m.Change(), 1e-9)
		})
	}
}

func TestPaymentMachine_InvalidCoin(t *testing.T) {
	m := NewPaymentMachine(1)

	assert.ErrorIs(t, m.Insert(3), domain.ErrInvalidCoin)
	assert.ErrorIs(t, m.Insert(0.05), domain.ErrInvalidCoin)
	assert.InDelta(t, 1.0, m.Remaining(), 1e-9)
	assert.Len(t, AcceptedCoins(), 8)
}
