package domain

import "time"

// Границы 4-значного номера жетона
const (
	MinExitTokenID = 1000
	MaxExitTokenID = 9999
)

// DefaultExitTokenValidity - время, за которое нужно доехать до шлагбаума после оплаты
const DefaultExitTokenValidity = 15 * time.Minute

// TokenStatus - результат проверки жетона на выезде
type TokenStatus string

const (
	TokenConsumable TokenStatus = "consumable" // Можно выехать
	TokenExpired    TokenStatus = "expired"    // Время вышло
	TokenUnknown    TokenStatus = "unknown"    // Жетон не выдавался или уже использован
)

// ExitToken - одноразовый жетон на выезд, выдается после оплаты
type ExitToken struct {
	ID       int       `json:"id"`
	IssuedAt time.Time `json:"issued_at"`
}

// IsExpired проверяет, прошло ли больше validity с момента выдачи.
// Прошедшее время считается в целых секундах.
func (t *ExitToken) IsExpired(now time.Time, validity time.Duration) bool {
	return now.Sub(t.IssuedAt).Truncate(time.Second) > validity
}

// Status возвращает состояние жетона на момент now
func (t *ExitToken) Status(now time.Time, validity time.Duration) TokenStatus {
	if t.IsExpired(now, validity) {
		return TokenExpired
	}
	return TokenConsumable
}
