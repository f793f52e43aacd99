package exit

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

// Registry хранит выданные жетоны на выезд
type Registry struct {
	tokens   map[int]*domain.ExitToken
	validity time.Duration
	rng      *rand.Rand
	logger   logger.Logger
}

// NewRegistry создает пустой реестр жетонов
func NewRegistry(validity time.Duration, rng *rand.Rand, logger logger.Logger) *Registry {
	return &Registry{
		tokens:   make(map[int]*domain.ExitToken),
		validity: validity,
		rng:      rng,
		logger:   logger,
	}
}

// Issue выдает новый жетон с номером, не совпадающим ни с одним действующим
func (r *Registry) Issue(now time.Time) (*domain.ExitToken, error) {
	span := domain.MaxExitTokenID - domain.MinExitTokenID + 1
	if len(r.tokens) >= span {
		return nil, fmt.Errorf("%w: %d issued", domain.ErrNoFreeToken, span)
	}

	id := domain.MinExitTokenID + r.rng.IntN(span)
	for r.tokens[id] != nil {
		id = domain.MinExitTokenID + r.rng.IntN(span)
	}

	token := &domain.ExitToken{ID: id, IssuedAt: now}
	r.tokens[id] = token

	r.logger.Info("Exit token issued", map[string]interface{}{
		"token_id": id,
	})

	copied := *token
	return &copied, nil
}

// Validate проверяет жетон, не изменяя его
func (r *Registry) Validate(id int, now time.Time) domain.TokenStatus {
	token, ok := r.tokens[id]
	if !ok {
		return domain.TokenUnknown
	}
	return token.Status(now, r.validity)
}

// Consume погашает жетон. Просроченный жетон остается в реестре для разбора персоналом.
func (r *Registry) Consume(id int, now time.Time) error {
	switch r.Validate(id, now) {
	case domain.TokenUnknown:
		return fmt.Errorf("%w: %d", domain.ErrTokenNotFound, id)
	case domain.TokenExpired:
		r.logger.Warn("Expired exit token presented", map[string]interface{}{
			"token_id": id,
		})
		return fmt.Errorf("%w: %d", domain.ErrTokenExpired, id)
	}

	delete(r.tokens, id)
	r.logger.Info("Exit token consumed", map[string]interface{}{
		"token_id": id,
	})
	return nil
}

// Tokens возвращает копии жетонов, упорядоченные по номеру
func (r *Registry) Tokens() []*domain.ExitToken {
	tokens := make([]*domain.ExitToken, 0, len(r.tokens))
	for _, t := range r.tokens {
		copied := *t
		tokens = append(tokens, &copied)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].ID < tokens[j].ID })
	return tokens
}

// Reset заменяет все жетоны
func (r *Registry) Reset(tokens []*domain.ExitToken) {
	r.tokens = make(map[int]*domain.ExitToken, len(tokens))
	for _, t := range tokens {
		copied := *t
		r.tokens[t.ID] = &copied
	}
}

// Validity возвращает срок действия жетона
func (r *Registry) Validity() time.Duration {
	return r.validity
}
