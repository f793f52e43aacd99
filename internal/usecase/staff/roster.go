package staff

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/frontandrew/parking/internal/domain"
	"github.com/frontandrew/parking/internal/pkg/logger"
)

// Roster хранит сотрудников парковки. Каждый сотрудник записан один раз вместе с пулом.
type Roster struct {
	members map[int]*domain.Employee
	rng     *rand.Rand
	logger  logger.Logger
}

// NewRoster создает пустой список сотрудников
func NewRoster(rng *rand.Rand, logger logger.Logger) *Roster {
	return &Roster{
		members: make(map[int]*domain.Employee),
		rng:     rng,
		logger:  logger,
	}
}

// AddIdle добавляет свободного сотрудника с ID = максимальный ID + 1 (или 0)
func (r *Roster) AddIdle(name string) (*domain.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", domain.ErrInvalidEmployeeData)
	}

	e := &domain.Employee{ID: r.nextID(), Name: name, Pool: domain.PoolIdle}
	r.members[e.ID] = e

	r.logger.Info("Employee added", map[string]interface{}{
		"employee_id": e.ID,
		"name":        e.Name,
	})

	copied := *e
	return &copied, nil
}

// RemoveIdle удаляет свободного сотрудника
func (r *Roster) RemoveIdle(id int) (*domain.Employee, error) {
	e, err := r.member(id, domain.PoolIdle)
	if err != nil {
		return nil, err
	}
	delete(r.members, id)

	r.logger.Info("Employee removed", map[string]interface{}{
		"employee_id": id,
	})

	copied := *e
	return &copied, nil
}

// Assign переводит сотрудника из свободных в занятые
func (r *Roster) Assign(id int) (*domain.Employee, error) {
	return r.move(id, domain.PoolIdle, domain.PoolAssigned)
}

// Release возвращает сотрудника в свободные
func (r *Roster) Release(id int) (*domain.Employee, error) {
	return r.move(id, domain.PoolAssigned, domain.PoolIdle)
}

// AssignRandom выбирает случайного свободного сотрудника и назначает его
func (r *Roster) AssignRandom() (*domain.Employee, error) {
	idle := r.Idle()
	if len(idle) == 0 {
		return nil, domain.ErrNoIdleEmployee
	}

	return r.Assign(idle[r.rng.IntN(len(idle))].ID)
}

// Idle возвращает копии свободных сотрудников, упорядоченные по ID
func (r *Roster) Idle() []*domain.Employee {
	return r.inPool(domain.PoolIdle)
}

// Assigned возвращает копии занятых сотрудников, упорядоченные по ID
func (r *Roster) Assigned() []*domain.Employee {
	return r.inPool(domain.PoolAssigned)
}

// Reset заменяет список сотрудников; все переданные считаются свободными
func (r *Roster) Reset(idle []*domain.Employee) {
	r.members = make(map[int]*domain.Employee, len(idle))
	for _, e := range idle {
		r.members[e.ID] = &domain.Employee{ID: e.ID, Name: e.Name, Pool: domain.PoolIdle}
	}
}

// move - единственная операция смены пула, возвращает копию сотрудника
func (r *Roster) move(id int, from, to domain.Pool) (*domain.Employee, error) {
	e, err := r.member(id, from)
	if err != nil {
		return nil, err
	}
	e.Pool = to

	r.logger.Debug("Employee moved", map[string]interface{}{
		"employee_id": id,
		"from":        from,
		"to":          to,
	})

	copied := *e
	return &copied, nil
}

func (r *Roster) member(id int, pool domain.Pool) (*domain.Employee, error) {
	e, ok := r.members[id]
	if !ok || e.Pool != pool {
		return nil, fmt.Errorf("%w: %d not %s", domain.ErrEmployeeNotFound, id, pool)
	}
	return e, nil
}

func (r *Roster) inPool(pool domain.Pool) []*domain.Employee {
	var found []*domain.Employee
	for _, e := range r.members {
		if e.Pool == pool {
			copied := *e
			found = append(found, &copied)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (r *Roster) nextID() int {
	maxID := -1
	for id := range r.members {
		if id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}
