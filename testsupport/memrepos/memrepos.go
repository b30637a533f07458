// Package memrepos provides in-memory repositories for handler tests.
// Deleting an event or session does not cascade.
package memrepos

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mpapenbr/race-engineer-service-go/pkg/model"
	"github.com/mpapenbr/race-engineer-service-go/pkg/repository/api"
)

type (
	Repositories struct {
		events   *table[model.RaceEvent]
		sessions *table[model.Session]
		laps     *table[model.Lap]
		tires    *table[model.TireData]
		engine   *table[model.EngineData]
		setups   *table[model.SetupData]
	}
	// table keeps copies of the stored records
	table[T any] struct {
		mu     sync.Mutex
		name   string
		nextID int
		rows   map[int]*T
		id     func(*T) *int
		parent func(*T) int
	}
	eventRepo   struct{ t *table[model.RaceEvent] }
	sessionRepo struct{ t *table[model.Session] }
	lapRepo     struct{ t *table[model.Lap] }
	tireRepo    struct{ t *table[model.TireData] }
	engineRepo  struct{ t *table[model.EngineData] }
	setupRepo   struct{ t *table[model.SetupData] }
	txManager   struct{}
)

var (
	_ api.Repositories       = (*Repositories)(nil)
	_ api.TransactionManager = txManager{}
)

func New() *Repositories {
	return &Repositories{
		events: newTable("race_event",
			func(e *model.RaceEvent) *int { return &e.ID },
			func(e *model.RaceEvent) int { return 0 }),
		sessions: newTable("session",
			func(s *model.Session) *int { return &s.ID },
			func(s *model.Session) int { return s.EventID }),
		laps: newTable("lap",
			func(l *model.Lap) *int { return &l.ID },
			func(l *model.Lap) int { return l.SessionID }),
		tires: newTable("tire_data",
			func(t *model.TireData) *int { return &t.ID },
			func(t *model.TireData) int { return t.SessionID }),
		engine: newTable("engine_data",
			func(e *model.EngineData) *int { return &e.ID },
			func(e *model.EngineData) int { return e.SessionID }),
		setups: newTable("setup_data",
			func(s *model.SetupData) *int { return &s.ID },
			func(s *model.SetupData) int { return s.SessionID }),
	}
}

// TxManager runs the function without transaction semantics
func TxManager() api.TransactionManager { return txManager{} }

func (txManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (r *Repositories) Event() api.EventRepository     { return &eventRepo{r.events} }
func (r *Repositories) Session() api.SessionRepository { return &sessionRepo{r.sessions} }
func (r *Repositories) Lap() api.LapRepository         { return &lapRepo{r.laps} }
func (r *Repositories) Tire() api.TireRepository       { return &tireRepo{r.tires} }
func (r *Repositories) Engine() api.EngineRepository   { return &engineRepo{r.engine} }
func (r *Repositories) Setup() api.SetupRepository     { return &setupRepo{r.setups} }

func newTable[T any](name string, id func(*T) *int, parent func(*T) int) *table[T] {
	return &table[T]{name: name, rows: map[int]*T{}, id: id, parent: parent}
}

func (t *table[T]) insert(rec *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	*t.id(rec) = t.nextID
	c := *rec
	t.rows[t.nextID] = &c
}

func (t *table[T]) get(id int) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s %d", api.ErrNoRows, t.name, id)
	}
	c := *rec
	return &c, nil
}

func (t *table[T]) put(rec *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := *t.id(rec)
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("%w: %s %d", api.ErrNoRows, t.name, id)
	}
	c := *rec
	t.rows[id] = &c
	return nil
}

// where returns the records of parent ordered by id. parent 0 returns all.
func (t *table[T]) where(parent int) []*T {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]int, 0, len(t.rows))
	for id, rec := range t.rows {
		if parent == 0 || t.parent(rec) == parent {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	ret := make([]*T, len(ids))
	for i, id := range ids {
		c := *t.rows[id]
		ret[i] = &c
	}
	return ret
}

func (t *table[T]) remove(id int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return 0
	}
	delete(t.rows, id)
	return 1
}

func (r *eventRepo) Create(_ context.Context, e *model.RaceEvent) error {
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.t.insert(e)
	return nil
}

func (r *eventRepo) LoadByID(_ context.Context, id int) (*model.RaceEvent, error) {
	return r.t.get(id)
}

func (r *eventRepo) LoadAll(context.Context) ([]*model.RaceEvent, error) {
	return r.t.where(0), nil
}

func (r *eventRepo) Update(_ context.Context, e *model.RaceEvent) error {
	e.UpdatedAt = time.Now()
	return r.t.put(e)
}

func (r *eventRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}

func (r *sessionRepo) Create(ctx context.Context, s *model.Session) error {
	if s.SessionNumber < 1 {
		n, err := r.NextSessionNumber(ctx, s.EventID, s.SessionType)
		if err != nil {
			return err
		}
		s.SessionNumber = n
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.t.insert(s)
	return nil
}

func (r *sessionRepo) LoadByID(_ context.Context, id int) (*model.Session, error) {
	return r.t.get(id)
}

func (r *sessionRepo) LoadByEventID(_ context.Context, eventID int) ([]*model.Session, error) {
	return r.t.where(eventID), nil
}

//nolint:whitespace // editor/linter issue
func (r *sessionRepo) NextSessionNumber(
	_ context.Context, eventID int, t model.SessionType,
) (int, error) {
	return model.NextSessionNumber(r.t.where(eventID), t), nil
}

func (r *sessionRepo) Update(_ context.Context, s *model.Session) error {
	s.UpdatedAt = time.Now()
	return r.t.put(s)
}

func (r *sessionRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}

func (r *lapRepo) Create(_ context.Context, l *model.Lap) error {
	l.CreatedAt = time.Now()
	r.t.insert(l)
	return nil
}

func (r *lapRepo) LoadByID(_ context.Context, id int) (*model.Lap, error) {
	return r.t.get(id)
}

func (r *lapRepo) LoadBySessionID(_ context.Context, sessionID int) ([]*model.Lap, error) {
	ret := r.t.where(sessionID)
	slices.SortStableFunc(ret, func(a, b *model.Lap) int { return a.LapNumber - b.LapNumber })
	return ret, nil
}

func (r *lapRepo) Update(_ context.Context, l *model.Lap) error {
	return r.t.put(l)
}

func (r *lapRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}

func (r *tireRepo) Create(_ context.Context, t *model.TireData) error {
	t.CreatedAt = time.Now()
	r.t.insert(t)
	return nil
}

func (r *tireRepo) LoadByID(_ context.Context, id int) (*model.TireData, error) {
	return r.t.get(id)
}

//nolint:whitespace // editor/linter issue
func (r *tireRepo) LoadBySessionID(_ context.Context, sessionID int) (
	[]*model.TireData, error,
) {
	return r.t.where(sessionID), nil
}

func (r *tireRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}

func (r *engineRepo) Create(_ context.Context, e *model.EngineData) error {
	e.CreatedAt = time.Now()
	r.t.insert(e)
	return nil
}

func (r *engineRepo) LoadByID(_ context.Context, id int) (*model.EngineData, error) {
	return r.t.get(id)
}

//nolint:whitespace // editor/linter issue
func (r *engineRepo) LoadBySessionID(_ context.Context, sessionID int) (
	[]*model.EngineData, error,
) {
	return r.t.where(sessionID), nil
}

func (r *engineRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}

func (r *setupRepo) Create(_ context.Context, s *model.SetupData) error {
	s.CreatedAt = time.Now()
	r.t.insert(s)
	return nil
}

func (r *setupRepo) LoadByID(_ context.Context, id int) (*model.SetupData, error) {
	return r.t.get(id)
}

//nolint:whitespace // editor/linter issue
func (r *setupRepo) LoadBySessionID(_ context.Context, sessionID int) (
	[]*model.SetupData, error,
) {
	return r.t.where(sessionID), nil
}

func (r *setupRepo) DeleteByID(_ context.Context, id int) (int, error) {
	return r.t.remove(id), nil
}
