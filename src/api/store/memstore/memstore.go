// Package memstore provides an in-memory transactional implementation of
// agency.Store used by tests and ephemeral environments.
package memstore

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

// Compile-time contract assertion.
var _ agency.Store = (*Store)(nil)

type missionRow struct {
	catID       *uint64
	isCompleted bool
}

type state struct {
	cats     map[uint64]agency.SpyCat
	missions map[uint64]missionRow
	targets  map[uint64]agency.Target
	// auto increment counters: cats, missions, targets
	seq [3]uint64
}

func (s state) clone() state {
	c := state{
		cats:     maps.Clone(s.cats),
		missions: make(map[uint64]missionRow, len(s.missions)),
		targets:  maps.Clone(s.targets),
		seq:      s.seq,
	}
	for id, m := range s.missions {
		if m.catID != nil {
			v := *m.catID
			m.catID = &v
		}
		c.missions[id] = m
	}
	return c
}

// Store serialises writers with a mutex; each Update works on a copy of the
// state that replaces the live state only when the callback succeeds.
type Store struct {
	mu    sync.RWMutex
	state state
}

func New() *Store {
	return &Store{state: state{
		cats:     map[uint64]agency.SpyCat{},
		missions: map[uint64]missionRow{},
		targets:  map[uint64]agency.Target{},
	}}
}

func (s *Store) View(ctx context.Context, fn func(agency.View) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&tx{st: &s.state})
}

func (s *Store) Update(ctx context.Context, fn func(agency.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(&tx{st: &working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

type tx struct {
	st *state
}

const (
	seqCats = iota
	seqMissions
	seqTargets
)

func (t *tx) next(table int) uint64 {
	t.st.seq[table]++
	return t.st.seq[table]
}

func notFound(entity string, id uint64) error {
	return fmt.Errorf("%s %d: %w", entity, id, agency.ErrNotFound)
}

func (t *tx) ListSpyCats() ([]agency.SpyCat, error) {
	out := make([]agency.SpyCat, 0, len(t.st.cats))
	for _, id := range slices.Sorted(maps.Keys(t.st.cats)) {
		out = append(out, t.st.cats[id])
	}
	return out, nil
}

func (t *tx) GetSpyCat(id uint64) (agency.SpyCat, error) {
	cat, ok := t.st.cats[id]
	if !ok {
		return agency.SpyCat{}, notFound("spy cat", id)
	}
	return cat, nil
}

func (t *tx) mission(id uint64) agency.Mission {
	row := t.st.missions[id]
	m := agency.Mission{ID: id, IsCompleted: row.isCompleted, Targets: []agency.Target{}}
	if row.catID != nil {
		v := *row.catID
		m.CatID = &v
	}
	for _, tid := range slices.Sorted(maps.Keys(t.st.targets)) {
		if tg := t.st.targets[tid]; tg.MissionID == id {
			m.Targets = append(m.Targets, tg)
		}
	}
	return m
}

func (t *tx) ListMissions() ([]agency.Mission, error) {
	out := make([]agency.Mission, 0, len(t.st.missions))
	for _, id := range slices.Sorted(maps.Keys(t.st.missions)) {
		out = append(out, t.mission(id))
	}
	return out, nil
}

func (t *tx) GetMission(id uint64) (agency.Mission, error) {
	if _, ok := t.st.missions[id]; !ok {
		return agency.Mission{}, notFound("mission", id)
	}
	return t.mission(id), nil
}

func (t *tx) MissionByCat(catID uint64) (agency.Mission, error) {
	for _, id := range slices.Sorted(maps.Keys(t.st.missions)) {
		if c := t.st.missions[id].catID; c != nil && *c == catID {
			return t.mission(id), nil
		}
	}
	return agency.Mission{}, fmt.Errorf("mission for cat %d: %w", catID, agency.ErrNotFound)
}

func (t *tx) GetTarget(id uint64) (agency.Target, error) {
	tg, ok := t.st.targets[id]
	if !ok {
		return agency.Target{}, notFound("target", id)
	}
	return tg, nil
}

func (t *tx) CreateSpyCat(cat *agency.SpyCat) error {
	cat.ID = t.next(seqCats)
	t.st.cats[cat.ID] = *cat
	return nil
}

func (t *tx) UpdateSalary(id uint64, salary int) error {
	cat, ok := t.st.cats[id]
	if !ok {
		return notFound("spy cat", id)
	}
	cat.Salary = salary
	t.st.cats[id] = cat
	return nil
}

func (t *tx) DeleteSpyCat(id uint64) error {
	if _, ok := t.st.cats[id]; !ok {
		return notFound("spy cat", id)
	}
	delete(t.st.cats, id)
	return nil
}

func (t *tx) CreateMission(m *agency.Mission) error {
	m.ID = t.next(seqMissions)
	row := missionRow{isCompleted: m.IsCompleted}
	if m.CatID != nil {
		v := *m.CatID
		row.catID = &v
	}
	t.st.missions[m.ID] = row
	for i := range m.Targets {
		m.Targets[i].ID = t.next(seqTargets)
		m.Targets[i].MissionID = m.ID
		t.st.targets[m.Targets[i].ID] = m.Targets[i]
	}
	return nil
}

func (t *tx) SetMissionCat(missionID uint64, catID *uint64) error {
	row, ok := t.st.missions[missionID]
	if !ok {
		return notFound("mission", missionID)
	}
	if catID != nil {
		for id, other := range t.st.missions {
			if id != missionID && other.catID != nil && *other.catID == *catID {
				return agency.ErrAlreadyAssigned
			}
		}
		v := *catID
		row.catID = &v
	} else {
		row.catID = nil
	}
	t.st.missions[missionID] = row
	return nil
}

func (t *tx) MarkMissionCompleted(missionID uint64) error {
	row, ok := t.st.missions[missionID]
	if !ok {
		return notFound("mission", missionID)
	}
	row.isCompleted = true
	t.st.missions[missionID] = row
	return nil
}

func (t *tx) DeleteMission(id uint64) error {
	if _, ok := t.st.missions[id]; !ok {
		return notFound("mission", id)
	}
	for tid, tg := range t.st.targets {
		if tg.MissionID == id {
			delete(t.st.targets, tid)
		}
	}
	delete(t.st.missions, id)
	return nil
}

func (t *tx) UpdateTarget(tg agency.Target) error {
	if _, ok := t.st.targets[tg.ID]; !ok {
		return notFound("target", tg.ID)
	}
	t.st.targets[tg.ID] = tg
	return nil
}
