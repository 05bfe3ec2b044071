package agency

import (
	"context"
	"fmt"
	"strings"
)

// CreateMission stores a new mission together with its targets. Targets start
// open with empty notes.
func (s *Service) CreateMission(ctx context.Context, targets []NewTarget) (Mission, error) {
	if len(targets) < MinTargets || len(targets) > MaxTargets {
		return Mission{}, newError(ErrInvalidCardinality, "Mission must have between 1 and 3 targets")
	}

	m := Mission{Targets: make([]Target, 0, len(targets))}
	for i, in := range targets {
		name, country := strings.TrimSpace(in.Name), strings.TrimSpace(in.Country)
		if name == "" || country == "" {
			return Mission{}, newError(ErrInvalidInput, fmt.Sprintf("target %d: name and country are required", i))
		}
		m.Targets = append(m.Targets, Target{Name: name, Country: country})
	}

	err := s.store.Update(ctx, func(tx Tx) error {
		return tx.CreateMission(&m)
	})
	if err != nil {
		return Mission{}, err
	}

	s.emit(ctx, Event{Type: EventMissionCreated, MissionID: m.ID})
	return m, nil
}

func (s *Service) ListMissions(ctx context.Context) ([]Mission, error) {
	var missions []Mission
	err := s.store.View(ctx, func(v View) error {
		var err error
		missions, err = v.ListMissions()
		return err
	})
	return missions, err
}

func (s *Service) GetMission(ctx context.Context, id uint64) (Mission, error) {
	var m Mission
	err := s.store.View(ctx, func(v View) error {
		var err error
		m, err = v.GetMission(id)
		return notFound("Mission", err)
	})
	return m, err
}

// AssignCat sets the mission's cat, or clears it when catID is nil. A cat
// may be referenced by at most one mission; reassigning a mission that
// already holds a cat is allowed.
func (s *Service) AssignCat(ctx context.Context, missionID uint64, catID *uint64) (Mission, error) {
	var (
		m        Mission
		previous *uint64
	)
	err := s.store.Update(ctx, func(tx Tx) error {
		var err error
		if m, err = tx.GetMission(missionID); err != nil {
			return notFound("Mission", err)
		}
		previous = m.CatID

		if catID != nil {
			if _, err := tx.GetSpyCat(*catID); err != nil {
				return notFound("Spy cat", err)
			}
			other, err := tx.MissionByCat(*catID)
			switch {
			case err == nil && other.ID != missionID:
				return newError(ErrAlreadyAssigned, "Cat already has an active mission")
			case err != nil && !isNotFound(err):
				return err
			}
		}

		if err := tx.SetMissionCat(missionID, catID); err != nil {
			return err
		}
		m.CatID = catID
		return nil
	})
	if err != nil {
		return Mission{}, err
	}

	switch {
	case catID != nil:
		s.emit(ctx, Event{Type: EventMissionAssigned, MissionID: missionID, CatID: *catID})
	case previous != nil:
		s.emit(ctx, Event{Type: EventMissionUnassigned, MissionID: missionID, CatID: *previous})
	}
	return m, nil
}

// DeleteMission removes an unassigned mission and its targets.
func (s *Service) DeleteMission(ctx context.Context, id uint64) error {
	err := s.store.Update(ctx, func(tx Tx) error {
		m, err := tx.GetMission(id)
		if err != nil {
			return notFound("Mission", err)
		}
		if m.CatID != nil {
			return newError(ErrHasAssignment, "Cannot delete mission assigned to a cat")
		}
		return tx.DeleteMission(id)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, Event{Type: EventMissionDeleted, MissionID: id})
	return nil
}
