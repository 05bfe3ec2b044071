package agency

import "context"

func (s *Service) GetTarget(ctx context.Context, id uint64) (Target, error) {
	var t Target
	err := s.store.View(ctx, func(v View) error {
		var err error
		t, err = v.GetTarget(id)
		return notFound("Target", err)
	})
	return t, err
}

// UpdateTarget applies patch to an open target of an open mission. Completing
// the last open target completes the mission; nothing ever reopens it.
func (s *Service) UpdateTarget(ctx context.Context, id uint64, patch TargetPatch) (Target, error) {
	var (
		t         Target
		completed bool
	)
	err := s.store.Update(ctx, func(tx Tx) error {
		var err error
		if t, err = tx.GetTarget(id); err != nil {
			return notFound("Target", err)
		}
		m, err := tx.GetMission(t.MissionID)
		if err != nil {
			return err
		}
		if t.IsCompleted || m.IsCompleted {
			return newError(ErrLocked, "Cannot update notes for completed target or mission")
		}

		if patch.Notes != nil {
			t.Notes = *patch.Notes
		}
		if patch.IsCompleted != nil {
			t.IsCompleted = *patch.IsCompleted
		}
		if err := tx.UpdateTarget(t); err != nil {
			return err
		}

		if patch.IsCompleted == nil || !t.IsCompleted {
			return nil
		}
		for i := range m.Targets {
			if m.Targets[i].ID == t.ID {
				m.Targets[i] = t
			}
		}
		if !m.AllTargetsCompleted() {
			return nil
		}
		completed = true
		return tx.MarkMissionCompleted(m.ID)
	})
	if err != nil {
		return Target{}, err
	}

	evs := []Event{{Type: EventTargetUpdated, MissionID: t.MissionID, TargetID: t.ID}}
	if completed {
		evs = append(evs, Event{Type: EventMissionCompleted, MissionID: t.MissionID})
	}
	s.emit(ctx, evs...)
	return t, nil
}
