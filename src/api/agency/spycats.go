package agency

import (
	"context"
	"strings"
)

// CreateSpyCat validates the input and the breed, then stores the cat.
func (s *Service) CreateSpyCat(ctx context.Context, in NewSpyCat) (SpyCat, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Breed = strings.TrimSpace(in.Breed)
	switch {
	case in.Name == "":
		return SpyCat{}, newError(ErrInvalidInput, "name is required")
	case in.Breed == "":
		return SpyCat{}, newError(ErrInvalidInput, "breed is required")
	case in.YearsOfExperience < 0:
		return SpyCat{}, newError(ErrInvalidInput, "years_of_experience must not be negative")
	case in.Salary < 0:
		return SpyCat{}, newError(ErrInvalidInput, "salary must not be negative")
	}

	if !s.breeds.IsKnownBreed(ctx, in.Breed) {
		s.log.Info().Str("breed", in.Breed).Msg("rejected unknown breed")
		return SpyCat{}, newError(ErrInvalidBreed, "Invalid cat breed")
	}

	cat := SpyCat{
		Name:              in.Name,
		YearsOfExperience: in.YearsOfExperience,
		Breed:             in.Breed,
		Salary:            in.Salary,
	}
	err := s.store.Update(ctx, func(tx Tx) error {
		return tx.CreateSpyCat(&cat)
	})
	if err != nil {
		return SpyCat{}, err
	}

	s.emit(ctx, Event{Type: EventSpyCatCreated, CatID: cat.ID})
	return cat, nil
}

func (s *Service) ListSpyCats(ctx context.Context) ([]SpyCat, error) {
	var cats []SpyCat
	err := s.store.View(ctx, func(v View) error {
		var err error
		cats, err = v.ListSpyCats()
		return err
	})
	return cats, err
}

func (s *Service) GetSpyCat(ctx context.Context, id uint64) (SpyCat, error) {
	var cat SpyCat
	err := s.store.View(ctx, func(v View) error {
		var err error
		cat, err = v.GetSpyCat(id)
		return notFound("Spy cat", err)
	})
	return cat, err
}

// UpdateSalary is the only mutation allowed on an existing cat.
func (s *Service) UpdateSalary(ctx context.Context, id uint64, salary int) (SpyCat, error) {
	if salary < 0 {
		return SpyCat{}, newError(ErrInvalidInput, "salary must not be negative")
	}

	var cat SpyCat
	err := s.store.Update(ctx, func(tx Tx) error {
		var err error
		if cat, err = tx.GetSpyCat(id); err != nil {
			return notFound("Spy cat", err)
		}
		if err := tx.UpdateSalary(id, salary); err != nil {
			return err
		}
		cat.Salary = salary
		return nil
	})
	if err != nil {
		return SpyCat{}, err
	}

	s.emit(ctx, Event{Type: EventSpyCatUpdated, CatID: id})
	return cat, nil
}

// DeleteSpyCat removes a cat that no mission references.
func (s *Service) DeleteSpyCat(ctx context.Context, id uint64) error {
	err := s.store.Update(ctx, func(tx Tx) error {
		if _, err := tx.GetSpyCat(id); err != nil {
			return notFound("Spy cat", err)
		}
		_, err := tx.MissionByCat(id)
		switch {
		case err == nil:
			return newError(ErrHasActiveMission, "Cannot delete spy cat with active missions")
		case !isNotFound(err):
			return err
		}
		return tx.DeleteSpyCat(id)
	})
	if err != nil {
		return err
	}

	s.emit(ctx, Event{Type: EventSpyCatDeleted, CatID: id})
	return nil
}
