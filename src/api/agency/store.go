package agency

import "context"

// Store is the persistence boundary of the lifecycle module. View runs fn
// against one consistent snapshot; every read made inside fn sees the same
// state. Update runs fn inside a transaction that commits when fn returns nil
// and rolls back otherwise.
type Store interface {
	View(ctx context.Context, fn func(View) error) error
	Update(ctx context.Context, fn func(Tx) error) error
}

// View is the read side of a store transaction. Lookups of a missing row
// return an error wrapping ErrNotFound.
type View interface {
	ListSpyCats() ([]SpyCat, error)
	GetSpyCat(id uint64) (SpyCat, error)
	ListMissions() ([]Mission, error)
	// GetMission returns the mission with its targets ordered by id.
	GetMission(id uint64) (Mission, error)
	// MissionByCat returns the mission currently referencing catID.
	MissionByCat(catID uint64) (Mission, error)
	GetTarget(id uint64) (Target, error)
}

// Tx is a read-write store transaction. Reads made through a Tx lock the
// rows they return until the transaction ends.
type Tx interface {
	View

	CreateSpyCat(cat *SpyCat) error
	UpdateSalary(id uint64, salary int) error
	DeleteSpyCat(id uint64) error

	// CreateMission inserts the mission and its targets, filling in ids.
	CreateMission(m *Mission) error
	// SetMissionCat sets or clears (catID == nil) the assignment. A store
	// enforcing uniqueness of the link returns ErrAlreadyAssigned.
	SetMissionCat(missionID uint64, catID *uint64) error
	MarkMissionCompleted(missionID uint64) error
	// DeleteMission removes the mission together with its targets.
	DeleteMission(id uint64) error

	UpdateTarget(t Target) error
}

// BreedClassifier answers whether a breed name is recognised. Implementations
// fail closed: any failure to reach the taxonomy yields false.
type BreedClassifier interface {
	IsKnownBreed(ctx context.Context, breed string) bool
}

// Publisher receives lifecycle events after the owning transaction commits.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}
