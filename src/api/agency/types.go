package agency

import "time"

const (
	MinTargets = 1
	MaxTargets = 3
)

// SpyCat is a field agent.
type SpyCat struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	YearsOfExperience int    `json:"years_of_experience"`
	Breed             string `json:"breed"`
	Salary            int    `json:"salary"`
}

// Mission groups 1-3 targets and is optionally assigned to one cat.
type Mission struct {
	ID          uint64   `json:"id"`
	CatID       *uint64  `json:"cat_id"`
	IsCompleted bool     `json:"is_completed"`
	Targets     []Target `json:"targets"`
}

// AllTargetsCompleted reports whether every target of the mission is done.
// A mission without targets is never complete.
func (m Mission) AllTargetsCompleted() bool {
	if len(m.Targets) == 0 {
		return false
	}
	for _, t := range m.Targets {
		if !t.IsCompleted {
			return false
		}
	}
	return true
}

type Target struct {
	ID          uint64 `json:"id"`
	MissionID   uint64 `json:"mission_id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	Notes       string `json:"notes"`
	IsCompleted bool   `json:"is_completed"`
}

// NewSpyCat is the input to CreateSpyCat.
type NewSpyCat struct {
	Name              string
	YearsOfExperience int
	Breed             string
	Salary            int
}

// NewTarget is one element of the CreateMission input.
type NewTarget struct {
	Name    string
	Country string
}

// TargetPatch carries the optional fields of UpdateTarget. Nil means "leave
// unchanged".
type TargetPatch struct {
	Notes       *string
	IsCompleted *bool
}

// Event types published after a committed state change.
const (
	EventSpyCatCreated     = "spycat.created"
	EventSpyCatUpdated     = "spycat.updated"
	EventSpyCatDeleted     = "spycat.deleted"
	EventMissionCreated    = "mission.created"
	EventMissionAssigned   = "mission.assigned"
	EventMissionUnassigned = "mission.unassigned"
	EventMissionCompleted  = "mission.completed"
	EventMissionDeleted    = "mission.deleted"
	EventTargetUpdated     = "target.updated"
)

type Event struct {
	Type      string
	CatID     uint64
	MissionID uint64
	TargetID  uint64
	At        time.Time
}
