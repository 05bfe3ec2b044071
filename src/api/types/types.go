package types

import "time"

// Spy cats
type SpyCat struct {
	ID                uint64 `gorm:"primaryKey"`
	Name              string `gorm:"size:128;not null"`
	YearsOfExperience int    `gorm:"not null"`
	Breed             string `gorm:"size:128;not null"`
	Salary            int    `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Missions. The unique index on CatID keeps a cat on at most one mission;
// MySQL allows any number of NULLs in it.
type Mission struct {
	ID          uint64  `gorm:"primaryKey"`
	CatID       *uint64 `gorm:"uniqueIndex"`
	IsCompleted bool    `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Cat         *SpyCat  `gorm:"foreignKey:CatID;constraint:OnDelete:RESTRICT"`
	Targets     []Target `gorm:"foreignKey:MissionID;constraint:OnDelete:CASCADE"`
}

// Mission targets
type Target struct {
	ID          uint64 `gorm:"primaryKey"`
	MissionID   uint64 `gorm:"index;not null"`
	Name        string `gorm:"size:128;not null"`
	Country     string `gorm:"size:64;not null"`
	Notes       string `gorm:"type:text;not null"`
	IsCompleted bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AllModels lists every table in creation order.
var AllModels = []interface{}{
	&SpyCat{}, &Mission{}, &Target{},
}
