package gormstore

import (
	"github.com/stake-plus/spycat-agency/src/api/agency"
	"github.com/stake-plus/spycat-agency/src/api/types"
)

func toSpyCat(r types.SpyCat) agency.SpyCat {
	return agency.SpyCat{
		ID:                r.ID,
		Name:              r.Name,
		YearsOfExperience: r.YearsOfExperience,
		Breed:             r.Breed,
		Salary:            r.Salary,
	}
}

func fromSpyCat(c agency.SpyCat) types.SpyCat {
	return types.SpyCat{
		ID:                c.ID,
		Name:              c.Name,
		YearsOfExperience: c.YearsOfExperience,
		Breed:             c.Breed,
		Salary:            c.Salary,
	}
}

func toTarget(r types.Target) agency.Target {
	return agency.Target{
		ID:          r.ID,
		MissionID:   r.MissionID,
		Name:        r.Name,
		Country:     r.Country,
		Notes:       r.Notes,
		IsCompleted: r.IsCompleted,
	}
}

func toMission(r types.Mission) agency.Mission {
	m := agency.Mission{
		ID:          r.ID,
		CatID:       r.CatID,
		IsCompleted: r.IsCompleted,
		Targets:     make([]agency.Target, 0, len(r.Targets)),
	}
	for _, t := range r.Targets {
		m.Targets = append(m.Targets, toTarget(t))
	}
	return m
}

func fromMission(m agency.Mission) types.Mission {
	row := types.Mission{
		ID:          m.ID,
		CatID:       m.CatID,
		IsCompleted: m.IsCompleted,
		Targets:     make([]types.Target, 0, len(m.Targets)),
	}
	for _, t := range m.Targets {
		row.Targets = append(row.Targets, types.Target{
			ID:          t.ID,
			Name:        t.Name,
			Country:     t.Country,
			Notes:       t.Notes,
			IsCompleted: t.IsCompleted,
		})
	}
	return row
}
