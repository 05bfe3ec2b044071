package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/spycat-agency/src/api/agency"
)

func TestUpdate_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx agency.Tx) error {
		m := agency.Mission{Targets: []agency.Target{{Name: "A", Country: "B"}}}
		require.NoError(t, tx.CreateMission(&m))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.View(ctx, func(v agency.View) error {
		missions, err := v.ListMissions()
		require.NoError(t, err)
		assert.Empty(t, missions)
		return nil
	}))
}

func TestSetMissionCat_Unique(t *testing.T) {
	ctx := context.Background()
	s := New()

	var cat agency.SpyCat
	var m1, m2 agency.Mission
	require.NoError(t, s.Update(ctx, func(tx agency.Tx) error {
		cat = agency.SpyCat{Name: "Tom", Breed: "Siamese"}
		require.NoError(t, tx.CreateSpyCat(&cat))
		m1 = agency.Mission{Targets: []agency.Target{{Name: "A", Country: "B"}}}
		m2 = agency.Mission{Targets: []agency.Target{{Name: "C", Country: "D"}}}
		require.NoError(t, tx.CreateMission(&m1))
		return tx.CreateMission(&m2)
	}))

	err := s.Update(ctx, func(tx agency.Tx) error {
		require.NoError(t, tx.SetMissionCat(m1.ID, &cat.ID))
		return tx.SetMissionCat(m2.ID, &cat.ID)
	})
	require.ErrorIs(t, err, agency.ErrAlreadyAssigned)

	// the whole transaction rolled back, including the first assignment
	require.NoError(t, s.View(ctx, func(v agency.View) error {
		_, err := v.MissionByCat(cat.ID)
		assert.ErrorIs(t, err, agency.ErrNotFound)
		return nil
	}))
}

func TestIDsPerTable(t *testing.T) {
	ctx := context.Background()
	s := New()

	var cat agency.SpyCat
	var m agency.Mission
	require.NoError(t, s.Update(ctx, func(tx agency.Tx) error {
		cat = agency.SpyCat{Name: "Tom"}
		require.NoError(t, tx.CreateSpyCat(&cat))
		m = agency.Mission{Targets: []agency.Target{{Name: "A"}, {Name: "B"}}}
		return tx.CreateMission(&m)
	}))

	assert.Equal(t, uint64(1), cat.ID)
	assert.Equal(t, uint64(1), m.ID)
	assert.Equal(t, uint64(1), m.Targets[0].ID)
	assert.Equal(t, uint64(2), m.Targets[1].ID)
	assert.Equal(t, m.ID, m.Targets[1].MissionID)
}

func TestView_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := New()

	var m agency.Mission
	var cat agency.SpyCat
	require.NoError(t, s.Update(ctx, func(tx agency.Tx) error {
		cat = agency.SpyCat{Name: "Tom"}
		require.NoError(t, tx.CreateSpyCat(&cat))
		m = agency.Mission{Targets: []agency.Target{{Name: "A"}}}
		require.NoError(t, tx.CreateMission(&m))
		return tx.SetMissionCat(m.ID, &cat.ID)
	}))

	require.NoError(t, s.View(ctx, func(v agency.View) error {
		got, err := v.GetMission(m.ID)
		require.NoError(t, err)
		*got.CatID = 999
		return nil
	}))

	require.NoError(t, s.View(ctx, func(v agency.View) error {
		got, err := v.GetMission(m.ID)
		require.NoError(t, err)
		assert.Equal(t, cat.ID, *got.CatID)
		return nil
	}))
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	err := s.Update(ctx, func(agency.Tx) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}
