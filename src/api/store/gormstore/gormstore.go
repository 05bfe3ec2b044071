// Package gormstore implements agency.Store on MySQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stake-plus/spycat-agency/src/api/agency"
	"github.com/stake-plus/spycat-agency/src/api/types"
)

var _ agency.Store = (*Store)(nil)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

// View runs fn in a transaction without row locks, so multi-query reads such
// as missions with their preloaded targets share one InnoDB snapshot.
func (s *Store) View(ctx context.Context, fn func(agency.View) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&tx{db: db})
	})
}

// Update runs fn in a database transaction. Rows read through the Tx are
// locked with SELECT ... FOR UPDATE, which serialises concurrent assignment
// and completion of the same mission.
func (s *Store) Update(ctx context.Context, fn func(agency.Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(&tx{db: db, lock: true})
	})
}

// Ping checks the underlying connection pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type tx struct {
	db   *gorm.DB
	lock bool
}

func (t *tx) q() *gorm.DB {
	if t.lock {
		return t.db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return t.db
}

func translate(entity string, id uint64, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %d: %w", entity, id, agency.ErrNotFound)
	case isDuplicate(err):
		return fmt.Errorf("%s %d: %w", entity, id, agency.ErrAlreadyAssigned)
	default:
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}

func orderTargets(db *gorm.DB) *gorm.DB { return db.Order("id asc") }

func (t *tx) ListSpyCats() ([]agency.SpyCat, error) {
	var rows []types.SpyCat
	if err := t.db.Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]agency.SpyCat, 0, len(rows))
	for _, r := range rows {
		out = append(out, toSpyCat(r))
	}
	return out, nil
}

func (t *tx) GetSpyCat(id uint64) (agency.SpyCat, error) {
	var row types.SpyCat
	if err := t.q().First(&row, id).Error; err != nil {
		return agency.SpyCat{}, translate("spy cat", id, err)
	}
	return toSpyCat(row), nil
}

func (t *tx) ListMissions() ([]agency.Mission, error) {
	var rows []types.Mission
	if err := t.db.Preload("Targets", orderTargets).Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]agency.Mission, 0, len(rows))
	for _, r := range rows {
		out = append(out, toMission(r))
	}
	return out, nil
}

func (t *tx) GetMission(id uint64) (agency.Mission, error) {
	var row types.Mission
	if err := t.q().Preload("Targets", orderTargets).First(&row, id).Error; err != nil {
		return agency.Mission{}, translate("mission", id, err)
	}
	return toMission(row), nil
}

func (t *tx) MissionByCat(catID uint64) (agency.Mission, error) {
	var row types.Mission
	err := t.q().Preload("Targets", orderTargets).Where("cat_id = ?", catID).First(&row).Error
	if err != nil {
		return agency.Mission{}, translate("mission for cat", catID, err)
	}
	return toMission(row), nil
}

func (t *tx) GetTarget(id uint64) (agency.Target, error) {
	var row types.Target
	if err := t.q().First(&row, id).Error; err != nil {
		return agency.Target{}, translate("target", id, err)
	}
	return toTarget(row), nil
}

func (t *tx) CreateSpyCat(cat *agency.SpyCat) error {
	row := fromSpyCat(*cat)
	if err := t.db.Create(&row).Error; err != nil {
		return err
	}
	cat.ID = row.ID
	return nil
}

func (t *tx) UpdateSalary(id uint64, salary int) error {
	res := t.db.Model(&types.SpyCat{}).Where("id = ?", id).Update("salary", salary)
	if res.Error != nil {
		return translate("spy cat", id, res.Error)
	}
	return nil
}

func (t *tx) DeleteSpyCat(id uint64) error {
	res := t.db.Delete(&types.SpyCat{}, id)
	if res.Error != nil {
		return translate("spy cat", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("spy cat", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (t *tx) CreateMission(m *agency.Mission) error {
	row := fromMission(*m)
	if err := t.db.Create(&row).Error; err != nil {
		return err
	}
	*m = toMission(row)
	return nil
}

func (t *tx) SetMissionCat(missionID uint64, catID *uint64) error {
	res := t.db.Model(&types.Mission{}).Where("id = ?", missionID).Update("cat_id", catID)
	return translate("mission", missionID, res.Error)
}

func (t *tx) MarkMissionCompleted(missionID uint64) error {
	res := t.db.Model(&types.Mission{}).Where("id = ?", missionID).Update("is_completed", true)
	return translate("mission", missionID, res.Error)
}

// DeleteMission removes the owned targets before the mission row, in the
// caller's transaction.
func (t *tx) DeleteMission(id uint64) error {
	if err := t.db.Where("mission_id = ?", id).Delete(&types.Target{}).Error; err != nil {
		return translate("mission", id, err)
	}
	res := t.db.Delete(&types.Mission{}, id)
	if res.Error != nil {
		return translate("mission", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("mission", id, gorm.ErrRecordNotFound)
	}
	return nil
}

func (t *tx) UpdateTarget(tg agency.Target) error {
	res := t.db.Model(&types.Target{}).Where("id = ?", tg.ID).Updates(map[string]interface{}{
		"notes":        tg.Notes,
		"is_completed": tg.IsCompleted,
	})
	return translate("target", tg.ID, res.Error)
}
