package repository

import (
	"encoding/json"
	"testing"
	"time"

	"tryout_lms_backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.TryoutAttempt{},
		&model.TryoutAnswer{},
	))
	return db
}

func newAttempt(t *testing.T, repo *AttemptRepository, userID, tryoutID uint) *model.TryoutAttempt {
	t.Helper()
	active := true
	snap, err := json.Marshal(model.TryoutSnapshot{TryoutID: tryoutID, DurationMinutes: 10, MaxScore: 20})
	require.NoError(t, err)
	a := &model.TryoutAttempt{
		UserID:    userID,
		TryoutID:  tryoutID,
		StartedAt: time.Now(),
		MaxScore:  20,
		Snapshot:  snap,
		Active:    &active,
	}
	require.NoError(t, repo.Create(a))
	return a
}

func TestCreateEnforcesSingleActiveAttempt(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	newAttempt(t, repo, 1, 1)

	active := true
	dup := &model.TryoutAttempt{
		UserID: 1, TryoutID: 1, StartedAt: time.Now(), MaxScore: 20,
		Snapshot: json.RawMessage(`{}`), Active: &active,
	}
	err := repo.Create(dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 不同试卷、不同用户都不冲突
	newAttempt(t, repo, 1, 2)
	newAttempt(t, repo, 2, 1)
}

func TestFinalizeFreesActiveSlot(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	a := newAttempt(t, repo, 1, 1)
	won, err := repo.Finalize(a.ID, 7, time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	// active 置 NULL 后同一 (user, tryout) 可以再开
	newAttempt(t, repo, 1, 1)
}

func TestFinalizeOnlyWinsOnce(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))

	a := newAttempt(t, repo, 1, 1)

	won, err := repo.Finalize(a.ID, 7, time.Now())
	require.NoError(t, err)
	assert.True(t, won)

	// 第二次条件更新不生效，分数保持第一次写入的值
	won, err = repo.Finalize(a.ID, 99, time.Now())
	require.NoError(t, err)
	assert.False(t, won)

	stored, err := repo.FindByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.Score)
	assert.True(t, stored.IsCompleted)
	assert.Nil(t, stored.Active)
}

func TestUpsertAnswerKeepsOneRowPerQuestion(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	a := newAttempt(t, repo, 1, 1)

	five := 5
	require.NoError(t, repo.UpsertAnswer(&model.TryoutAnswer{
		AttemptID: a.ID, QuestionID: 1,
		Value: json.RawMessage(`{"optionId":10}`), PointsAwarded: &five,
	}))

	zero := 0
	require.NoError(t, repo.UpsertAnswer(&model.TryoutAnswer{
		AttemptID: a.ID, QuestionID: 1,
		Value: json.RawMessage(`{"optionId":11}`), PointsAwarded: &zero,
	}))

	answers, err := repo.ListAnswers(a.ID)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].PointsAwarded)
	assert.Equal(t, 0, *answers[0].PointsAwarded)

	v, err := answers[0].DecodeValue()
	require.NoError(t, err)
	require.NotNil(t, v.OptionID)
	assert.Equal(t, uint(11), *v.OptionID)
}

func TestSumPointsTreatsPendingAsZero(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	a := newAttempt(t, repo, 1, 1)

	five := 5
	four := 4
	require.NoError(t, repo.UpsertAnswer(&model.TryoutAnswer{
		AttemptID: a.ID, QuestionID: 1, Value: json.RawMessage(`{}`), PointsAwarded: &five,
	}))
	require.NoError(t, repo.UpsertAnswer(&model.TryoutAnswer{
		AttemptID: a.ID, QuestionID: 2, Value: json.RawMessage(`{}`), PointsAwarded: &four,
	}))
	// essay: points_awarded 为 NULL
	require.NoError(t, repo.UpsertAnswer(&model.TryoutAnswer{
		AttemptID: a.ID, QuestionID: 3, Value: json.RawMessage(`{"text":"x"}`),
	}))

	sum, err := repo.SumPoints(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, sum)
}

func TestSumPointsEmptyAttempt(t *testing.T) {
	repo := NewAttemptRepository(newTestDB(t))
	a := newAttempt(t, repo, 1, 1)

	sum, err := repo.SumPoints(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, sum)
}
