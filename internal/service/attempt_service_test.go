package service

import (
	"testing"
	"time"

	"tryout_lms_backend/internal/model"
	"tryout_lms_backend/internal/repository"
	"tryout_lms_backend/internal/util"

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
		&model.Tryout{},
		&model.TryoutQuestion{},
		&model.QuestionOption{},
		&model.TryoutAttempt{},
		&model.TryoutAnswer{},
	))
	return db
}

func newAttemptService(t *testing.T) (*AttemptService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewAttemptService(
		repository.NewTryoutRepository(db),
		repository.NewAttemptRepository(db),
	), db
}

// seedTryout 建一份 10 分钟、满分 19 的试卷：
// 单选 5 分、多选 4 分（两个正确选项）、问答 10 分。
// 返回试卷与各题选项 ID。
func seedTryout(t *testing.T, db *gorm.DB) (*model.Tryout, map[string]uint) {
	t.Helper()
	tryout := &model.Tryout{
		Title:           "期中摸底",
		DurationMinutes: 10,
		IsActive:        true,
	}
	require.NoError(t, db.Create(tryout).Error)

	single := &model.TryoutQuestion{
		TryoutID:     tryout.ID,
		QuestionType: model.SingleChoice,
		Content:      "1+1=?",
		Points:       5,
		Order:        1,
		Options: []model.QuestionOption{
			{Text: "2", Order: 1, IsCorrect: true},
			{Text: "3", Order: 2},
		},
	}
	require.NoError(t, db.Create(single).Error)

	multi := &model.TryoutQuestion{
		TryoutID:     tryout.ID,
		QuestionType: model.MultipleChoice,
		Content:      "偶数有哪些",
		Points:       4,
		Order:        2,
		Options: []model.QuestionOption{
			{Text: "2", Order: 1, IsCorrect: true},
			{Text: "3", Order: 2},
			{Text: "4", Order: 3, IsCorrect: true},
		},
	}
	require.NoError(t, db.Create(multi).Error)

	essay := &model.TryoutQuestion{
		TryoutID:     tryout.ID,
		QuestionType: model.Essay,
		Content:      "谈谈你的理解",
		Points:       10,
		Order:        3,
	}
	require.NoError(t, db.Create(essay).Error)

	ids := map[string]uint{
		"single":       single.ID,
		"singleRight":  single.Options[0].ID,
		"singleWrong":  single.Options[1].ID,
		"multi":        multi.ID,
		"multiRightA":  multi.Options[0].ID,
		"multiWrong":   multi.Options[1].ID,
		"multiRightB":  multi.Options[2].ID,
		"essay":        essay.ID,
	}
	return tryout, ids
}

func backdate(t *testing.T, db *gorm.DB, attemptID string, d time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(&model.TryoutAttempt{}).
		Where("id = ?", attemptID).
		Update("started_at", time.Now().Add(-d)).Error)
}

func TestStartAttempt(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)
	assert.Equal(t, tryout.ID, view.TryoutID)
	assert.Equal(t, 19, view.MaxScore)
	assert.False(t, view.IsCompleted)
	require.NotNil(t, view.Deadline)
	assert.Equal(t, view.StartedAt.Add(10*time.Minute), *view.Deadline)
}

func TestStartAttemptConflict(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)

	first, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	_, err = svc.StartAttempt(1, tryout.ID)
	assert.ErrorIs(t, err, util.ErrActiveAttemptExists)

	// 别的用户不受影响
	_, err = svc.StartAttempt(2, tryout.ID)
	require.NoError(t, err)

	// 交卷后可以再开新答卷
	_, err = svc.FinishAttempt(first.ID, 1)
	require.NoError(t, err)
	_, err = svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)
}

func TestStartAttemptInactiveTryout(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)
	require.NoError(t, db.Model(tryout).Update("is_active", false).Error)

	_, err := svc.StartAttempt(1, tryout.ID)
	assert.ErrorIs(t, err, util.ErrTryoutNotFound)
}

func TestSubmitAndFinish(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	// 单选答对得 5 分
	right := ids["singleRight"]
	res, err := svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)
	require.NotNil(t, res.PointsAwarded)
	assert.Equal(t, 5, *res.PointsAwarded)

	// 多选只选对一半，0 分
	res, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["multi"],
		Value:      model.AnswerValue{OptionIDs: []uint{ids["multiRightA"]}},
	})
	require.NoError(t, err)
	require.NotNil(t, res.PointsAwarded)
	assert.Equal(t, 0, *res.PointsAwarded)

	// 问答待人工批阅
	res, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["essay"],
		Value:      model.AnswerValue{Text: "一点浅见"},
	})
	require.NoError(t, err)
	assert.Nil(t, res.PointsAwarded)
	assert.True(t, res.Pending)

	result, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 19, result.MaxScore)
	assert.NotNil(t, result.EndedAt)
	assert.Len(t, result.Answers, 3)

	// 交卷后提交被拒
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	assert.ErrorIs(t, err, util.ErrAttemptCompleted)
}

func TestFinishIsIdempotent(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	right := ids["singleRight"]
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)

	first, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)

	second, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, first.Score, second.Score)
	assert.True(t, first.EndedAt.Equal(*second.EndedAt))
}

func TestSubmitOverwritesPreviousAnswer(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	wrong := ids["singleWrong"]
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &wrong},
	})
	require.NoError(t, err)

	right := ids["singleRight"]
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)

	// 每题只留一行，以最后一次为准
	var count int64
	require.NoError(t, db.Model(&model.TryoutAnswer{}).
		Where("attempt_id = ?", view.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	result, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Score)
}

func TestSnapshotFreezesTryout(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	// 开卷后编辑分值、下架试卷，都不影响进行中的答卷
	require.NoError(t, db.Model(&model.TryoutQuestion{}).
		Where("id = ?", ids["single"]).Update("points", 100).Error)
	require.NoError(t, db.Model(tryout).Update("is_active", false).Error)

	right := ids["singleRight"]
	res, err := svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, *res.PointsAwarded)

	result, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 19, result.MaxScore)
}

func TestExpiredAttempt(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	right := ids["singleRight"]
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)

	// 把开始时间拨回 11 分钟前，10 分钟的卷子已超时
	backdate(t, db, view.ID, 11*time.Minute)

	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["essay"],
		Value:      model.AnswerValue{Text: "迟到的答案"},
	})
	assert.ErrorIs(t, err, util.ErrAttemptExpired)

	// 超时已收敛到终态，迟到的提交没有入库
	result, err := svc.GetAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, 5, result.Score)
	assert.Len(t, result.Answers, 1)

	// ended_at 封顶在 deadline，不是收敛发生的时刻
	require.NotNil(t, result.EndedAt)
	require.NotNil(t, result.Deadline)
	assert.True(t, result.EndedAt.Equal(*result.Deadline))
}

func TestExpiredAttemptLazyFinalizeOnRead(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	backdate(t, db, view.ID, time.Hour)

	result, err := svc.GetAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
	assert.Equal(t, 0, result.Score)
}

func TestUnboundedTryoutNeverExpires(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)
	require.NoError(t, db.Model(tryout).Update("duration_minutes", 0).Error)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Deadline)

	backdate(t, db, view.ID, 240*time.Hour)

	right := ids["singleRight"]
	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	require.NoError(t, err)
}

func TestAttemptOwnership(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	right := ids["singleRight"]
	_, err = svc.SubmitAnswer(view.ID, 2, &SubmitAnswerRequest{
		QuestionID: ids["single"],
		Value:      model.AnswerValue{OptionID: &right},
	})
	assert.ErrorIs(t, err, util.ErrNotAttemptOwner)

	_, err = svc.FinishAttempt(view.ID, 2)
	assert.ErrorIs(t, err, util.ErrNotAttemptOwner)

	_, err = svc.GetAttempt(view.ID, 2)
	assert.ErrorIs(t, err, util.ErrNotAttemptOwner)
}

func TestFinishClampsScoreToBounds(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, ids := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	// 人工批阅可能写入越界分值，finish 时截断到 [0, maxScore]
	over := 999
	require.NoError(t, db.Create(&model.TryoutAnswer{
		AttemptID:     view.ID,
		QuestionID:    ids["essay"],
		Value:         []byte(`{"text":"x"}`),
		PointsAwarded: &over,
	}).Error)

	result, err := svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 19, result.Score)

	view2, err := svc.StartAttempt(2, tryout.ID)
	require.NoError(t, err)
	under := -50
	require.NoError(t, db.Create(&model.TryoutAnswer{
		AttemptID:     view2.ID,
		QuestionID:    ids["essay"],
		Value:         []byte(`{"text":"y"}`),
		PointsAwarded: &under,
	}).Error)

	result, err = svc.FinishAttempt(view2.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
}

func TestSubmitUnknownQuestion(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(view.ID, 1, &SubmitAnswerRequest{
		QuestionID: 9999,
		Value:      model.AnswerValue{Text: "x"},
	})
	assert.ErrorIs(t, err, util.ErrQuestionNotInTryout)
}

func TestGetAttemptNotFound(t *testing.T) {
	svc, _ := newAttemptService(t)

	_, err := svc.GetAttempt("no-such-attempt", 1)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}

func TestListAttempts(t *testing.T) {
	svc, db := newAttemptService(t)
	tryout, _ := seedTryout(t, db)

	view, err := svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)
	_, err = svc.FinishAttempt(view.ID, 1)
	require.NoError(t, err)
	_, err = svc.StartAttempt(1, tryout.ID)
	require.NoError(t, err)

	views, total, err := svc.ListAttempts(1, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)

	_, total, err = svc.ListAttempts(2, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
