package util

import "errors"

// 答卷引擎错误分类：NotFound / Conflict / Forbidden / Validation /
// Expired。存储层错误不在此列，原样向上传递。
var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")
	ErrWrongPassword   = errors.New("密码错误")

	ErrTryoutNotFound      = errors.New("tryout not found or not active")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrActiveAttemptExists = errors.New("an uncompleted attempt already exists for this tryout")
	ErrAttemptCompleted    = errors.New("attempt already completed")
	ErrAttemptFinished     = errors.New("attempt already finished by another request")
	ErrNotAttemptOwner     = errors.New("attempt belongs to another user")
	ErrQuestionNotInTryout = errors.New("question does not belong to this tryout")
	ErrInvalidQuestion     = errors.New("invalid question structure")
	ErrAnswerShapeMismatch = errors.New("answer value does not match question type")
	ErrAttemptExpired      = errors.New("attempt time budget exhausted")
)
