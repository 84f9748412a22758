package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrClanNotFound    = errors.New("clan not found")
	ErrClanNameTaken   = errors.New("clan name already taken")
	ErrAlreadyMember   = errors.New("already a member of this clan")
	ErrNotClanMember   = errors.New("not a member of this clan")
	ErrMissionNotFound = errors.New("mission not found")
	ErrRoundNotFound   = errors.New("mission round not found")
	ErrQuestNotFound   = errors.New("quest not found")
	ErrQuizNotFound    = errors.New("quiz question not found")

	ErrMissionAlreadyStarted = errors.New("mission already started")
	ErrParticipationNotFound = errors.New("mission not started yet")
	ErrRoundProgressNotFound = errors.New("round progress not found, start the mission first")
	ErrRoundAlreadyStarted   = errors.New("round already started or completed")
	ErrRoundNotInProgress    = errors.New("round is not in progress")
	ErrNoQuizAnswers         = errors.New("quiz answers are required")

	ErrInvalidRoundAction = errors.New("invalid round action, must be create, update or delete")
)
