package leaderboard

import "errors"

var (
	// ErrNotLoggedIn is returned by SubmitScore before a successful Login.
	ErrNotLoggedIn = errors.New("leaderboard: not logged in")
	// ErrInvalidScore is returned for scores outside [0, MaxScore].
	ErrInvalidScore = errors.New("leaderboard: invalid score")
	// ErrRateLimited is returned when submissions exceed the configured rate.
	ErrRateLimited = errors.New("leaderboard: rate limited")
)
