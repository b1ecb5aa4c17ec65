package repositories

import "errors"

var (
	// ErrDuplicateFavorite means the (user, record) pair is already favorited.
	ErrDuplicateFavorite = errors.New("fortune record already favorited")
	// ErrForbidden means the requesting user does not own the row.
	ErrForbidden = errors.New("record is owned by another user")
)
