package submission

import "errors"

var (
	ErrNotFound         = errors.New("submission not found")
	ErrEmptyPatch       = errors.New("no update fields provided")
	ErrCannotMarkUnread = errors.New("a read submission cannot be marked unread")
)
