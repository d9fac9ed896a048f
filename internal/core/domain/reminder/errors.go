package reminder

import "errors"

var (
	ErrInvalidTitle         = errors.New("reminder title must not be empty")
	ErrTitleNotFound        = errors.New("reminder title not found")
	ErrInvalidDuration      = errors.New("invalid reminder duration")
	ErrReminderTooLate      = errors.New("reminder time is too late")
	ErrInvalidReference     = errors.New("invalid guild, channel or user reference")
	ErrReminderDoesNotExist = errors.New("reminder does not exist")
	ErrReminderPermission   = errors.New("reminder belongs to another user")
	ErrIDGenerationFailed   = errors.New("could not generate unique reminder ID")
)
