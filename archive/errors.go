package archive

import "errors"

var (
	// ErrDuplicateProcess is returned when a process ID is registered twice
	// in the same archive.
	ErrDuplicateProcess = errors.New("archive: duplicate process id")

	// ErrProcessNotFound is returned when a lookup targets an unknown process id.
	ErrProcessNotFound = errors.New("archive: process not found")

	// ErrEmptyProcessID is returned by AddProcess when a process has no id.
	ErrEmptyProcessID = errors.New("archive: empty process id")

	// ErrNoReferenceExchange is returned by AllocateByQuantity when a process
	// carries no reference exchanges at all.
	ErrNoReferenceExchange = errors.New("archive: process has no reference exchange")
)
