package domain

import "errors"

// Ошибки доменной модели.
var (
	// ErrFingerprintRecorded — fingerprint проекта уже записан в этом run.
	ErrFingerprintRecorded = errors.New("fingerprint already recorded")

	// ErrProjectNotFound — проекта нет в workspace.
	ErrProjectNotFound = errors.New("project not found in workspace")
)
