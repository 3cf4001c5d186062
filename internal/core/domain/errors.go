package domain

import "errors"

var (
	// ErrInvalidCredentials covers both unknown username and wrong password,
	// so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrAdminExists        = errors.New("admin already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrSessionNotFound    = errors.New("session not found")

	ErrImageNotFound      = errors.New("image not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidOrientation = errors.New("invalid orientation")

	// ErrMediaUpload and ErrMediaDelete wrap media-host failures; no local
	// state is changed when they occur.
	ErrMediaUpload = errors.New("media host upload failed")
	ErrMediaDelete = errors.New("media host deletion failed")

	// ErrPersistence marks a database failure that happened after a remote
	// side effect already succeeded. The two stores have diverged and the
	// condition needs reconciliation, not a crash.
	ErrPersistence = errors.New("persistence failure")
)
