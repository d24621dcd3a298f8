package util

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrSectionNotFound      = errors.New("section not found")
	ErrTestNotFound         = errors.New("test not found")
	ErrTestAlreadySubmitted = errors.New("test has already been submitted")
	ErrFamilyNotFound       = errors.New("family not found")
	ErrChildNotFound        = errors.New("child not found in your family")

	// Data-authoring invariants. These indicate broken course content and
	// must fail loudly instead of producing a degenerate test.
	ErrTemplateNoInstances = errors.New("question template has no instances")
	ErrSectionNoQuestions  = errors.New("section has no question templates")

	ErrAchievementUnknown = errors.New("unknown achievement code")
)
