package service

import (
	"errors"
	"fmt"
)

// Sentinel errors for service layer
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrCaptchaFailed = errors.New("captcha verification failed")

	ErrFormNotFound = fmt.Errorf("form session %w", ErrNotFound)
	ErrUnknownField = fmt.Errorf("%w: unknown form field", ErrValidation)
)
