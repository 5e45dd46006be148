package service

import "errors"

var (
	// ErrForbidden вызывающий аутентифицирован, но операция ему не разрешена.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidCredentials неверная пара почта/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError описывает отклонённый ввод; на границе API превращается в 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidInput(msg string) error {
	return &ValidationError{Message: msg}
}
