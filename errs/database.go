package errs

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Store-level sentinels. Repositories return these (wrapped) instead of raw
// gorm errors so the API boundary never inspects error message text.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateKey  = errors.New("already exists")
	ErrDatabaseQuery = errors.New("database query failed")
)

// Classify translates a gorm error into one of the store sentinels, keeping
// the original error as the wrapped cause. The database's uniqueness
// constraints remain the source of truth for duplicates: we attempt the
// insert and classify the failure, there is no check-then-insert race.
func Classify(operation string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", operation, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", operation, ErrDuplicateKey)
	default:
		return fmt.Errorf("%s: %w: %w", operation, ErrDatabaseQuery, err)
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrDuplicateKey),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// FromStore maps a classified store error onto the ApiErr taxonomy for the
// given entity. Anything that is not a recognized sentinel becomes a 500
// with the cause preserved for server-side logging.
func FromStore(entity string, err error) *ApiErr {
	switch {
	case IsNotFound(err):
		return NewNotFound(entity)
	case IsDuplicateKey(err):
		return NewAlreadyExists(entity)
	default:
		return &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        ErrDatabaseQuery,
			Details:    fmt.Sprintf("failed to access %s", entity),
			Cause:      err,
		}
	}
}
