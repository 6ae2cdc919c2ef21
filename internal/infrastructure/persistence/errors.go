package persistence

import (
	"errors"

	"github.com/preorder/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps gorm errors onto domain sentinels. Other errors pass through.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrAlreadyExists
	default:
		return err
	}
}
