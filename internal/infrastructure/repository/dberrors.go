package repository

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/bid-labs/ticketgen/internal/shared/errors"
)

// isDuplicateKey covers drivers with and without gorm error translation.
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
