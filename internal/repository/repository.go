package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// notFound converts gorm.ErrRecordNotFound to the given domain error and
// attaches a stack to anything else.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return pkgerrors.WithStack(err)
}

func deleteByID(ctx context.Context, db *gorm.DB, value interface{}, id uuid.UUID, domainErr error) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(value)
	if res.Error != nil {
		return pkgerrors.WithStack(res.Error)
	}
	if res.RowsAffected == 0 {
		return domainErr
	}
	return nil
}
