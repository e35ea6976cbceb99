package services

import (
	"context"
	"errors"

	"productcatalog/internal/database"
	apperrors "productcatalog/internal/errors"
)

// translate maps repository failures onto AppErrors. Cancellation of the
// caller's context is returned unchanged.
func translate(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// translateWrite is translate for inserts and updates, where constraint
// violations identify the offending input.
func translateWrite(err error, input ProductInput) error {
	switch {
	case database.IsKind(err, database.KindConflict):
		return apperrors.Wrap(apperrors.DuplicateProductName(input.ProductName), err)
	case database.IsKind(err, database.KindForeignKey):
		return apperrors.Wrap(apperrors.CategoryNotFound(input.CategoryID), err)
	}
	return translate(err)
}
