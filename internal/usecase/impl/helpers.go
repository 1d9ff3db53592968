// Package impl contains the implementation of the application's business logic.
package impl

import (
	"strings"

	domainerrors "cadastre/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// mapNotFound turns a repository not-found sentinel into the domain error served to clients.
func mapNotFound(err, sentinel error, appErr *domainerrors.BaseError, details string) error {
	if !errors.Is(err, sentinel) {
		return err
	}
	if details != "" {
		return appErr.WithDetails(details)
	}

	return appErr
}

func validationError(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

func requireName(name, field string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validationError(field + " is required")
	}

	return name, nil
}

func validPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func uniqueUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
