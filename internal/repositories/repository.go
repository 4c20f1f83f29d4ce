package repositories

import (
	"errors"
	"strings"

	apperrors "github.com/emilyand-i/AgileWebGroup82/pkg/errors"
	"gorm.io/gorm"
)

// notFoundOr maps gorm.ErrRecordNotFound to a NOT_FOUND error naming what was
// missing and wraps anything else as an internal store failure.
func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Newf(apperrors.KindNotFound, "%s not found", what)
	}
	return apperrors.Internal(err, "failed to load "+what)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching q anywhere.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}
