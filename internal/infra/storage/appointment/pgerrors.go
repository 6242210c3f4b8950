package appointment

import (
	"errors"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	codeExclusionViolation = "23P01"
	codeUniqueViolation    = "23505"
)

// constraint уникальности ключа идемпотентности из миграций
const idempotencyConstraint = "appointments_business_idempotency_key_uniq"

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeExclusionViolation
}

func isIdempotencyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation && pqErr.Constraint == idempotencyConstraint
}
