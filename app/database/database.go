package database

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by query functions so handlers can map
// storage outcomes to response codes without matching driver error
// strings.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrHasSignups = errors.New("shift has signups")
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
