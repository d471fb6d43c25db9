package plan

import "github.com/dunr-app/dunr/internal/errors"

// ErrNotFound is returned when a session or plan does not exist or belongs to
// another rider.
var ErrNotFound = errors.NewSentinel("not found")

// ErrNoActivePlan is returned when the rider has not generated a plan yet.
var ErrNoActivePlan = errors.NewSentinel("no active plan")
