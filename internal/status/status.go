// Package status defines the order lifecycle: new orders are either
// rejected outright or move through preparing to delivered.
package status

import (
	"fmt"
	"strings"

	"voice-orders/pkg/models"
)

// Transitions lists the lifecycle moves staff can trigger. Delivered and
// rejected have no outgoing edges.
var Transitions = map[string][]string{
	models.StatusNew:       {models.StatusPreparing, models.StatusRejected},
	models.StatusPreparing: {models.StatusDelivered},
	models.StatusDelivered: {},
	models.StatusRejected:  {},
}

// AllowedTargets are the statuses a staff update may name. "new" is never
// a valid target: orders only enter it at creation.
var AllowedTargets = []string{
	models.StatusPreparing,
	models.StatusDelivered,
	models.StatusRejected,
}

// ValidTarget reports whether a requested status is an accepted update
// target. Only membership is checked, not the current→target pair; the
// strict pair check in Transitions is kept for when that gets tightened.
func ValidTarget(target string) bool {
	for _, s := range AllowedTargets {
		if s == target {
			return true
		}
	}
	return false
}

// ValidTransition reports whether moving current→target follows the
// lifecycle graph. Not consulted by the update path today.
func ValidTransition(current, target string) bool {
	for _, s := range Transitions[current] {
		if s == target {
			return true
		}
	}
	return false
}

// ErrInvalidTarget is the validation error for a status outside the
// allowed set.
var ErrInvalidTarget = fmt.Errorf("invalid status, must be one of: %s", strings.Join(AllowedTargets, ", "))
