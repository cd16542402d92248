package booking

import (
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type ExtensionState string

const (
	ExtensionIdle       ExtensionState = "idle"
	ExtensionChecking   ExtensionState = "checking"
	ExtensionAvailable  ExtensionState = "available"
	ExtensionConflicted ExtensionState = "conflicted"
)

// ExtensionCheck decides whether a slot can grow to a new end time without
// running into a booked or already absorbed sibling (same merchant, worker
// and date).
//
// The answer is advisory. A sibling may still be booked between the check
// and the write, so the write re-checks with a conditional update.
type ExtensionCheck struct {
	Slot         models.Slot
	CandidateEnd string
	State        ExtensionState
	Conflicts    []models.Slot
}

func NewExtensionCheck(slot models.Slot) *ExtensionCheck {
	return &ExtensionCheck{Slot: slot, State: ExtensionIdle}
}

// Begin moves Idle -> Checking for the given candidate end.
func (c *ExtensionCheck) Begin(candidateEnd string) error {
	if c.State != ExtensionIdle {
		return httperr.ErrConflict("extension_check_in_progress")
	}
	if _, err := ParseClock(candidateEnd); err != nil {
		return err
	}
	c.CandidateEnd = candidateEnd
	c.State = ExtensionChecking
	return nil
}

// Resolve moves Checking -> Available or Conflicted.
func (c *ExtensionCheck) Resolve(siblings []models.Slot) ExtensionState {
	if c.State != ExtensionChecking {
		return c.State
	}

	c.Conflicts = nil
	for _, s := range siblings {
		if c.blocks(s, siblings) {
			c.Conflicts = append(c.Conflicts, s)
		}
	}

	if len(c.Conflicts) > 0 {
		c.State = ExtensionConflicted
	} else {
		c.State = ExtensionAvailable
	}
	return c.State
}

// Covered returns the free siblings the extension would absorb. Siblings
// this slot already absorbed are skipped.
func (c *ExtensionCheck) Covered(siblings []models.Slot) []models.Slot {
	var out []models.Slot
	for _, s := range siblings {
		if c.inRange(s) && !s.IsBooked && s.AbsorbedBy == 0 {
			out = append(out, s)
		}
	}
	return out
}

// blocks reports a sibling in range that is booked or belongs to another
// extended slot.
func (c *ExtensionCheck) blocks(s models.Slot, siblings []models.Slot) bool {
	if !c.inRange(s) {
		return false
	}
	return s.IsBooked || s.AbsorbedBy != 0 || absorbsAny(s.ID, siblings)
}

func (c *ExtensionCheck) inRange(s models.Slot) bool {
	return c.sameLane(s) && s.AbsorbedBy != c.Slot.ID &&
		Overlaps(s.StartTime, s.EndTime, c.Slot.EndTime, c.CandidateEnd)
}

func absorbsAny(id uint, siblings []models.Slot) bool {
	for _, s := range siblings {
		if s.AbsorbedBy == id {
			return true
		}
	}
	return false
}

func (c *ExtensionCheck) sameLane(s models.Slot) bool {
	return s.ID != c.Slot.ID &&
		s.MerchantID == c.Slot.MerchantID &&
		s.WorkerID == c.Slot.WorkerID &&
		s.Date == c.Slot.Date
}
