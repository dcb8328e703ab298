package models

import "strconv"

// Cursor is the upper bound for the next page request. The zero value has
// no bound and requests the newest page.
type Cursor struct {
	maxID   int64
	bounded bool
}

// Before returns the cursor for the page of statuses older than id.
func Before(id StatusID) Cursor {
	return Cursor{maxID: int64(id) - 1, bounded: true}
}

// MaxID returns the bound and whether one is set.
func (c Cursor) MaxID() (int64, bool) {
	return c.maxID, c.bounded
}

// Below reports whether c is a strictly tighter bound than other.
func (c Cursor) Below(other Cursor) bool {
	if !c.bounded {
		return false
	}
	return !other.bounded || c.maxID < other.maxID
}

func (c Cursor) String() string {
	if !c.bounded {
		return "none"
	}
	return strconv.FormatInt(c.maxID, 10)
}
