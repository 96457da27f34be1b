// Package daily chooses the shared base word for each calendar day.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// Schedule assigns one entry of a base-word list to every UTC day. Two
// schedules with the same salt pick the same word from the same list.
type Schedule struct {
	salt []byte
}

// NewSchedule returns a schedule keyed by salt. Changing the salt reshuffles
// every day.
func NewSchedule(salt string) Schedule {
	return Schedule{salt: []byte(salt)}
}

// Day is the UTC calendar day of t, as YYYY-MM-DD.
func Day(t time.Time) string { return t.UTC().Format(time.DateOnly) }

// Word returns the entry of list for t's day, or "" when list is empty.
func (s Schedule) Word(list []string, t time.Time) string {
	if len(list) == 0 {
		return ""
	}
	mac := hmac.New(sha256.New, s.salt)
	mac.Write([]byte(Day(t)))
	n := binary.BigEndian.Uint64(mac.Sum(nil))
	return list[n%uint64(len(list))]
}
