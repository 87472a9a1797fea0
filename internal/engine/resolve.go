// Package engine holds the water accounting core: effective-rate resolution,
// cost calculation, quantity derivation, meter-reading volumes and the
// dashboard pivot. Everything here is a pure function over snapshots the
// caller fetched; nothing touches the database.
package engine

import "time"

// Versioned is a time-versioned record resolved by effective date.
type Versioned interface {
	EffectiveOn() time.Time
	RecordID() uint
}

// Resolve picks the applicable record for target: the latest effective date
// not after target, ties broken by highest record id (last writer wins).
// The result does not depend on the order of records. Returns false when no
// record is effective on or before target.
func Resolve[R Versioned](records []R, target time.Time) (R, bool) {
	var best R
	found := false
	for _, r := range records {
		d := r.EffectiveOn()
		if d.After(target) {
			continue
		}
		if !found {
			best = r
			found = true
			continue
		}
		bd := best.EffectiveOn()
		if d.After(bd) || (d.Equal(bd) && r.RecordID() > best.RecordID()) {
			best = r
		}
	}
	return best, found
}
