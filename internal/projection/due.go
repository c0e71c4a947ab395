package projection

import "time"

const (
	BillDueSoonWindow        = 7
	InstallmentDueSoonWindow = 7
	DepositDueSoonWindow     = 30
)

const millisPerDay = int64(24 * time.Hour / time.Millisecond)

// Obligation is anything with a due date that can be settled: bills, term
// deposits and loan installments.
type Obligation interface {
	DueAt() time.Time
	IsClosed() bool
}

// DaysUntil counts whole days from now to due, rounding up. Negative values
// are in the past.
func DaysUntil(due, now time.Time) int {
	return ceilDays(due.Sub(now))
}

func IsDueSoon(o Obligation, windowDays int, now time.Time) bool {
	if o.IsClosed() {
		return false
	}
	days := DaysUntil(o.DueAt(), now)
	return days >= 0 && days <= windowDays
}

func IsOverdue(o Obligation, now time.Time) bool {
	if o.IsClosed() {
		return false
	}
	return DaysUntil(o.DueAt(), now) < 0
}

func DueSoon[T Obligation](items []T, windowDays int, now time.Time) []T {
	var out []T
	for _, item := range items {
		if IsDueSoon(item, windowDays, now) {
			out = append(out, item)
		}
	}
	return out
}

func Overdue[T Obligation](items []T, now time.Time) []T {
	var out []T
	for _, item := range items {
		if IsOverdue(item, now) {
			out = append(out, item)
		}
	}
	return out
}

// ceilDays divides a duration into days rounding toward positive infinity,
// at millisecond resolution.
func ceilDays(d time.Duration) int {
	ms := d.Milliseconds()
	days := ms / millisPerDay
	if ms%millisPerDay != 0 && ms > 0 {
		days++
	}
	return int(days)
}
