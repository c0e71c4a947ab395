package projection

import (
	"testing"
	"time"
)

type obligation struct {
	due    time.Time
	closed bool
}

func (o obligation) DueAt() time.Time { return o.due }
func (o obligation) IsClosed() bool   { return o.closed }

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{name: "same instant", due: now, want: 0},
		{name: "one millisecond ahead", due: now.Add(time.Millisecond), want: 1},
		{name: "exactly one day", due: now.Add(24 * time.Hour), want: 1},
		{name: "just over one day", due: now.Add(24*time.Hour + time.Millisecond), want: 2},
		{name: "one millisecond ago", due: now.Add(-time.Millisecond), want: 0},
		{name: "one day ago", due: now.Add(-24 * time.Hour), want: -1},
		{name: "twenty five hours ago", due: now.Add(-25 * time.Hour), want: -1},
		{name: "forty nine hours ago", due: now.Add(-49 * time.Hour), want: -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.due, now); got != tt.want {
				t.Errorf("DaysUntil = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestIsDueSoon(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		o    obligation
		want bool
	}{
		{name: "inside window", o: obligation{due: now.AddDate(0, 0, 3)}, want: true},
		{name: "window edge", o: obligation{due: now.AddDate(0, 0, 7)}, want: true},
		{name: "beyond window", o: obligation{due: now.AddDate(0, 0, 8)}, want: false},
		{name: "due right now", o: obligation{due: now}, want: true},
		{name: "past due", o: obligation{due: now.AddDate(0, 0, -2)}, want: false},
		{name: "closed inside window", o: obligation{due: now.AddDate(0, 0, 1), closed: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDueSoon(tt.o, 7, now); got != tt.want {
				t.Errorf("IsDueSoon = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)

	if !IsOverdue(obligation{due: past}, now) {
		t.Error("open obligation past due should be overdue")
	}
	if IsOverdue(obligation{due: past, closed: true}, now) {
		t.Error("closed obligation is never overdue")
	}
	if IsOverdue(obligation{due: now.AddDate(0, 0, 1)}, now) {
		t.Error("future obligation should not be overdue")
	}
}

func TestDueSoonAndOverdueFilters(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	items := []obligation{
		{due: now.AddDate(0, 0, 2)},
		{due: now.AddDate(0, 0, -2)},
		{due: now.AddDate(0, 0, 40)},
		{due: now.AddDate(0, 0, -9), closed: true},
	}

	if got := DueSoon(items, 30, now); len(got) != 1 {
		t.Errorf("DueSoon returned %d items; want 1", len(got))
	}
	if got := Overdue(items, now); len(got) != 1 {
		t.Errorf("Overdue returned %d items; want 1", len(got))
	}
}

func TestPaymentIsObligation(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	p := Payment{DueDate: now.AddDate(0, 0, -1)}
	if !IsOverdue(p, now) {
		t.Error("unpaid past installment should be overdue")
	}
	p.IsPaid = true
	if IsOverdue(p, now) {
		t.Error("paid installment should not be overdue")
	}
}
