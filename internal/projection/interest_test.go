package projection

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFinalAmountReference(t *testing.T) {
	tests := []struct {
		name     string
		initial  float64
		rate     float64
		days     int
		expected float64
	}{
		{name: "one year at 8.5%", initial: 1_000_000, rate: 8.5, days: 365, expected: 1088706.29},
		{name: "ninety days at 10%", initial: 1_000_000, rate: 10, days: 90, expected: 1024960.58},
		{name: "zero days", initial: 500, rate: 10, days: 0, expected: 500},
		{name: "zero rate", initial: 750.25, rate: 0, days: 180, expected: 750.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FinalAmount(tt.initial, tt.rate, tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("FinalAmount(%v, %v, %d) = %v; want %v", tt.initial, tt.rate, tt.days, got, tt.expected)
			}
		})
	}
}

func TestFinalAmountInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		initial float64
		rate    float64
		days    int
		want    error
	}{
		{name: "zero principal", initial: 0, rate: 5, days: 30, want: ErrInvalidAmount},
		{name: "negative rate", initial: 100, rate: -0.1, days: 30, want: ErrInvalidRate},
		{name: "rate over 100", initial: 100, rate: 101, days: 30, want: ErrInvalidRate},
		{name: "negative days", initial: 100, rate: 5, days: -1, want: ErrInvalidTerm},
		{name: "growth overflows", initial: 1000, rate: 100, days: 1_000_000, want: ErrInvalidTerm},
		{name: "huge principal overflows", initial: math.MaxFloat64, rate: 100, days: 365, want: ErrInvalidTerm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FinalAmount(tt.initial, tt.rate, tt.days); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateTerm(t *testing.T) {
	for _, days := range []int{1, 90, MaxTermDays} {
		if err := ValidateTerm(days); err != nil {
			t.Errorf("ValidateTerm(%d) = %v; want nil", days, err)
		}
	}
	for _, days := range []int{0, -1, MaxTermDays + 1, 1_000_000} {
		if err := ValidateTerm(days); !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("ValidateTerm(%d) = %v; want ErrInvalidTerm", days, err)
		}
	}
}

func TestInterestEarned(t *testing.T) {
	if got := InterestEarned(1_000_000, 1088706.29); got != 88706.29 {
		t.Errorf("InterestEarned = %v; want 88706.29", got)
	}
}

func TestMaturityDate(t *testing.T) {
	opening := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	want := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	if got := MaturityDate(opening, 90); !got.Equal(want) {
		t.Errorf("MaturityDate = %v; want %v", got, want)
	}
}

func TestAccruedInterest(t *testing.T) {
	opening := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{name: "partial day rounds up", now: opening.Add(45*24*time.Hour + time.Hour), want: 12680.74},
		{name: "exactly thirty days", now: opening.Add(30 * 24 * time.Hour), want: 8251.91},
		{name: "at opening", now: opening, want: 0},
		{name: "before opening", now: opening.Add(-72 * time.Hour), want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AccruedInterest(1_000_000, 10, opening, tt.now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AccruedInterest = %v; want %v", got, tt.want)
			}
		})
	}

	if _, err := AccruedInterest(0, 10, opening, opening); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero principal, got %v", err)
	}
}

func TestProgress(t *testing.T) {
	opening := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	due := opening.AddDate(0, 0, 90)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{name: "ceil on elapsed days", now: opening.Add(45*24*time.Hour + time.Hour), want: 51.11111111111111},
		{name: "at opening", now: opening, want: 0},
		{name: "before opening clamps to zero", now: opening.AddDate(0, 0, -10), want: 0},
		{name: "one millisecond in counts a day", now: opening.Add(time.Millisecond), want: 1.1111111111111112},
		{name: "at due date", now: due, want: 100},
		{name: "after due date clamps to 100", now: due.AddDate(1, 0, 0), want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(opening, due, tt.now); got != tt.want {
				t.Errorf("Progress = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestProgressZeroSpan(t *testing.T) {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if got := Progress(at, at, at.Add(-time.Hour)); got != 0 {
		t.Errorf("before a zero-length term progress = %v; want 0", got)
	}
	if got := Progress(at, at, at); got != 100 {
		t.Errorf("at a zero-length term progress = %v; want 100", got)
	}
}
