package projection

import (
	"math"
	"time"
)

// MaxTermDays is the longest deposit accepted, one hundred years.
const MaxTermDays = 36500

// FinalAmount compounds initialAmount daily over days at annualRatePercent.
func FinalAmount(initialAmount, annualRatePercent float64, days int) (float64, error) {
	if err := validateAmount("initialAmount", initialAmount); err != nil {
		return 0, err
	}
	if err := validateRate(annualRatePercent); err != nil {
		return 0, err
	}
	if days < 0 {
		return 0, invalid("days", float64(days), ErrInvalidTerm)
	}

	dailyRate := annualRatePercent / 100 / 365
	final := initialAmount * math.Pow(1+dailyRate, float64(days))
	if !finite(final) {
		return 0, invalid("days", float64(days), ErrInvalidTerm)
	}
	return Round2(final), nil
}

// ValidateTerm checks the length of a new deposit in days.
func ValidateTerm(days int) error {
	if days <= 0 || days > MaxTermDays {
		return invalid("term", float64(days), ErrInvalidTerm)
	}
	return nil
}

func InterestEarned(initialAmount, finalAmount float64) float64 {
	return Round2(finalAmount - initialAmount)
}

// MaturityDate adds calendar days, not business days.
func MaturityDate(opening time.Time, days int) time.Time {
	return opening.AddDate(0, 0, days)
}

// AccruedInterest is the interest earned between opening and now. Before the
// first elapsed day it is zero.
func AccruedInterest(initialAmount, annualRatePercent float64, opening, now time.Time) (float64, error) {
	elapsed := ceilDays(now.Sub(opening))
	if elapsed <= 0 {
		if err := validateAmount("initialAmount", initialAmount); err != nil {
			return 0, err
		}
		if err := validateRate(annualRatePercent); err != nil {
			return 0, err
		}
		return 0, nil
	}

	current, err := FinalAmount(initialAmount, annualRatePercent, elapsed)
	if err != nil {
		return 0, err
	}
	return InterestEarned(initialAmount, current), nil
}

// Progress is the elapsed share of [opening, due] as a percentage in 0..100.
// Both day counts round up, so a deposit one hour old already counts one day.
func Progress(opening, due, now time.Time) float64 {
	total := ceilDays(due.Sub(opening))
	if total <= 0 {
		if now.Before(due) {
			return 0
		}
		return 100
	}

	elapsed := ceilDays(now.Sub(opening))
	progress := float64(elapsed) / float64(total) * 100
	return math.Min(math.Max(progress, 0), 100)
}
