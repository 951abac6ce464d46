package usecase

import "time"

// SetRetryBaseDelay shortens backoff in tests and returns a restore func.
func SetRetryBaseDelay(d time.Duration) func() {
	prev := retryBaseDelay
	retryBaseDelay = d
	return func() { retryBaseDelay = prev }
}

// SetClock pins the analytics clock.
func (uc *AnalyticsUsecase) SetClock(now func() time.Time) {
	uc.now = now
}
