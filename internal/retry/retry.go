// Package retry reruns operations whose failures a caller-supplied
// classifier marks as recoverable. The enrichment driver uses it to
// reacquire a browser session after session loss: the classifier matches
// the session-loss signal and nothing else, so ordinary lookup failures
// surface immediately.
package retry

import (
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var log = logging.Logger("menugloss/retry")

// Retry runs f and, while recoverable reports its error as transient,
// runs it again after sleeping delay. attempts bounds the total number of
// runs; attempts <= 0 retries without bound. The first error that is nil
// or not recoverable is returned as-is.
func Retry[T any](attempts int, delay time.Duration, recoverable func(error) bool, f func() (T, error)) (result T, err error) {
	for attempt := 1; ; attempt++ {
		if attempt > 1 {
			log.Infof("Retrying after error: %s", err)
			time.Sleep(delay)
		}
		result, err = f()
		if err == nil || !recoverable(err) {
			return result, err
		}
		if attempts > 0 && attempt >= attempts {
			log.Errorf("Failed after %d attempts, last error: %s", attempts, err)
			return result, err
		}
	}
}
