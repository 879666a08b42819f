package transport

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// throttle is a fixed pause inserted after every outbound call so the daemon
// never hammers the source or board APIs.
const throttle = 300 * time.Millisecond

// New builds the shared resty client used by both adapters: bounded
// exponential retry on transient failures and a global politeness throttle.
func New(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(5).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			switch r.StatusCode() {
			case 500, 502, 503, 504:
				return true
			}
			return false
		}).
		OnAfterResponse(func(c *resty.Client, r *resty.Response) error {
			time.Sleep(throttle)
			return nil
		}).
		SetHeader("Accept", "*/*")
}
