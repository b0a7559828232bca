package clients

import "time"

const (
	MAX_RETRIES     = 3
	INITIAL_BACKOFF = 1 * time.Second
	USER_AGENT      = "reviewpulse-client/1.0 (+https://github.com/spacesedan/reviewpulse)"
)
