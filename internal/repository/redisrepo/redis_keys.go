package redisrepo

import "fmt"

const (
	USER_KEY       = "user:%s"          // <userID>
	RATE_LIMIT_KEY = "rate-limit:%s:%s" // <scope>:<client IP>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER_KEY, userID)
}

func RateLimitKey(scope string, ip string) string {
	return fmt.Sprintf(RATE_LIMIT_KEY, scope, ip)
}
