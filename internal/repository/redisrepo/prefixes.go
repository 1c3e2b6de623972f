package redisrepo

import "fmt"

var (
	sessionPrefix = "session:%s" // session:<sessionID>
)

func SessionPrefix(sessionID string) string {
	return fmt.Sprintf(sessionPrefix, sessionID)
}
