package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "champguess"

// sessionKey returns the Redis key for a channel's GameSession
func sessionKey(channelID string) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, channelID)
}

// sessionKeyPattern matches every session key
func sessionKeyPattern() string {
	return fmt.Sprintf("%s:session:*", keyPrefix)
}

