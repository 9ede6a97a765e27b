package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

func FormatActiveSelectionKey(userID string) string {
	return fmt.Sprintf("selection:%s:playgroup", userID)
}

func FormatAdminSessionKey(sessionID string) string {
	return fmt.Sprintf("admin:%s", sessionID)
}

func FormatJoinIntentKey(sessionID string) string {
	return fmt.Sprintf("invite_intent:%s", sessionID)
}
