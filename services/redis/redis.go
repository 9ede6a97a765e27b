package redis

import (
	redis_models "Scorekeeper/models/redis"
	redis_utils "Scorekeeper/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations for session-scoped state:
// persisted campaign selection, admin-mode flags and invite join intent.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveActiveSelection persists the user's active playgroup choice.
// Key format: "selection:{userID}:playgroup"
// TTL: 30 days, refreshed on every write
func (rc *RedisClient) SaveActiveSelection(userID, playgroupID string) error {
	key := redis_utils.FormatActiveSelectionKey(userID)
	sel := redis_models.ActiveSelection{
		UserID:      userID,
		PlaygroupID: playgroupID,
		UpdatedAt:   time.Now(),
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("error marshaling selection data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 30*24*time.Hour).Err()
}

// GetActiveSelection retrieves the user's persisted playgroup choice.
// Returns ("", nil) when no selection is stored.
func (rc *RedisClient) GetActiveSelection(userID string) (string, error) {
	key := redis_utils.FormatActiveSelectionKey(userID)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error getting selection data: %v", err)
	}

	var sel redis_models.ActiveSelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return "", fmt.Errorf("error unmarshaling selection data: %v", err)
	}
	return sel.PlaygroupID, nil
}

// DeleteActiveSelection clears the user's persisted playgroup choice.
func (rc *RedisClient) DeleteActiveSelection(userID string) error {
	key := redis_utils.FormatActiveSelectionKey(userID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting selection data: %v", err)
	}
	return nil
}

// SaveAdminSession marks a session as admin after the passphrase gate.
// Key format: "admin:{sessionID}"
// TTL: 12 hours
func (rc *RedisClient) SaveAdminSession(sessionID, email string) error {
	key := redis_utils.FormatAdminSessionKey(sessionID)
	sess := redis_models.AdminSession{
		SessionID: sessionID,
		Email:     email,
		GrantedAt: time.Now(),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("error marshaling admin session: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, 12*time.Hour).Err()
}

// IsAdminSession reports whether the session has passed the admin gate.
func (rc *RedisClient) IsAdminSession(sessionID string) (bool, error) {
	key := redis_utils.FormatAdminSessionKey(sessionID)
	n, err := rc.client.Exists(rc.ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("error checking admin session: %v", err)
	}
	return n > 0, nil
}

// DeleteAdminSession revokes admin mode for the session. Called both on
// explicit exit and on logout so privilege never outlives the session.
func (rc *RedisClient) DeleteAdminSession(sessionID string) error {
	key := redis_utils.FormatAdminSessionKey(sessionID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting admin session: %v", err)
	}
	return nil
}

// SaveJoinIntent stores an explicit join intent for an invite token.
// Key format: "invite_intent:{sessionID}"
// TTL: 1 hour, long enough to survive the login round trip
func (rc *RedisClient) SaveJoinIntent(sessionID, token string) error {
	key := redis_utils.FormatJoinIntentKey(sessionID)
	intent := redis_models.JoinIntent{
		SessionID: sessionID,
		Token:     token,
		SetAt:     time.Now(),
	}
	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("error marshaling join intent: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, time.Hour).Err()
}

// ConsumeJoinIntent atomically reads and deletes the join intent, so a
// doubled auth callback can redeem at most once. Returns ("", nil) when
// no intent is stored.
func (rc *RedisClient) ConsumeJoinIntent(sessionID string) (string, error) {
	key := redis_utils.FormatJoinIntentKey(sessionID)
	data, err := rc.client.GetDel(rc.ctx, key).Bytes()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error consuming join intent: %v", err)
	}

	var intent redis_models.JoinIntent
	if err := json.Unmarshal(data, &intent); err != nil {
		return "", fmt.Errorf("error unmarshaling join intent: %v", err)
	}
	return intent.Token, nil
}

// DeleteJoinIntent drops a stored intent without consuming it, used when
// redemption fails so a stale intent cannot trigger a later surprise join.
func (rc *RedisClient) DeleteJoinIntent(sessionID string) error {
	key := redis_utils.FormatJoinIntentKey(sessionID)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting join intent: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
