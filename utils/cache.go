package utils

import (
	"context"
	"log"
	"time"

	"lanspeech/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic key-value client (practice summaries, misc caching).
	CacheClient *redis.Client
	// LedgerCacheClient is the dedicated client for the booking ledger.
	LedgerCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitLedgerCache initializes the Redis client backing the booking ledger.
func InitLedgerCache() {
	LedgerCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisLedgerDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := LedgerCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Ledger): %v", err)
	}
}

// GetLedgerCacheClient returns the Redis client backing the booking ledger.
func GetLedgerCacheClient() *redis.Client {
	if LedgerCacheClient == nil {
		InitLedgerCache()
	}
	return LedgerCacheClient
}
