package config

import "time"

type Monitor struct {
	Interval time.Duration `env:"MONITOR_INTERVAL" envDefault:"2s"`
	FeedPath string        `env:"MONITOR_FEED_PATH" envDefault:"data/gifts_feed.jsonl"`

	// Dedup включает фильтрацию по уже виденным ID вместо буквального
	// повторного emit всех непроданных подарков на каждом обновлении hash.
	Dedup bool `env:"MONITOR_DEDUP" envDefault:"false"`
}
