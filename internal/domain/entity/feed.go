package entity

// События фида.
const (
	FeedEventNew     = "new"
	FeedEventUpdated = "updated"
)

// FeedEvent — одна строка фида gifts_feed.jsonl.
type FeedEvent struct {
	Event string `json:"event"`
	Gift  Gift   `json:"gift"`
}
