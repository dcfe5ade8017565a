package rest

import "time"

type MonitorStatus struct {
	Active         bool  `json:"active"`
	Primed         bool  `json:"primed"`
	LastHash       int   `json:"lastHash"`
	Polls          int64 `json:"polls"`
	PollFailures   int64 `json:"pollFailures"`
	EmittedEvents  int64 `json:"emittedEvents"`
	KnownGifts     int   `json:"knownGifts"`
	LimitedGifts   int   `json:"limitedGifts"`
	AvailableGifts int   `json:"availableGifts"`
}

type Gift struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Stars               int64     `json:"stars"`
	Limited             bool      `json:"limited"`
	SoldOut             bool      `json:"soldOut"`
	RequirePremium      bool      `json:"requirePremium"`
	CanUpgrade          bool      `json:"canUpgrade"`
	AvailabilityRemains *int      `json:"availabilityRemains"`
	AvailabilityTotal   *int      `json:"availabilityTotal"`
	DiscoveredAt        time.Time `json:"discoveredAt"`
}

type MonitorToggle struct {
	Active *bool `json:"active" validate:"required"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code string `json:"code"`

	// Message Сообщение об ошибке
	Message string `json:"message"`
}
