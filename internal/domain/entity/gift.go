package entity

import "time"

// TitleUnknown подставляется, когда каталог не вернул название подарка.
const TitleUnknown = "NONE"

// Gift — проекция позиции каталога звёздных подарков.
// Поля availability заполнены только для лимитированных подарков.
type Gift struct {
	ID                  int64  `json:"id" db:"id"`
	Title               string `json:"title" db:"title"`
	Stars               int64  `json:"stars" db:"stars"`
	Limited             bool   `json:"limited" db:"limited"`
	SoldOut             bool   `json:"sold_out" db:"sold_out"`
	RequirePremium      bool   `json:"require_premium" db:"require_premium"`
	CanUpgrade          bool   `json:"can_upgrade" db:"can_upgrade"`
	AvailabilityRemains *int   `json:"availability_remains" db:"availability_remains"`
	AvailabilityTotal   *int   `json:"availability_total" db:"availability_total"`
}

// GiftCatalog — ответ payments.getStarGifts: новый hash и полный список.
// NotModified означает, что переданный hash ещё актуален и Gifts пуст.
type GiftCatalog struct {
	Hash        int
	NotModified bool
	Gifts       []Gift
}

// ArchivedGift — подарок, сохранённый в архив при обнаружении.
type ArchivedGift struct {
	Gift
	DiscoveredAt time.Time `db:"discovered_at"`
}
