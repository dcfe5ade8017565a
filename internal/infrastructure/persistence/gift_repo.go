package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"tg_giftwatch/internal/domain"
	"tg_giftwatch/internal/domain/entity"
	"tg_giftwatch/pkg/errcodes"
)

// GiftRepository — архив обнаруженных подарков. Архив вторичен по
// отношению к файловому фиду: фид append-only и не перечитывается,
// архив хранит актуальный снимок для /recent и HTTP API.
type GiftRepository struct {
	db *sqlx.DB
}

func NewGiftRepository(db *sqlx.DB) *GiftRepository {
	return &GiftRepository{db: db}
}

// Upsert сохраняет подарок, обновляя изменяемые поля при повторном
// обнаружении. discovered_at фиксируется первым обнаружением.
func (r *GiftRepository) Upsert(ctx context.Context, gift entity.Gift) error {
	query := `
		INSERT INTO gifts (
			id, title, stars, limited, sold_out, require_premium,
			can_upgrade, availability_remains, availability_total, discovered_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title                = EXCLUDED.title,
			stars                = EXCLUDED.stars,
			sold_out             = EXCLUDED.sold_out,
			availability_remains = EXCLUDED.availability_remains,
			availability_total   = EXCLUDED.availability_total`

	_, err := r.db.ExecContext(ctx, query,
		gift.ID,
		gift.Title,
		gift.Stars,
		gift.Limited,
		gift.SoldOut,
		gift.RequirePremium,
		gift.CanUpgrade,
		gift.AvailabilityRemains,
		gift.AvailabilityTotal,
		time.Now().UTC(),
	)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to upsert gift")
	}

	return nil
}

// GetByID возвращает подарок по идентификатору.
func (r *GiftRepository) GetByID(ctx context.Context, id int64) (*entity.ArchivedGift, error) {
	query := `
		SELECT id, title, stars, limited, sold_out, require_premium,
		       can_upgrade, availability_remains, availability_total, discovered_at
		FROM gifts
		WHERE id = $1`

	var schema giftSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.GiftNotFound, "gift not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get gift")
	}

	gift := schema.toDomain()

	return &gift, nil
}

// List возвращает архив, новые первыми.
func (r *GiftRepository) List(ctx context.Context, limit, offset int) ([]entity.ArchivedGift, error) {
	query := `
		SELECT id, title, stars, limited, sold_out, require_premium,
		       can_upgrade, availability_remains, availability_total, discovered_at
		FROM gifts
		ORDER BY discovered_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	var schemas []giftSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list gifts")
	}

	gifts := make([]entity.ArchivedGift, 0, len(schemas))
	for _, s := range schemas {
		gifts = append(gifts, s.toDomain())
	}

	return gifts, nil
}

// Exists проверяет наличие подарка в архиве.
func (r *GiftRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool

	query := `SELECT EXISTS (SELECT 1 FROM gifts WHERE id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, domain.WrapError(err, errcodes.InternalServerError, "failed to check gift")
	}

	return exists, nil
}
