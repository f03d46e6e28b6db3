package postgres

import (
	"context"
	"fmt"

	"github.com/UJJWALLAAD67/sportsbook/internal/app"
	"github.com/UJJWALLAAD67/sportsbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

// CreateVenueWithCourts inserts the venue and all its courts in one
// transaction, filling in generated ids.
func (r *VenueRepository) CreateVenueWithCourts(ctx context.Context, venue *domain.Venue, courts []domain.Court) error {
	return withTx(ctx, r.pool, pgx.TxOptions{}, func(txCtx context.Context) error {
		tx := txFromContext(txCtx)

		const venueStmt = `
INSERT INTO venues (owner_id, name, slug, description, address, city, state, country, amenities, approved, created_at)
VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, $11)
RETURNING id`

		err := tx.QueryRow(txCtx, venueStmt,
			venue.OwnerID,
			venue.Name,
			venue.Slug,
			venue.Description,
			venue.Address,
			venue.City,
			venue.State,
			venue.Country,
			venue.Amenities,
			venue.Approved,
			venue.CreatedAt,
		).Scan(&venue.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrVenueSlugTaken
			}
			return fmt.Errorf("create venue: %w", err)
		}

		const courtStmt = `
INSERT INTO courts (venue_id, name, sport, price_per_hour, currency, open_time, close_time)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

		for i := range courts {
			courts[i].VenueID = venue.ID
			err := tx.QueryRow(txCtx, courtStmt,
				courts[i].VenueID,
				courts[i].Name,
				courts[i].Sport,
				courts[i].PricePerHour,
				courts[i].Currency,
				courts[i].OpenTime,
				courts[i].CloseTime,
			).Scan(&courts[i].ID)
			if err != nil {
				return fmt.Errorf("create court: %w", err)
			}
		}
		return nil
	})
}

func (r *VenueRepository) ListByOwner(ctx context.Context, ownerID int64) ([]app.VenueWithCourts, error) {
	return r.list(ctx, `WHERE v.owner_id = $1 ORDER BY v.created_at DESC`, ownerID)
}

func (r *VenueRepository) ListPending(ctx context.Context) ([]app.VenueWithCourts, error) {
	return r.list(ctx, `WHERE v.approved = FALSE ORDER BY v.created_at DESC`)
}

func (r *VenueRepository) ApproveVenue(ctx context.Context, venueID int64) error {
	const stmt = `UPDATE venues SET approved = TRUE WHERE id = $1`
	tag, err := r.pool.Exec(ctx, stmt, venueID)
	if err != nil {
		return fmt.Errorf("approve venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

func (r *VenueRepository) list(ctx context.Context, where string, args ...any) ([]app.VenueWithCourts, error) {
	query := `
SELECT v.id, v.owner_id, v.name, v.slug, COALESCE(v.description, ''), COALESCE(v.address, ''),
       COALESCE(v.city, ''), COALESCE(v.state, ''), COALESCE(v.country, ''), v.amenities, v.approved, v.created_at
FROM venues v ` + where

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	var result []app.VenueWithCourts
	ids := make([]int64, 0)
	for rows.Next() {
		var v domain.Venue
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Slug, &v.Description, &v.Address,
			&v.City, &v.State, &v.Country, &v.Amenities, &v.Approved, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		result = append(result, app.VenueWithCourts{Venue: v})
		ids = append(ids, v.ID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate venues: %w", rows.Err())
	}
	if len(result) == 0 {
		return result, nil
	}

	const courtQuery = `
SELECT id, venue_id, name, sport, price_per_hour, currency, open_time, close_time
FROM courts
WHERE venue_id = ANY($1)
ORDER BY id`

	courtRows, err := r.pool.Query(ctx, courtQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("list courts: %w", err)
	}
	defer courtRows.Close()

	byVenue := make(map[int64][]domain.Court, len(ids))
	for courtRows.Next() {
		var c domain.Court
		if err := courtRows.Scan(&c.ID, &c.VenueID, &c.Name, &c.Sport, &c.PricePerHour,
			&c.Currency, &c.OpenTime, &c.CloseTime); err != nil {
			return nil, fmt.Errorf("scan court: %w", err)
		}
		byVenue[c.VenueID] = append(byVenue[c.VenueID], c)
	}
	if courtRows.Err() != nil {
		return nil, fmt.Errorf("iterate courts: %w", courtRows.Err())
	}

	for i := range result {
		result[i].Courts = byVenue[result[i].Venue.ID]
	}
	return result, nil
}
