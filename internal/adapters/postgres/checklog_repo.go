package postgres

import (
	"context"

	"github.com/samirrijal/standortcheck/internal/core/domain"
)

// CheckLogRepo implements ports.CheckLogRepository with pgx.
type CheckLogRepo struct {
	db *DB
}

// NewCheckLogRepo creates a new CheckLogRepo.
func NewCheckLogRepo(db *DB) *CheckLogRepo {
	return &CheckLogRepo{db: db}
}

// Insert stores one audit record.
func (r *CheckLogRepo) Insert(ctx context.Context, rec *domain.CheckRecord) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO check_log (address, lat, lon, flood_risk, noise_risk, energy_risk, poi_count, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, rec.Address, rec.Location.Lat, rec.Location.Lon,
		rec.FloodRisk, rec.NoiseRisk, rec.EnergyRisk,
		rec.POICount, rec.DurationMS,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// Recent returns the latest records, newest first.
func (r *CheckLogRepo) Recent(ctx context.Context, limit int) ([]domain.CheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, address, lat, lon,
		       COALESCE(flood_risk, ''), COALESCE(noise_risk, ''), COALESCE(energy_risk, ''),
		       poi_count, duration_ms, created_at
		FROM check_log
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.CheckRecord
	for rows.Next() {
		var rec domain.CheckRecord
		if err := rows.Scan(
			&rec.ID, &rec.Address, &rec.Location.Lat, &rec.Location.Lon,
			&rec.FloodRisk, &rec.NoiseRisk, &rec.EnergyRisk,
			&rec.POICount, &rec.DurationMS, &rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
