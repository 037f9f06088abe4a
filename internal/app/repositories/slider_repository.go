package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// SliderRepository handles storefront slider queries
type SliderRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSliderRepository creates a new SliderRepository
func NewSliderRepository(db *pgxpool.Pool) *SliderRepository {
	return &SliderRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAllSliders retrieves every slider ordered by position
func (r *SliderRepository) GetAllSliders(ctx context.Context) ([]models.Slider, error) {
	sql, args, err := r.sb.Select("id", "title", "image_url", "link_url", "position").
		From("sliders").
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sliders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying sliders")
		return nil, fmt.Errorf("error retrieving sliders: %w", err)
	}
	defer rows.Close()

	sliders := []models.Slider{}
	for rows.Next() {
		var s models.Slider
		if err := rows.Scan(&s.ID, &s.Title, &s.ImageURL, &s.LinkURL, &s.Position); err != nil {
			return nil, fmt.Errorf("error scanning slider row: %w", err)
		}
		sliders = append(sliders, s)
	}

	return sliders, rows.Err()
}

// GetSliderByID retrieves a single slider
func (r *SliderRepository) GetSliderByID(ctx context.Context, id int64) (*models.Slider, error) {
	sql, args, err := r.sb.Select("id", "title", "image_url", "link_url", "position").
		From("sliders").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build slider query: %w", err)
	}

	var s models.Slider
	err = r.db.QueryRow(ctx, sql, args...).Scan(&s.ID, &s.Title, &s.ImageURL, &s.LinkURL, &s.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSliderNotFound
		}
		logger.Error().Err(err).Int64("sliderID", id).Msg("Error scanning slider row")
		return nil, fmt.Errorf("error retrieving slider: %w", err)
	}

	return &s, nil
}
