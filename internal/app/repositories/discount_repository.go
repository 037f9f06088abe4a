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

// DiscountRepository handles discount database operations
type DiscountRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDiscountRepository creates a new DiscountRepository
func NewDiscountRepository(db *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *DiscountRepository) discountSelect() squirrel.SelectBuilder {
	// Enrollment count spans every course the discount applies to
	return r.sb.Select(
		"d.id", "d.title", "d.percent", "d.starts_at", "d.ends_at",
		"COUNT(DISTINCT el.id) AS enroll_students_count").
		From("discounts d").
		LeftJoin("discount_items di ON di.discount_id = d.id").
		LeftJoin("enrollment_lines el ON el.course_id = di.course_id").
		GroupBy("d.id")
}

// GetAllDiscounts retrieves one page of discounts with enrollment counts
func (r *DiscountRepository) GetAllDiscounts(ctx context.Context, offset, limit int) ([]models.Discount, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("discounts").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting discounts")
		return nil, 0, fmt.Errorf("error counting discounts: %w", err)
	}

	sql, args, err := r.discountSelect().
		OrderBy("d.id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build discounts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying discounts")
		return nil, 0, fmt.Errorf("error retrieving discounts: %w", err)
	}
	defer rows.Close()

	discounts := []models.Discount{}
	for rows.Next() {
		var d models.Discount
		err := rows.Scan(&d.ID, &d.Title, &d.Percent, &d.StartsAt, &d.EndsAt, &d.EnrollStudentsCount)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning discount row: %w", err)
		}
		discounts = append(discounts, d)
	}

	return discounts, total, rows.Err()
}

// GetDiscountByID retrieves a discount with its course bindings
func (r *DiscountRepository) GetDiscountByID(ctx context.Context, id int64) (*models.Discount, []models.DiscountItem, error) {
	sql, args, err := r.discountSelect().
		Where(squirrel.Eq{"d.id": id}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build discount query: %w", err)
	}

	var d models.Discount
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.Title, &d.Percent, &d.StartsAt, &d.EndsAt, &d.EnrollStudentsCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.ErrDiscountNotFound
		}
		logger.Error().Err(err).Int64("discountID", id).Msg("Error scanning discount row")
		return nil, nil, fmt.Errorf("error retrieving discount: %w", err)
	}

	itemsSQL, itemsArgs, err := r.sb.Select("id", "discount_id", "course_id").
		From("discount_items").
		Where(squirrel.Eq{"discount_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build discount items query: %w", err)
	}

	rows, err := r.db.Query(ctx, itemsSQL, itemsArgs...)
	if err != nil {
		return nil, nil, fmt.Errorf("error retrieving discount items: %w", err)
	}
	defer rows.Close()

	items := []models.DiscountItem{}
	for rows.Next() {
		var item models.DiscountItem
		if err := rows.Scan(&item.ID, &item.DiscountID, &item.CourseID); err != nil {
			return nil, nil, fmt.Errorf("error scanning discount item row: %w", err)
		}
		items = append(items, item)
	}

	return &d, items, rows.Err()
}
