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

// CategoryRepository handles category, subcategory and topic queries
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAllCategories retrieves one page of categories with subcategory and
// topic counts
func (r *CategoryRepository) GetAllCategories(ctx context.Context, offset, limit int) ([]models.Category, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("categories").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting categories")
		return nil, 0, fmt.Errorf("error counting categories: %w", err)
	}

	sql, args, err := r.sb.Select(
		"c.id", "c.title",
		"COUNT(DISTINCT sc.id) AS subcategories_count",
		"COUNT(DISTINCT t.id) AS topics_count").
		From("categories c").
		LeftJoin("sub_categories sc ON sc.category_id = c.id").
		LeftJoin("topics t ON t.subcategory_id = sc.id").
		GroupBy("c.id").
		OrderBy("c.id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying categories")
		return nil, 0, fmt.Errorf("error retrieving categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.SubCategoriesCount, &c.TopicsCount); err != nil {
			return nil, 0, fmt.Errorf("error scanning category row: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, total, rows.Err()
}

// GetCategoryByID retrieves a single category with its counts
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title",
		"COUNT(DISTINCT sc.id) AS subcategories_count",
		"COUNT(DISTINCT t.id) AS topics_count").
		From("categories c").
		LeftJoin("sub_categories sc ON sc.category_id = c.id").
		LeftJoin("topics t ON t.subcategory_id = sc.id").
		Where(squirrel.Eq{"c.id": id}).
		GroupBy("c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build category query: %w", err)
	}

	var category models.Category
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&category.ID, &category.Title, &category.SubCategoriesCount, &category.TopicsCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		logger.Error().Err(err).Int64("categoryID", id).Msg("Error scanning category row")
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	return &category, nil
}

// GetSubCategoriesByCategoryID retrieves the subcategories of a category
func (r *CategoryRepository) GetSubCategoriesByCategoryID(ctx context.Context, categoryID int64) ([]models.SubCategory, error) {
	sql, args, err := r.sb.Select("id", "category_id", "title").
		From("sub_categories").
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subcategories query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("categoryID", categoryID).Msg("Error querying subcategories")
		return nil, fmt.Errorf("error retrieving subcategories: %w", err)
	}
	defer rows.Close()

	subCategories := []models.SubCategory{}
	for rows.Next() {
		var sc models.SubCategory
		if err := rows.Scan(&sc.ID, &sc.CategoryID, &sc.Title); err != nil {
			return nil, fmt.Errorf("error scanning subcategory row: %w", err)
		}
		subCategories = append(subCategories, sc)
	}

	return subCategories, rows.Err()
}

// GetTopicsBySubCategoryID retrieves the topics under a subcategory
func (r *CategoryRepository) GetTopicsBySubCategoryID(ctx context.Context, subCategoryID int64) ([]models.Topic, error) {
	sql, args, err := r.sb.Select("id", "subcategory_id", "title").
		From("topics").
		Where(squirrel.Eq{"subcategory_id": subCategoryID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build topics query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subCategoryID", subCategoryID).Msg("Error querying topics")
		return nil, fmt.Errorf("error retrieving topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.SubCategoryID, &t.Title); err != nil {
			return nil, fmt.Errorf("error scanning topic row: %w", err)
		}
		topics = append(topics, t)
	}

	return topics, rows.Err()
}
