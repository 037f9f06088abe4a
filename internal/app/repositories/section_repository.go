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

// SectionRepository handles course section and subsection queries
type SectionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSectionRepository creates a new SectionRepository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetAllSubSections retrieves one page of subsections, each with its typed
// content attachments
func (r *SectionRepository) GetAllSubSections(ctx context.Context, offset, limit int) ([]models.SubSection, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("subsections").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting subsections")
		return nil, 0, fmt.Errorf("error counting subsections: %w", err)
	}

	sql, args, err := r.sb.Select("id", "section_id", "title", "position").
		From("subsections").
		OrderBy("section_id", "position", "id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build subsections query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying subsections")
		return nil, 0, fmt.Errorf("error retrieving subsections: %w", err)
	}
	defer rows.Close()

	subSections := []models.SubSection{}
	ids := []int64{}
	for rows.Next() {
		var ss models.SubSection
		if err := rows.Scan(&ss.ID, &ss.SectionID, &ss.Title, &ss.Position); err != nil {
			return nil, 0, fmt.Errorf("error scanning subsection row: %w", err)
		}
		ss.Contents = []models.SubSectionContent{}
		subSections = append(subSections, ss)
		ids = append(ids, ss.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachContents(ctx, subSections, ids); err != nil {
		return nil, 0, err
	}

	return subSections, total, nil
}

// GetSubSectionByID retrieves a single subsection with its attachments
func (r *SectionRepository) GetSubSectionByID(ctx context.Context, id int64) (*models.SubSection, error) {
	sql, args, err := r.sb.Select("id", "section_id", "title", "position").
		From("subsections").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build subsection query: %w", err)
	}

	var ss models.SubSection
	err = r.db.QueryRow(ctx, sql, args...).Scan(&ss.ID, &ss.SectionID, &ss.Title, &ss.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubSectionNotFound
		}
		logger.Error().Err(err).Int64("subSectionID", id).Msg("Error scanning subsection row")
		return nil, fmt.Errorf("error retrieving subsection: %w", err)
	}

	contents, err := r.getContents(ctx, []int64{ss.ID})
	if err != nil {
		return nil, err
	}
	ss.Contents = append([]models.SubSectionContent{}, contents[ss.ID]...)

	return &ss, nil
}

// attachContents fills the Contents slice of each subsection in place
func (r *SectionRepository) attachContents(ctx context.Context, subSections []models.SubSection, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	contents, err := r.getContents(ctx, ids)
	if err != nil {
		return err
	}

	for i := range subSections {
		subSections[i].Contents = append(subSections[i].Contents, contents[subSections[i].ID]...)
	}
	return nil
}

func (r *SectionRepository) getContents(ctx context.Context, ids []int64) (map[int64][]models.SubSectionContent, error) {
	sql, args, err := r.sb.Select("id", "subsection_id", "kind", "title", "url").
		From("subsection_contents").
		Where(squirrel.Eq{"subsection_id": ids}).
		OrderBy("subsection_id", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build contents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying subsection contents")
		return nil, fmt.Errorf("error retrieving subsection contents: %w", err)
	}
	defer rows.Close()

	contents := map[int64][]models.SubSectionContent{}
	for rows.Next() {
		var c models.SubSectionContent
		if err := rows.Scan(&c.ID, &c.SubSectionID, &c.Kind, &c.Title, &c.URL); err != nil {
			return nil, fmt.Errorf("error scanning subsection content row: %w", err)
		}
		contents[c.SubSectionID] = append(contents[c.SubSectionID], c)
	}

	return contents, rows.Err()
}
