package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// courseColumns selects a course row with its catalog aggregates. Ratings
// average stays NULL until the first rating lands.
func (r *CourseRepository) courseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"co.id", "co.topic_id", "co.title", "co.description", "co.price", "co.created_at",
		"COUNT(DISTINCT el.id) AS enroll_students_count",
		"AVG(ra.rating) AS ratings_avg",
		"COUNT(DISTINCT re.id) AS reviews_count").
		From("courses co").
		LeftJoin("enrollment_lines el ON el.course_id = co.id").
		LeftJoin("ratings ra ON ra.course_id = co.id").
		LeftJoin("reviews re ON re.course_id = co.id").
		GroupBy("co.id")
}

func scanCourse(row pgx.Row, course *models.Course) error {
	return row.Scan(
		&course.ID, &course.TopicID, &course.Title, &course.Description,
		&course.Price, &course.CreatedAt,
		&course.EnrollStudentsCount, &course.RatingsAvg, &course.ReviewsCount)
}

// GetAllCourses retrieves one filtered page of courses with aggregates
func (r *CourseRepository) GetAllCourses(ctx context.Context, filter dto.CourseFilter, offset, limit int) ([]models.Course, int64, error) {
	countQuery := r.sb.Select("COUNT(*)").From("courses co")
	listQuery := r.courseSelect()

	if filter.TopicID > 0 {
		countQuery = countQuery.Where(squirrel.Eq{"co.topic_id": filter.TopicID})
		listQuery = listQuery.Where(squirrel.Eq{"co.topic_id": filter.TopicID})
	}
	if filter.MinPrice != nil {
		countQuery = countQuery.Where(squirrel.GtOrEq{"co.price": *filter.MinPrice})
		listQuery = listQuery.Where(squirrel.GtOrEq{"co.price": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		countQuery = countQuery.Where(squirrel.LtOrEq{"co.price": *filter.MaxPrice})
		listQuery = listQuery.Where(squirrel.LtOrEq{"co.price": *filter.MaxPrice})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		countQuery = countQuery.Where(squirrel.ILike{"co.title": pattern})
		listQuery = listQuery.Where(squirrel.ILike{"co.title": pattern})
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return nil, 0, fmt.Errorf("error counting courses: %w", err)
	}

	sql, args, err := listQuery.
		OrderBy("co.id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses")
		return nil, 0, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var course models.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, 0, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, total, rows.Err()
}

// GetCourseByID retrieves a single course with aggregates and its topic
func (r *CourseRepository) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.courseSelect().
		Where(squirrel.Eq{"co.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	var course models.Course
	if err := scanCourse(r.db.QueryRow(ctx, sql, args...), &course); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	topicSQL, topicArgs, err := r.sb.Select("id", "subcategory_id", "title").
		From("topics").
		Where(squirrel.Eq{"id": course.TopicID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build topic query: %w", err)
	}

	var topic models.Topic
	err = r.db.QueryRow(ctx, topicSQL, topicArgs...).Scan(&topic.ID, &topic.SubCategoryID, &topic.Title)
	if err == nil {
		course.Topic = &topic
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error retrieving course topic: %w", err)
	}

	return &course, nil
}

// GetCoursesByIDs retrieves courses in the order the ids were given.
// Duplicate ids yield duplicate entries. A missing id maps to
// ErrCourseNotFound.
func (r *CourseRepository) GetCoursesByIDs(ctx context.Context, ids []int64) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}

	sql, args, err := r.sb.Select("id", "topic_id", "title", "description", "price", "created_at").
		From("courses").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build courses by ids query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying courses by ids")
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	defer rows.Close()

	byID := make(map[int64]models.Course, len(ids))
	for rows.Next() {
		var course models.Course
		err := rows.Scan(&course.ID, &course.TopicID, &course.Title, &course.Description,
			&course.Price, &course.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		byID[course.ID] = course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: course %d", apperrors.ErrCourseNotFound, id)
		}
		courses = append(courses, course)
	}

	return courses, nil
}

// UpdateCourse updates the mutable course fields
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("price", course.Price).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}
