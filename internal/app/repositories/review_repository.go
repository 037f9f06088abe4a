package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/dberrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// ReviewRepository handles review and rating database operations
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetReviewsByCourseID retrieves one page of reviews for a course, newest
// first, with the author attached
func (r *ReviewRepository) GetReviewsByCourseID(ctx context.Context, courseID int64, offset, limit int) ([]models.Review, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("reviews").
		Where(squirrel.Eq{"course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error counting reviews")
		return nil, 0, fmt.Errorf("error counting reviews: %w", err)
	}

	sql, args, err := r.sb.Select(
		"re.id", "re.course_id", "re.student_id", "re.body", "re.created_at",
		"s.id", "s.user_id", "s.phone", "s.birth_date", "s.created_at",
		"u.id", "u.email", "u.first_name", "u.last_name").
		From("reviews re").
		Join("students s ON s.id = re.student_id").
		Join("users u ON u.id = s.user_id").
		Where(squirrel.Eq{"re.course_id": courseID}).
		OrderBy("re.created_at DESC", "re.id DESC").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying reviews")
		return nil, 0, fmt.Errorf("error retrieving reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var review models.Review
		student := models.Student{User: &models.User{}}
		err := rows.Scan(
			&review.ID, &review.CourseID, &review.StudentID, &review.Body, &review.CreatedAt,
			&student.ID, &student.UserID, &student.Phone, &student.BirthDate, &student.CreatedAt,
			&student.User.ID, &student.User.Email, &student.User.FirstName, &student.User.LastName)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning review row: %w", err)
		}
		review.Student = &student
		reviews = append(reviews, review)
	}

	return reviews, total, rows.Err()
}

// GetRatingsByCourseID retrieves every rating left on a course
func (r *ReviewRepository) GetRatingsByCourseID(ctx context.Context, courseID int64) ([]models.Rating, error) {
	sql, args, err := r.sb.Select("id", "course_id", "student_id", "rating").
		From("ratings").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build ratings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", courseID).Msg("Error querying ratings")
		return nil, fmt.Errorf("error retrieving ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var rating models.Rating
		if err := rows.Scan(&rating.ID, &rating.CourseID, &rating.StudentID, &rating.Rating); err != nil {
			return nil, fmt.Errorf("error scanning rating row: %w", err)
		}
		ratings = append(ratings, rating)
	}

	return ratings, rows.Err()
}

// CreateReview stores a new review
func (r *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	sql, args, err := r.sb.Insert("reviews").
		Columns("course_id", "student_id", "body").
		Values(review.CourseID, review.StudentID, review.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create review query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "reviews_course_id_fkey") {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", review.CourseID).Msg("Error executing create review query")
		return fmt.Errorf("error creating review: %w", err)
	}

	return nil
}

// CreateRating stores a rating; one per (course, student) pair
func (r *ReviewRepository) CreateRating(ctx context.Context, rating *models.Rating) error {
	sql, args, err := r.sb.Insert("ratings").
		Columns("course_id", "student_id", "rating").
		Values(rating.CourseID, rating.StudentID, rating.Rating).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create rating query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&rating.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "ratings_course_id_student_id_key") {
			return apperrors.ErrAlreadyRatedCourse
		}
		if dberrors.IsForeignKeyViolation(err, "ratings_course_id_fkey") {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("courseID", rating.CourseID).Msg("Error executing create rating query")
		return fmt.Errorf("error creating rating: %w", err)
	}

	return nil
}
