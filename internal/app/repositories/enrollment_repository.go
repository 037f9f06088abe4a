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
	"github.com/truelife/learningapp/internal/pkg/dberrors"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations. The insert
// methods take a pgx.Tx so the service can group the enrollment header and
// all of its lines into one transaction.
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// InsertEnrollment creates the enrollment header inside tx
func (r *EnrollmentRepository) InsertEnrollment(ctx context.Context, tx pgx.Tx) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := tx.QueryRow(ctx,
		"INSERT INTO enrollments DEFAULT VALUES RETURNING id, created_at").
		Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		logger.Error().Err(err).Msg("Error inserting enrollment header")
		return nil, fmt.Errorf("error creating enrollment: %w", err)
	}
	return &enrollment, nil
}

// InsertLine creates one (enrollment, student, course) line inside tx.
// A course id that does not exist surfaces as ErrCourseNotFound so the
// whole transaction rolls back.
func (r *EnrollmentRepository) InsertLine(ctx context.Context, tx pgx.Tx, enrollmentID, studentID, courseID int64) (*models.EnrollmentLine, error) {
	sql, args, err := r.sb.Insert("enrollment_lines").
		Columns("enrollment_id", "student_id", "course_id").
		Values(enrollmentID, studentID, courseID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert line query: %w", err)
	}

	line := models.EnrollmentLine{
		EnrollmentID: enrollmentID,
		StudentID:    studentID,
		CourseID:     courseID,
	}
	if err := tx.QueryRow(ctx, sql, args...).Scan(&line.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err, "enrollment_lines_course_id_fkey") {
			return nil, fmt.Errorf("%w: course %d", apperrors.ErrCourseNotFound, courseID)
		}
		if dberrors.IsForeignKeyViolation(err, "enrollment_lines_student_id_fkey") {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).
			Int64("enrollmentID", enrollmentID).
			Int64("courseID", courseID).
			Msg("Error inserting enrollment line")
		return nil, fmt.Errorf("error creating enrollment line: %w", err)
	}

	return &line, nil
}

// GetEnrollmentByID retrieves an enrollment with its lines in insert order
func (r *EnrollmentRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	headSQL, headArgs, err := r.sb.Select("id", "created_at").
		From("enrollments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment query: %w", err)
	}

	err = r.db.QueryRow(ctx, headSQL, headArgs...).Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		logger.Error().Err(err).Int64("enrollmentID", id).Msg("Error scanning enrollment row")
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	linesSQL, linesArgs, err := r.sb.Select("id", "enrollment_id", "student_id", "course_id").
		From("enrollment_lines").
		Where(squirrel.Eq{"enrollment_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment lines query: %w", err)
	}

	rows, err := r.db.Query(ctx, linesSQL, linesArgs...)
	if err != nil {
		return nil, fmt.Errorf("error retrieving enrollment lines: %w", err)
	}
	defer rows.Close()

	enrollment.Lines = []models.EnrollmentLine{}
	for rows.Next() {
		var line models.EnrollmentLine
		if err := rows.Scan(&line.ID, &line.EnrollmentID, &line.StudentID, &line.CourseID); err != nil {
			return nil, fmt.Errorf("error scanning enrollment line row: %w", err)
		}
		enrollment.Lines = append(enrollment.Lines, line)
	}

	return &enrollment, rows.Err()
}

// GetEnrolledCoursesByStudentID retrieves every course a student has
// purchased, most recent purchase first
func (r *EnrollmentRepository) GetEnrolledCoursesByStudentID(ctx context.Context, studentID int64) ([]models.EnrollmentLine, error) {
	sql, args, err := r.sb.Select(
		"el.id", "el.enrollment_id", "el.student_id", "el.course_id",
		"co.id", "co.topic_id", "co.title", "co.description", "co.price", "co.created_at").
		From("enrollment_lines el").
		Join("courses co ON co.id = el.course_id").
		Where(squirrel.Eq{"el.student_id": studentID}).
		OrderBy("el.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error querying enrolled courses")
		return nil, fmt.Errorf("error retrieving enrolled courses: %w", err)
	}
	defer rows.Close()

	lines := []models.EnrollmentLine{}
	for rows.Next() {
		var line models.EnrollmentLine
		var course models.Course
		err := rows.Scan(
			&line.ID, &line.EnrollmentID, &line.StudentID, &line.CourseID,
			&course.ID, &course.TopicID, &course.Title, &course.Description,
			&course.Price, &course.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning enrolled course row: %w", err)
		}
		line.Course = &course
		lines = append(lines, line)
	}

	return lines, rows.Err()
}
