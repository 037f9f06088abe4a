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

// StudentRepository handles student profile database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	student.User = &models.User{}
	err := row.Scan(
		&student.ID, &student.UserID, &student.Phone, &student.BirthDate, &student.CreatedAt,
		&student.User.ID, &student.User.Email, &student.User.FirstName, &student.User.LastName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &student, nil
}

func (r *StudentRepository) baseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.user_id", "s.phone", "s.birth_date", "s.created_at",
		"u.id", "u.email", "u.first_name", "u.last_name").
		From("students s").
		Join("users u ON u.id = s.user_id")
}

// GetAllStudents retrieves one page of student profiles with their accounts
func (r *StudentRepository) GetAllStudents(ctx context.Context, offset, limit int) ([]models.Student, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("students").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := r.baseSelect().
		OrderBy("s.id").
		Offset(uint64(offset)).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying students")
		return nil, 0, fmt.Errorf("error retrieving students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var student models.Student
		student.User = &models.User{}
		if err := rows.Scan(
			&student.ID, &student.UserID, &student.Phone, &student.BirthDate, &student.CreatedAt,
			&student.User.ID, &student.User.Email, &student.User.FirstName, &student.User.LastName); err != nil {
			return nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, student)
	}

	return students, total, rows.Err()
}

// GetStudentByUserID retrieves the student profile owned by a user
func (r *StudentRepository) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"s.user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	return r.scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// GetStudentByID retrieves a student profile by its id
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.baseSelect().
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	return r.scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// UpdateStudent updates the mutable profile fields
func (r *StudentRepository) UpdateStudent(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Update("students").
		Set("phone", student.Phone).
		Set("birth_date", student.BirthDate).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update student query: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", student.ID).Msg("Error executing update student query")
		return fmt.Errorf("error updating student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
