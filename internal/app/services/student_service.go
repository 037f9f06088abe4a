package services

import (
	"context"
	"time"

	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/repositories"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

// StudentService defines student profile operations
type StudentService interface {
	ListStudents(ctx context.Context, page, size int) ([]models.Student, dto.PaginationInfo, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	GetProfile(ctx context.Context, userID int64) (*models.Student, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentRequest) (*models.Student, error)
}

type studentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo *repositories.StudentRepository) StudentService {
	return &studentService{studentRepo: studentRepo}
}

// ListStudents retrieves one page of student profiles
func (s *studentService) ListStudents(ctx context.Context, page, size int) ([]models.Student, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	students, total, err := s.studentRepo.GetAllStudents(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return students, helpers.NewPaginationInfo(total, page, size), nil
}

// GetStudent retrieves a student profile by its id
func (s *studentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByID(ctx, id)
}

// GetProfile retrieves the student profile owned by a user
func (s *studentService) GetProfile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.studentRepo.GetStudentByUserID(ctx, userID)
}

// UpdateProfile updates the mutable profile fields
func (s *studentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" {
		student.Phone = req.Phone
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, apperrors.NewValidationError("birthDate must be formatted as YYYY-MM-DD")
		}
		student.BirthDate = &birthDate
	}

	if err := s.studentRepo.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetStudentByUserID(ctx, userID)
}
