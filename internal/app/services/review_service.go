package services

import (
	"context"

	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/repositories"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

// ReviewService defines review and rating operations
type ReviewService interface {
	ListReviews(ctx context.Context, courseID int64, page, size int) ([]models.Review, dto.PaginationInfo, error)
	ListRatings(ctx context.Context, courseID int64) ([]models.Rating, error)
	CreateReview(ctx context.Context, userID int64, req *dto.CreateReviewRequest) (*models.Review, error)
	CreateRating(ctx context.Context, userID int64, req *dto.CreateRatingRequest) (*models.Rating, error)
}

type reviewService struct {
	reviewRepo  *repositories.ReviewRepository
	studentRepo *repositories.StudentRepository
	courseRepo  *repositories.CourseRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo *repositories.ReviewRepository,
	studentRepo *repositories.StudentRepository,
	courseRepo *repositories.CourseRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
	}
}

// ListReviews retrieves one page of reviews for a course
func (s *reviewService) ListReviews(ctx context.Context, courseID int64, page, size int) ([]models.Review, dto.PaginationInfo, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	reviews, total, err := s.reviewRepo.GetReviewsByCourseID(ctx, courseID, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return reviews, helpers.NewPaginationInfo(total, page, size), nil
}

// ListRatings retrieves every rating left on a course
func (s *reviewService) ListRatings(ctx context.Context, courseID int64) ([]models.Rating, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.reviewRepo.GetRatingsByCourseID(ctx, courseID)
}

// CreateReview posts a review on behalf of the user's student profile
func (s *reviewService) CreateReview(ctx context.Context, userID int64, req *dto.CreateReviewRequest) (*models.Review, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		CourseID:  req.CourseID,
		StudentID: student.ID,
		Body:      req.Body,
	}
	if err := s.reviewRepo.CreateReview(ctx, review); err != nil {
		return nil, err
	}

	review.Student = student
	return review, nil
}

// CreateRating scores a course on behalf of the user's student profile
func (s *reviewService) CreateRating(ctx context.Context, userID int64, req *dto.CreateRatingRequest) (*models.Rating, error) {
	student, err := s.studentRepo.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rating := &models.Rating{
		CourseID:  req.CourseID,
		StudentID: student.ID,
		Rating:    req.Rating,
	}
	if err := s.reviewRepo.CreateRating(ctx, rating); err != nil {
		return nil, err
	}

	return rating, nil
}
