package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/db"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/events"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// EnrollmentService defines the checkout operations
type EnrollmentService interface {
	// CreateEnrollment enrolls the authenticated user in every course of
	// the request, all or nothing, and raises a confirmation event after
	// the transaction commits.
	CreateEnrollment(ctx context.Context, userID int64, req *dto.CreateEnrollmentRequest) (*models.Enrollment, error)
	GetEnrollment(ctx context.Context, id int64) (*models.Enrollment, error)
	ListEnrolledCourses(ctx context.Context, userID int64) ([]models.EnrollmentLine, error)
}

// transactor runs a function inside one database transaction
type transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// enrollmentStore is the slice of the enrollment repository this service uses
type enrollmentStore interface {
	InsertEnrollment(ctx context.Context, tx pgx.Tx) (*models.Enrollment, error)
	InsertLine(ctx context.Context, tx pgx.Tx, enrollmentID, studentID, courseID int64) (*models.EnrollmentLine, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetEnrolledCoursesByStudentID(ctx context.Context, studentID int64) ([]models.EnrollmentLine, error)
}

// studentFinder resolves the requester's student profile
type studentFinder interface {
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
}

// courseFinder resolves requested course ids, preserving request order
type courseFinder interface {
	GetCoursesByIDs(ctx context.Context, ids []int64) ([]models.Course, error)
}

// eventPublisher raises domain events; delivery failures never surface here
type eventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type enrollmentService struct {
	tx       transactor
	store    enrollmentStore
	students studentFinder
	courses  courseFinder
	bus      eventPublisher
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(tx transactor, store enrollmentStore, students studentFinder, courses courseFinder, bus eventPublisher) EnrollmentService {
	return &enrollmentService{
		tx:       tx,
		store:    store,
		students: students,
		courses:  courses,
		bus:      bus,
	}
}

// CreateEnrollment validates the request, writes the enrollment header and
// one line per requested course id inside a single transaction, and
// publishes the confirmation event only after the commit succeeds. The
// course id list is taken as given: duplicates produce duplicate lines.
func (s *enrollmentService) CreateEnrollment(ctx context.Context, userID int64, req *dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	if len(req.EnrollStudents) == 0 {
		return nil, apperrors.ErrEnrollListEmpty
	}

	student, err := s.students.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Resolve the courses up front; missing ids fail the request before
	// any write happens, and the titles feed the confirmation mail.
	courses, err := s.courses.GetCoursesByIDs(ctx, req.EnrollStudents)
	if err != nil {
		return nil, err
	}

	var enrollment *models.Enrollment
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		enrollment, err = s.store.InsertEnrollment(ctx, tx)
		if err != nil {
			return err
		}

		enrollment.Lines = make([]models.EnrollmentLine, 0, len(req.EnrollStudents))
		for _, courseID := range req.EnrollStudents {
			line, err := s.store.InsertLine(ctx, tx, enrollment.ID, student.ID, courseID)
			if err != nil {
				return fmt.Errorf("enrollment failed for course %d: %w", courseID, err)
			}
			enrollment.Lines = append(enrollment.Lines, *line)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("enrollmentID", enrollment.ID).
		Int64("studentID", student.ID).
		Int("courses", len(enrollment.Lines)).
		Msg("Enrollment created")

	titles := make([]string, len(courses))
	for i, course := range courses {
		titles[i] = course.Title
	}

	s.bus.Publish(ctx, notifications.EnrollmentCompleted{
		StudentName:  student.User.FullName(),
		StudentEmail: student.User.Email,
		Courses:      titles,
	})

	return enrollment, nil
}

// GetEnrollment retrieves an enrollment with its lines
func (s *enrollmentService) GetEnrollment(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.store.GetEnrollmentByID(ctx, id)
}

// ListEnrolledCourses retrieves the purchase history of the user's student profile
func (s *enrollmentService) ListEnrolledCourses(ctx context.Context, userID int64) ([]models.EnrollmentLine, error) {
	student, err := s.students.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.store.GetEnrolledCoursesByStudentID(ctx, student.ID)
}
