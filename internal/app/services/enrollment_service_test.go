package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/db"
	"github.com/truelife/learningapp/internal/notifications"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
	"github.com/truelife/learningapp/internal/pkg/events"
)

// memTransactor mimics transaction semantics without a database: writes
// land in a staging copy that is promoted only when fn returns nil.
type memTransactor struct {
	store *memEnrollmentStore
}

func (t *memTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	t.store.beginStaging()
	if err := fn(ctx, nil); err != nil {
		t.store.rollbackStaging()
		return err
	}
	t.store.commitStaging()
	return nil
}

// memEnrollmentStore is an in-memory enrollment repository
type memEnrollmentStore struct {
	mu sync.Mutex

	nextEnrollmentID int64
	nextLineID       int64

	enrollments map[int64]*models.Enrollment
	lines       []models.EnrollmentLine

	staged        []models.EnrollmentLine
	stagedHeaders []int64

	// failOnCourseID forces the insert of this course id to fail
	failOnCourseID int64
	knownCourses   map[int64]bool
}

func newMemEnrollmentStore(courseIDs ...int64) *memEnrollmentStore {
	known := make(map[int64]bool)
	for _, id := range courseIDs {
		known[id] = true
	}
	return &memEnrollmentStore{
		enrollments:  make(map[int64]*models.Enrollment),
		knownCourses: known,
	}
}

func (s *memEnrollmentStore) beginStaging() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = nil
	s.stagedHeaders = nil
}

func (s *memEnrollmentStore) rollbackStaging() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.stagedHeaders {
		delete(s.enrollments, id)
	}
	s.staged = nil
	s.stagedHeaders = nil
}

func (s *memEnrollmentStore) commitStaging() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, s.staged...)
	s.staged = nil
	s.stagedHeaders = nil
}

func (s *memEnrollmentStore) InsertEnrollment(ctx context.Context, tx pgx.Tx) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextEnrollmentID++
	enrollment := &models.Enrollment{ID: s.nextEnrollmentID}
	s.enrollments[enrollment.ID] = enrollment
	s.stagedHeaders = append(s.stagedHeaders, enrollment.ID)
	return &models.Enrollment{ID: enrollment.ID}, nil
}

func (s *memEnrollmentStore) InsertLine(ctx context.Context, tx pgx.Tx, enrollmentID, studentID, courseID int64) (*models.EnrollmentLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if courseID == s.failOnCourseID && s.failOnCourseID != 0 {
		return nil, errors.New("forced insert failure")
	}
	if !s.knownCourses[courseID] {
		return nil, fmt.Errorf("%w: course %d", apperrors.ErrCourseNotFound, courseID)
	}
	s.nextLineID++
	line := models.EnrollmentLine{
		ID:           s.nextLineID,
		EnrollmentID: enrollmentID,
		StudentID:    studentID,
		CourseID:     courseID,
	}
	s.staged = append(s.staged, line)
	return &line, nil
}

func (s *memEnrollmentStore) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	enrollment, ok := s.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	result := &models.Enrollment{ID: enrollment.ID, CreatedAt: enrollment.CreatedAt}
	for _, line := range s.lines {
		if line.EnrollmentID == id {
			result.Lines = append(result.Lines, line)
		}
	}
	return result, nil
}

func (s *memEnrollmentStore) GetEnrolledCoursesByStudentID(ctx context.Context, studentID int64) ([]models.EnrollmentLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.EnrollmentLine
	for _, line := range s.lines {
		if line.StudentID == studentID {
			result = append(result, line)
		}
	}
	return result, nil
}

func (s *memEnrollmentStore) committedLines() []models.EnrollmentLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.EnrollmentLine(nil), s.lines...)
}

type memStudentFinder struct {
	students map[int64]*models.Student
}

func (f *memStudentFinder) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, ok := f.students[userID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type memCourseFinder struct {
	courses map[int64]models.Course
}

func (f *memCourseFinder) GetCoursesByIDs(ctx context.Context, ids []int64) ([]models.Course, error) {
	result := make([]models.Course, 0, len(ids))
	for _, id := range ids {
		course, ok := f.courses[id]
		if !ok {
			return nil, fmt.Errorf("%w: course %d", apperrors.ErrCourseNotFound, id)
		}
		result = append(result, course)
	}
	return result, nil
}

type capturingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *capturingBus) Publish(ctx context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *capturingBus) published() []events.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]events.Event(nil), b.events...)
}

type enrollmentFixture struct {
	service  services.EnrollmentService
	store    *memEnrollmentStore
	bus      *capturingBus
	students *memStudentFinder
	courses  *memCourseFinder
}

func newEnrollmentFixture() *enrollmentFixture {
	store := newMemEnrollmentStore(3, 7)
	bus := &capturingBus{}
	students := &memStudentFinder{students: map[int64]*models.Student{
		5: {
			ID:     42,
			UserID: 5,
			User: &models.User{
				ID:        5,
				Email:     "aye@example.com",
				FirstName: "Aye",
				LastName:  "Chan",
			},
		},
	}}
	courses := &memCourseFinder{courses: map[int64]models.Course{
		3: {ID: 3, Title: "Go for Working Programmers", Price: 49.99},
		7: {ID: 7, Title: "PostgreSQL in Practice", Price: 39.99},
	}}

	return &enrollmentFixture{
		service:  services.NewEnrollmentService(&memTransactor{store: store}, store, students, courses, bus),
		store:    store,
		bus:      bus,
		students: students,
		courses:  courses,
	}
}

func TestCreateEnrollmentTwoCourses(t *testing.T) {
	f := newEnrollmentFixture()

	enrollment, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 7}})
	require.NoError(t, err)
	require.NotNil(t, enrollment)
	require.Len(t, enrollment.Lines, 2)

	// Lines keep request order and all reference the requester's profile
	assert.Equal(t, int64(3), enrollment.Lines[0].CourseID)
	assert.Equal(t, int64(7), enrollment.Lines[1].CourseID)
	assert.Equal(t, int64(42), enrollment.Lines[0].StudentID)
	assert.Equal(t, int64(42), enrollment.Lines[1].StudentID)
	assert.Equal(t, enrollment.ID, enrollment.Lines[0].EnrollmentID)

	assert.Len(t, f.store.committedLines(), 2)

	published := f.bus.published()
	require.Len(t, published, 1)
	completed, ok := published[0].(notifications.EnrollmentCompleted)
	require.True(t, ok)
	assert.Equal(t, "Aye Chan", completed.StudentName)
	assert.Equal(t, "aye@example.com", completed.StudentEmail)
	assert.Equal(t, []string{"Go for Working Programmers", "PostgreSQL in Practice"}, completed.Courses)
}

func TestCreateEnrollmentEmptyList(t *testing.T) {
	f := newEnrollmentFixture()

	enrollment, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{}})
	require.ErrorIs(t, err, apperrors.ErrEnrollListEmpty)
	assert.Nil(t, enrollment)

	// Nothing written, nothing published
	assert.Empty(t, f.store.committedLines())
	assert.Empty(t, f.bus.published())
}

func TestCreateEnrollmentDuplicateCourseIDs(t *testing.T) {
	f := newEnrollmentFixture()

	enrollment, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 3}})
	require.NoError(t, err)

	// The id list is taken as given: two lines for the same course
	require.Len(t, enrollment.Lines, 2)
	assert.Equal(t, int64(3), enrollment.Lines[0].CourseID)
	assert.Equal(t, int64(3), enrollment.Lines[1].CourseID)
	assert.Len(t, f.store.committedLines(), 2)
}

func TestCreateEnrollmentUnknownCourse(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 999}})
	require.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	assert.Empty(t, f.store.committedLines())
	assert.Empty(t, f.bus.published())
}

func TestCreateEnrollmentRollsBackWhenLastInsertFails(t *testing.T) {
	f := newEnrollmentFixture()
	f.store.failOnCourseID = 7

	_, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 7}})
	require.Error(t, err)

	// The line for course 3 must not survive the failed transaction
	assert.Empty(t, f.store.committedLines())
	assert.Empty(t, f.bus.published())
}

func TestCreateEnrollmentUnknownStudent(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.CreateEnrollment(context.Background(), 12345,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3}})
	require.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.Empty(t, f.bus.published())
}

func TestCreateEnrollmentConcurrent(t *testing.T) {
	f := newEnrollmentFixture()

	const workers = 8
	ids := make([]int64, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			enrollment, err := f.service.CreateEnrollment(context.Background(), 5,
				&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 7}})
			if assert.NoError(t, err) {
				ids[i] = enrollment.ID
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "enrollment ids must be distinct")
		seen[id] = true
	}
	assert.Len(t, f.store.committedLines(), workers*2)
	assert.Len(t, f.bus.published(), workers)
}

func TestListEnrolledCourses(t *testing.T) {
	f := newEnrollmentFixture()

	_, err := f.service.CreateEnrollment(context.Background(), 5,
		&dto.CreateEnrollmentRequest{EnrollStudents: []int64{3, 7}})
	require.NoError(t, err)

	lines, err := f.service.ListEnrolledCourses(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
