package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/controllers"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
)

// fakeEnrollmentService scripts the service outcome per test
type fakeEnrollmentService struct {
	enrollment *models.Enrollment
	err        error
	gotUserID  int64
	gotRequest *dto.CreateEnrollmentRequest
}

func (s *fakeEnrollmentService) CreateEnrollment(ctx context.Context, userID int64, req *dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	s.gotUserID = userID
	s.gotRequest = req
	if s.err != nil {
		return nil, s.err
	}
	if len(req.EnrollStudents) == 0 {
		return nil, apperrors.ErrEnrollListEmpty
	}
	return s.enrollment, nil
}

func (s *fakeEnrollmentService) GetEnrollment(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.enrollment, s.err
}

func (s *fakeEnrollmentService) ListEnrolledCourses(ctx context.Context, userID int64) ([]models.EnrollmentLine, error) {
	return nil, s.err
}

func newEnrollmentRouter(service *fakeEnrollmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/enrollment", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, int64(5))
	}, controllers.NewEnrollmentController(service).CreateEnrollment)
	return router
}

func TestCreateEnrollmentEmptyListWireFormat(t *testing.T) {
	router := newEnrollmentRouter(&fakeEnrollmentService{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/enrollment",
		strings.NewReader(`{"enroll_students": []}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t,
		`{"enroll_students": "Enroll Students shouldn't be empty"}`,
		recorder.Body.String())
}

func TestCreateEnrollmentCreated(t *testing.T) {
	service := &fakeEnrollmentService{
		enrollment: &models.Enrollment{
			ID: 7,
			Lines: []models.EnrollmentLine{
				{ID: 1, EnrollmentID: 7, StudentID: 42, CourseID: 3},
				{ID: 2, EnrollmentID: 7, StudentID: 42, CourseID: 9},
			},
		},
	}
	router := newEnrollmentRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/enrollment",
		strings.NewReader(`{"enroll_students": [3, 9]}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, int64(5), service.gotUserID)
	require.NotNil(t, service.gotRequest)
	assert.Equal(t, []int64{3, 9}, service.gotRequest.EnrollStudents)

	body := recorder.Body.String()
	assert.Contains(t, body, `"id":7`)
	assert.Contains(t, body, `"courseId":3`)
	assert.Contains(t, body, `"courseId":9`)
}

func TestCreateEnrollmentUnknownCourseIs404(t *testing.T) {
	router := newEnrollmentRouter(&fakeEnrollmentService{err: apperrors.ErrCourseNotFound})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/enrollment",
		strings.NewReader(`{"enroll_students": [999]}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RES_001")
}

func TestCreateEnrollmentRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/enrollment",
		controllers.NewEnrollmentController(&fakeEnrollmentService{}).CreateEnrollment)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/api/v1/enrollment",
		strings.NewReader(`{"enroll_students": [3]}`))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
