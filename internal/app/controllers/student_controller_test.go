package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/controllers"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
)

// fakeStudentService scripts the read-view outcomes per test
type fakeStudentService struct {
	students   []models.Student
	student    *models.Student
	pagination dto.PaginationInfo
	err        error
}

func (s *fakeStudentService) ListStudents(ctx context.Context, page, size int) ([]models.Student, dto.PaginationInfo, error) {
	if s.err != nil {
		return nil, dto.PaginationInfo{}, s.err
	}
	return s.students, s.pagination, nil
}

func (s *fakeStudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.student, nil
}

func (s *fakeStudentService) GetProfile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.student, s.err
}

func (s *fakeStudentService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateStudentRequest) (*models.Student, error) {
	return s.student, s.err
}

func newStudentRouter(service *fakeStudentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewStudentController(service)
	router.GET("/api/v1/students", ctrl.ListStudents)
	router.GET("/api/v1/students/:id", ctrl.GetStudent)
	return router
}

func TestListStudents(t *testing.T) {
	service := &fakeStudentService{
		students: []models.Student{
			{ID: 1, UserID: 5, Phone: "+95911222333",
				User: &models.User{ID: 5, Email: "aye@example.com", FirstName: "Aye", LastName: "Chan"}},
			{ID: 2, UserID: 6,
				User: &models.User{ID: 6, Email: "min@example.com", FirstName: "Min", LastName: "Thu"}},
		},
		pagination: dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 2},
	}
	router := newStudentRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/students", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"email":"aye@example.com"`)
	assert.Contains(t, body, `"email":"min@example.com"`)
	assert.Contains(t, body, `"totalItems":2`)
}

func TestGetStudentByID(t *testing.T) {
	birthDate := time.Date(2000, 4, 12, 0, 0, 0, 0, time.UTC)
	service := &fakeStudentService{
		student: &models.Student{
			ID: 42, UserID: 5, Phone: "+95911222333", BirthDate: &birthDate,
			User: &models.User{ID: 5, Email: "aye@example.com", FirstName: "Aye", LastName: "Chan"},
		},
	}
	router := newStudentRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/students/42", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":42`)
	assert.Contains(t, recorder.Body.String(), `"birthDate":"2000-04-12"`)
}

func TestGetStudentNotFound(t *testing.T) {
	router := newStudentRouter(&fakeStudentService{err: apperrors.ErrStudentNotFound})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/students/999", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RES_001")
}
