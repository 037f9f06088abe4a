package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truelife/learningapp/internal/app/controllers"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
)

// fakeCatalogService scripts the subsection outcomes per test; the rest of
// the catalog surface is stubbed out.
type fakeCatalogService struct {
	subSections []models.SubSection
	subSection  *models.SubSection
	pagination  dto.PaginationInfo
	err         error
}

func (s *fakeCatalogService) ListCategories(ctx context.Context, page, size int) ([]models.Category, dto.PaginationInfo, error) {
	return nil, dto.PaginationInfo{}, nil
}

func (s *fakeCatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return nil, nil
}

func (s *fakeCatalogService) ListSubCategories(ctx context.Context, categoryID int64) ([]models.SubCategory, error) {
	return nil, nil
}

func (s *fakeCatalogService) ListTopics(ctx context.Context, subCategoryID int64) ([]models.Topic, error) {
	return nil, nil
}

func (s *fakeCatalogService) ListCourses(ctx context.Context, filter dto.CourseFilter, page, size int) ([]models.Course, dto.PaginationInfo, error) {
	return nil, dto.PaginationInfo{}, nil
}

func (s *fakeCatalogService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return nil, nil
}

func (s *fakeCatalogService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	return nil, nil
}

func (s *fakeCatalogService) ListDiscounts(ctx context.Context, page, size int) ([]models.Discount, dto.PaginationInfo, error) {
	return nil, dto.PaginationInfo{}, nil
}

func (s *fakeCatalogService) GetDiscount(ctx context.Context, id int64) (*models.Discount, []models.DiscountItem, error) {
	return nil, nil, nil
}

func (s *fakeCatalogService) ListSliders(ctx context.Context) ([]models.Slider, error) {
	return nil, nil
}

func (s *fakeCatalogService) GetSlider(ctx context.Context, id int64) (*models.Slider, error) {
	return nil, nil
}

func (s *fakeCatalogService) ListCompleteSubSections(ctx context.Context, page, size int) ([]models.SubSection, dto.PaginationInfo, error) {
	if s.err != nil {
		return nil, dto.PaginationInfo{}, s.err
	}
	return s.subSections, s.pagination, nil
}

func (s *fakeCatalogService) GetCompleteSubSection(ctx context.Context, id int64) (*models.SubSection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.subSection, nil
}

func newCatalogRouter(service *fakeCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	ctrl := controllers.NewCatalogController(service)
	router.GET("/api/v1/complete_subsections", ctrl.ListCompleteSubSections)
	router.GET("/api/v1/complete_subsections/:id", ctrl.GetCompleteSubSection)
	return router
}

func TestListCompleteSubSections(t *testing.T) {
	service := &fakeCatalogService{
		subSections: []models.SubSection{
			{
				ID: 1, SectionID: 10, Title: "Course Introduction", Position: 1,
				Contents: []models.SubSectionContent{
					{ID: 1, SubSectionID: 1, Kind: models.ContentKindVideo, Title: "Welcome video", URL: "https://cdn.example.com/intro.mp4"},
					{ID: 2, SubSectionID: 1, Kind: models.ContentKindPDF, Title: "Syllabus", URL: "https://cdn.example.com/syllabus.pdf"},
				},
			},
			{
				ID: 2, SectionID: 10, Title: "Setup", Position: 2,
				Contents: []models.SubSectionContent{
					{ID: 3, SubSectionID: 2, Kind: models.ContentKindBlog, Title: "Install guide", URL: "https://blog.example.com/install"},
				},
			},
		},
		pagination: dto.PaginationInfo{CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalItems: 2},
	}
	router := newCatalogRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/complete_subsections", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `"title":"Course Introduction"`)
	assert.Contains(t, body, `"kind":"video"`)
	assert.Contains(t, body, `"kind":"pdf"`)
	assert.Contains(t, body, `"kind":"blog"`)
	assert.Contains(t, body, `"totalItems":2`)
}

func TestGetCompleteSubSection(t *testing.T) {
	service := &fakeCatalogService{
		subSection: &models.SubSection{
			ID: 7, SectionID: 10, Title: "Setup", Position: 2,
			Contents: []models.SubSectionContent{
				{ID: 3, SubSectionID: 7, Kind: models.ContentKindVideo, Title: "Setup video", URL: "https://cdn.example.com/setup.mp4"},
			},
		},
	}
	router := newCatalogRouter(service)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/complete_subsections/7", nil)
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"id":7`)
	assert.Contains(t, recorder.Body.String(), `"kind":"video"`)
}

func TestGetCompleteSubSectionNotFound(t *testing.T) {
	router := newCatalogRouter(&fakeCatalogService{err: apperrors.ErrSubSectionNotFound})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/api/v1/complete_subsections/999", nil)
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "RES_001")
}
