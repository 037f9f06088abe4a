package services

import (
	"context"

	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/repositories"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

// CatalogService defines the read side of the course catalog
type CatalogService interface {
	ListCategories(ctx context.Context, page, size int) ([]models.Category, dto.PaginationInfo, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	ListSubCategories(ctx context.Context, categoryID int64) ([]models.SubCategory, error)
	ListTopics(ctx context.Context, subCategoryID int64) ([]models.Topic, error)
	ListCourses(ctx context.Context, filter dto.CourseFilter, page, size int) ([]models.Course, dto.PaginationInfo, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	ListDiscounts(ctx context.Context, page, size int) ([]models.Discount, dto.PaginationInfo, error)
	GetDiscount(ctx context.Context, id int64) (*models.Discount, []models.DiscountItem, error)
	ListSliders(ctx context.Context) ([]models.Slider, error)
	GetSlider(ctx context.Context, id int64) (*models.Slider, error)
	ListCompleteSubSections(ctx context.Context, page, size int) ([]models.SubSection, dto.PaginationInfo, error)
	GetCompleteSubSection(ctx context.Context, id int64) (*models.SubSection, error)
}

type catalogService struct {
	categoryRepo *repositories.CategoryRepository
	courseRepo   *repositories.CourseRepository
	discountRepo *repositories.DiscountRepository
	sliderRepo   *repositories.SliderRepository
	sectionRepo  *repositories.SectionRepository
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	categoryRepo *repositories.CategoryRepository,
	courseRepo *repositories.CourseRepository,
	discountRepo *repositories.DiscountRepository,
	sliderRepo *repositories.SliderRepository,
	sectionRepo *repositories.SectionRepository,
) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		courseRepo:   courseRepo,
		discountRepo: discountRepo,
		sliderRepo:   sliderRepo,
		sectionRepo:  sectionRepo,
	}
}

func (s *catalogService) ListCategories(ctx context.Context, page, size int) ([]models.Category, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	categories, total, err := s.categoryRepo.GetAllCategories(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return categories, helpers.NewPaginationInfo(total, page, size), nil
}

func (s *catalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetCategoryByID(ctx, id)
}

func (s *catalogService) ListSubCategories(ctx context.Context, categoryID int64) ([]models.SubCategory, error) {
	// Listing under a missing category is a not-found, not an empty page
	if _, err := s.categoryRepo.GetCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.categoryRepo.GetSubCategoriesByCategoryID(ctx, categoryID)
}

func (s *catalogService) ListTopics(ctx context.Context, subCategoryID int64) ([]models.Topic, error) {
	return s.categoryRepo.GetTopicsBySubCategoryID(ctx, subCategoryID)
}

func (s *catalogService) ListCourses(ctx context.Context, filter dto.CourseFilter, page, size int) ([]models.Course, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	courses, total, err := s.courseRepo.GetAllCourses(ctx, filter, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return courses, helpers.NewPaginationInfo(total, page, size), nil
}

func (s *catalogService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetCourseByID(ctx, id)
}

func (s *catalogService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetCourseByID(ctx, id)
}

func (s *catalogService) ListDiscounts(ctx context.Context, page, size int) ([]models.Discount, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	discounts, total, err := s.discountRepo.GetAllDiscounts(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return discounts, helpers.NewPaginationInfo(total, page, size), nil
}

func (s *catalogService) GetDiscount(ctx context.Context, id int64) (*models.Discount, []models.DiscountItem, error) {
	return s.discountRepo.GetDiscountByID(ctx, id)
}

func (s *catalogService) ListSliders(ctx context.Context) ([]models.Slider, error) {
	return s.sliderRepo.GetAllSliders(ctx)
}

func (s *catalogService) GetSlider(ctx context.Context, id int64) (*models.Slider, error) {
	return s.sliderRepo.GetSliderByID(ctx, id)
}

func (s *catalogService) ListCompleteSubSections(ctx context.Context, page, size int) ([]models.SubSection, dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	subSections, total, err := s.sectionRepo.GetAllSubSections(ctx, int(offset), limit)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return subSections, helpers.NewPaginationInfo(total, page, size), nil
}

func (s *catalogService) GetCompleteSubSection(ctx context.Context, id int64) (*models.SubSection, error) {
	return s.sectionRepo.GetSubSectionByID(ctx, id)
}
