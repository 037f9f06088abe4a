package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

// CatalogController handles the public catalog endpoints
type CatalogController struct {
	catalogService services.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)))
		return 0, false
	}
	return id, true
}

// ListCategories godoc
// @Summary List categories
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	categories, pagination, err := c.catalogService.ListCategories(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: categories, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetCategory godoc
// @Summary Get a category
// @Tags catalog
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id} [get]
func (c *CatalogController) GetCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.catalogService.GetCategory(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: category, Timestamp: time.Now()})
}

// ListSubCategories godoc
// @Summary List subcategories of a category
// @Tags catalog
// @Produce json
// @Param id path int true "Category id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /categories/{id}/subcategories [get]
func (c *CatalogController) ListSubCategories(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subCategories, err := c.catalogService.ListSubCategories(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: subCategories, Timestamp: time.Now()})
}

// ListTopics godoc
// @Summary List topics of a subcategory
// @Tags catalog
// @Produce json
// @Param id path int true "Subcategory id"
// @Success 200 {object} dto.APIResponse
// @Router /subcategories/{id}/topics [get]
func (c *CatalogController) ListTopics(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	topics, err := c.catalogService.ListTopics(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: topics, Timestamp: time.Now()})
}

// ListCourses godoc
// @Summary List courses
// @Description Lists courses with optional topic, price range and title filters
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param topicId query int false "Filter by topic"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param search query string false "Title substring"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	var filter dto.CourseFilter
	if topicID, err := strconv.ParseInt(ctx.Query("topicId"), 10, 64); err == nil {
		filter.TopicID = topicID
	}
	if minPrice, err := strconv.ParseFloat(ctx.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &minPrice
	}
	if maxPrice, err := strconv.ParseFloat(ctx.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &maxPrice
	}
	filter.Search = ctx.Query("search")

	courses, pagination, err := c.catalogService.ListCourses(ctx, filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: courses, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetCourse godoc
// @Summary Get a course
// @Tags catalog
// @Produce json
// @Param id path int true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course id"
// @Param request body dto.UpdateCourseRequest true "Course fields"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [put]
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	course, err := c.catalogService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course, Timestamp: time.Now()})
}

// ListDiscounts godoc
// @Summary List discounts
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /discounts [get]
func (c *CatalogController) ListDiscounts(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	discounts, pagination, err := c.catalogService.ListDiscounts(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: discounts, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetDiscount godoc
// @Summary Get a discount with its course bindings
// @Tags catalog
// @Produce json
// @Param id path int true "Discount id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /discounts/{id} [get]
func (c *CatalogController) GetDiscount(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	discount, items, err := c.catalogService.GetDiscount(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: gin.H{
			"discount": discount,
			"items":    items,
		},
		Timestamp: time.Now(),
	})
}

// ListSliders godoc
// @Summary List storefront sliders
// @Tags catalog
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /sliders [get]
func (c *CatalogController) ListSliders(ctx *gin.Context) {
	sliders, err := c.catalogService.ListSliders(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: sliders, Timestamp: time.Now()})
}

// GetSlider godoc
// @Summary Get a slider
// @Tags catalog
// @Produce json
// @Param id path int true "Slider id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sliders/{id} [get]
func (c *CatalogController) GetSlider(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	slider, err := c.catalogService.GetSlider(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: slider, Timestamp: time.Now()})
}

// ListCompleteSubSections godoc
// @Summary List subsections with their content attachments
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /complete_subsections [get]
func (c *CatalogController) ListCompleteSubSections(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	subSections, pagination, err := c.catalogService.ListCompleteSubSections(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: subSections, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetCompleteSubSection godoc
// @Summary Get a subsection with its content attachments
// @Tags catalog
// @Produce json
// @Param id path int true "Subsection id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /complete_subsections/{id} [get]
func (c *CatalogController) GetCompleteSubSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	subSection, err := c.catalogService.GetCompleteSubSection(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: subSection, Timestamp: time.Now()})
}
