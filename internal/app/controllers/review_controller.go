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

// ReviewController handles review and rating endpoints
type ReviewController struct {
	reviewService services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// ListReviews godoc
// @Summary List reviews of a course
// @Tags reviews
// @Produce json
// @Param id path int true "Course id"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id}/reviews [get]
func (c *ReviewController) ListReviews(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	reviews, pagination, err := c.reviewService.ListReviews(ctx, courseID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: reviews, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListReviewsByQuery godoc
// @Summary List reviews filtered by course
// @Tags reviews
// @Produce json
// @Param courseId query int true "Course id"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews [get]
func (c *ReviewController) ListReviewsByQuery(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Query("courseId"), 10, 64)
	if err != nil || courseID <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "courseId query parameter is required")))
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	reviews, pagination, err := c.reviewService.ListReviews(ctx, courseID, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: reviews, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// ListRatings godoc
// @Summary List ratings of a course
// @Tags reviews
// @Produce json
// @Param courseId path int true "Course id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /ratings/{courseId} [get]
func (c *ReviewController) ListRatings(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId")
	if !ok {
		return
	}

	ratings, err := c.reviewService.ListRatings(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: ratings, Timestamp: time.Now()})
}

// CreateReview godoc
// @Summary Post a review on a course
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	review, err := c.reviewService.CreateReview(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: review, Timestamp: time.Now()})
}

// CreateRating godoc
// @Summary Rate a course 1..5
// @Description A student can rate each course once
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRatingRequest true "Rating"
// @Success 201 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /ratings [post]
func (c *ReviewController) CreateRating(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	rating, err := c.reviewService.CreateRating(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: rating, Timestamp: time.Now()})
}
