package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/pkg/apperrors"
)

// EnrollmentController handles checkout endpoints
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService}
}

// CreateEnrollment godoc
// @Summary Enroll in courses
// @Description Enrolls the authenticated student in every listed course,
// all or nothing. An empty list is rejected before any write.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Course ids"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} map[string]string
// @Failure 404 {object} dto.ErrorResponse
// @Router /enrollment [post]
func (c *EnrollmentController) CreateEnrollment(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	enrollment, err := c.enrollmentService.CreateEnrollment(ctx, userID, &req)
	if err != nil {
		// Wire contract predating the error envelope; clients match on
		// this exact shape
		if errors.Is(err, apperrors.ErrEnrollListEmpty) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"enroll_students": "Enroll Students shouldn't be empty",
			})
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	lines := make([]dto.EnrollmentLineResponse, len(enrollment.Lines))
	for i, line := range enrollment.Lines {
		lines[i] = dto.EnrollmentLineResponse{
			ID:        line.ID,
			StudentID: line.StudentID,
			CourseID:  line.CourseID,
		}
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.EnrollmentResponse{
			ID:             enrollment.ID,
			EnrollStudents: lines,
		},
		Timestamp: time.Now(),
	})
}

// GetEnrollment godoc
// @Summary Get an enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment id"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /enrollment/{id} [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment id")))
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollment(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollment, Timestamp: time.Now()})
}

// ListMyCourses godoc
// @Summary List the authenticated student's purchased courses
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EnrolledCourseResponse}
// @Router /students/enrolled_courses [get]
func (c *EnrollmentController) ListMyCourses(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	lines, err := c.enrollmentService.ListEnrolledCourses(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	courses := make([]dto.EnrolledCourseResponse, len(lines))
	for i, line := range lines {
		courses[i] = dto.EnrolledCourseResponse{
			EnrollmentID: line.EnrollmentID,
			CourseID:     line.CourseID,
			CourseTitle:  line.Course.Title,
			Price:        line.Course.Price,
		}
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses, Timestamp: time.Now()})
}
