package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/truelife/learningapp/internal/app/models"
	"github.com/truelife/learningapp/internal/app/models/dto"
	"github.com/truelife/learningapp/internal/app/services"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/pkg/helpers"
)

// StudentController handles student profile endpoints
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

func studentResponse(student *models.Student) dto.StudentResponse {
	resp := dto.StudentResponse{
		ID:     student.ID,
		UserID: student.UserID,
		Phone:  student.Phone,
	}
	if student.User != nil {
		resp.Email = student.User.Email
		resp.FirstName = student.User.FirstName
		resp.LastName = student.User.LastName
	}
	if student.BirthDate != nil {
		birthDate := student.BirthDate.Format("2006-01-02")
		resp.BirthDate = &birthDate
	}
	return resp
}

// ListStudents godoc
// @Summary List student profiles
// @Tags students
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	students, pagination, err := c.studentService.ListStudents(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	items := make([]dto.StudentResponse, len(students))
	for i := range students {
		items[i] = studentResponse(&students[i])
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.PaginatedResponse{Items: items, Pagination: pagination},
		Timestamp: time.Now(),
	})
}

// GetStudent godoc
// @Summary Get a student profile
// @Tags students
// @Produce json
// @Param id path int true "Student id"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: studentResponse(student), Timestamp: time.Now()})
}

// GetProfile godoc
// @Summary Get the authenticated student's profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /students/me [get]
func (c *StudentController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	student, err := c.studentService.GetProfile(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: studentResponse(student), Timestamp: time.Now()})
}

// UpdateProfile godoc
// @Summary Update the authenticated student's profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateStudentRequest true "Profile fields"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /students/me [put]
func (c *StudentController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	student, err := c.studentService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: studentResponse(student), Timestamp: time.Now()})
}
