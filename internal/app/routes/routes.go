package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/truelife/learningapp/internal/app/controllers"
	"github.com/truelife/learningapp/internal/middleware"
	"github.com/truelife/learningapp/internal/pkg/auth"
)

// Controllers groups every controller the router needs
type Controllers struct {
	Auth       *controllers.AuthController
	Catalog    *controllers.CatalogController
	Student    *controllers.StudentController
	Enrollment *controllers.EnrollmentController
	Review     *controllers.ReviewController
}

// courseListCacheTTL bounds how stale the public course list may get
const courseListCacheTTL = 5 * time.Minute

// SetupRoutes registers every endpoint under /api/v1
func SetupRoutes(router *gin.Engine, ctrl Controllers, jwtService *auth.JWTService) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	courseListCache := middleware.NewResponseCache(courseListCacheTTL)

	v1 := router.Group("/api/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", ctrl.Auth.Register)
			authGroup.POST("/login", ctrl.Auth.Login)
			authGroup.POST("/forgot-password", ctrl.Auth.ForgotPassword)
			authGroup.POST("/reset-password", ctrl.Auth.ResetPassword)
		}

		// Public catalog
		v1.GET("/categories", ctrl.Catalog.ListCategories)
		v1.GET("/categories/:id", ctrl.Catalog.GetCategory)
		v1.GET("/categories/:id/subcategories", ctrl.Catalog.ListSubCategories)
		v1.GET("/subcategories/:id/topics", ctrl.Catalog.ListTopics)
		v1.GET("/courses", courseListCache.Handler(), ctrl.Catalog.ListCourses)
		v1.GET("/courses/:id", ctrl.Catalog.GetCourse)
		v1.GET("/courses/:id/reviews", ctrl.Review.ListReviews)
		v1.GET("/reviews", ctrl.Review.ListReviewsByQuery)
		v1.GET("/ratings/:courseId", ctrl.Review.ListRatings)
		v1.GET("/discounts", ctrl.Catalog.ListDiscounts)
		v1.GET("/discounts/:id", ctrl.Catalog.GetDiscount)
		v1.GET("/sliders", ctrl.Catalog.ListSliders)
		v1.GET("/sliders/:id", ctrl.Catalog.GetSlider)
		v1.GET("/complete_subsections", ctrl.Catalog.ListCompleteSubSections)
		v1.GET("/complete_subsections/:id", ctrl.Catalog.GetCompleteSubSection)
		v1.GET("/students", ctrl.Student.ListStudents)
		v1.GET("/students/:id", ctrl.Student.GetStudent)

		// Authenticated surface
		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			protected.PUT("/courses/:id", ctrl.Catalog.UpdateCourse, func(c *gin.Context) {
				if c.Writer.Status() == http.StatusOK {
					courseListCache.Invalidate()
				}
			})

			protected.GET("/students/me", ctrl.Student.GetProfile)
			protected.PUT("/students/me", ctrl.Student.UpdateProfile)
			protected.GET("/students/enrolled_courses", ctrl.Enrollment.ListMyCourses)

			protected.POST("/enrollment", ctrl.Enrollment.CreateEnrollment)
			protected.GET("/enrollment/:id", ctrl.Enrollment.GetEnrollment)

			protected.POST("/reviews", ctrl.Review.CreateReview)
			protected.POST("/ratings", ctrl.Review.CreateRating)
		}
	}
}
