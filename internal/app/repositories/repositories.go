package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles every repository over one shared connection pool
type Repositories struct {
	UserRepository               *UserRepository
	StudentRepository            *StudentRepository
	CategoryRepository           *CategoryRepository
	CourseRepository             *CourseRepository
	DiscountRepository           *DiscountRepository
	SliderRepository             *SliderRepository
	SectionRepository            *SectionRepository
	ReviewRepository             *ReviewRepository
	EnrollmentRepository         *EnrollmentRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		StudentRepository:            NewStudentRepository(db),
		CategoryRepository:           NewCategoryRepository(db),
		CourseRepository:             NewCourseRepository(db),
		DiscountRepository:           NewDiscountRepository(db),
		SliderRepository:             NewSliderRepository(db),
		SectionRepository:            NewSectionRepository(db),
		ReviewRepository:             NewReviewRepository(db),
		EnrollmentRepository:         NewEnrollmentRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
	}
}
