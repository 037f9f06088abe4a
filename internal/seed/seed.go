package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/truelife/learningapp/internal/pkg/logger"
)

// Run inserts a small development catalog when the database is empty.
// Production databases are never touched: any existing category skips
// the whole seed.
func Run(ctx context.Context, pool *pgxpool.Pool) error {
	var count int64
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var categoryID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO categories (title) VALUES ($1) RETURNING id", "Development").
		Scan(&categoryID)
	if err != nil {
		return fmt.Errorf("failed to seed category: %w", err)
	}

	var subCategoryID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO sub_categories (category_id, title) VALUES ($1, $2) RETURNING id",
		categoryID, "Web Development").
		Scan(&subCategoryID)
	if err != nil {
		return fmt.Errorf("failed to seed subcategory: %w", err)
	}

	var topicID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO topics (subcategory_id, title) VALUES ($1, $2) RETURNING id",
		subCategoryID, "Backend").
		Scan(&topicID)
	if err != nil {
		return fmt.Errorf("failed to seed topic: %w", err)
	}

	courses := []struct {
		title string
		price float64
	}{
		{"Go for Working Programmers", 49.99},
		{"PostgreSQL in Practice", 39.99},
		{"REST API Design", 29.99},
	}
	var firstCourseID int64
	for i, course := range courses {
		var courseID int64
		err = tx.QueryRow(ctx,
			"INSERT INTO courses (topic_id, title, price) VALUES ($1, $2, $3) RETURNING id",
			topicID, course.title, course.price).
			Scan(&courseID)
		if err != nil {
			return fmt.Errorf("failed to seed course: %w", err)
		}
		if i == 0 {
			firstCourseID = courseID
		}
	}

	var sectionID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO sections (course_id, title, position) VALUES ($1, $2, $3) RETURNING id",
		firstCourseID, "Getting Started", 1).
		Scan(&sectionID)
	if err != nil {
		return fmt.Errorf("failed to seed section: %w", err)
	}

	var subSectionID int64
	err = tx.QueryRow(ctx,
		"INSERT INTO subsections (section_id, title, position) VALUES ($1, $2, $3) RETURNING id",
		sectionID, "Course Introduction", 1).
		Scan(&subSectionID)
	if err != nil {
		return fmt.Errorf("failed to seed subsection: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO subsection_contents (subsection_id, kind, title, url) VALUES ($1, $2, $3, $4)",
		subSectionID, "video", "Welcome video", "https://cdn.learningapp.local/videos/intro.mp4")
	if err != nil {
		return fmt.Errorf("failed to seed subsection content: %w", err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO sliders (title, image_url, link_url, position) VALUES ($1, $2, $3, $4)",
		"Welcome", "https://cdn.learningapp.local/banners/welcome.png", "/courses", 1)
	if err != nil {
		return fmt.Errorf("failed to seed slider: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info().Msg("Development data seeded")
	return nil
}
