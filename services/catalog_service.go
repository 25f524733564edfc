package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/learnfx/academy-api/model"
	"github.com/learnfx/academy-api/services/storage"
	"github.com/learnfx/academy-api/utils/cache"
	"gorm.io/gorm"
)

const categoryCacheTTL = 5 * time.Minute

// CourseFilter narrows the catalog listing. Zero values mean "no filter".
type CourseFilter struct {
	CategorySlug string
	Difficulty   string
	IsPremium    *bool
	Search       string
	Ordering     string
	Page         int
	Limit        int
}

// Orderings the listing accepts; anything else falls back to newest-first.
var allowedOrderings = map[string]string{
	"title":       "title ASC",
	"-title":      "title DESC",
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"price":       "price ASC",
	"-price":      "price DESC",
}

// CatalogService serves the public read paths: categories and the published
// course catalog. Listings are simple projections with no invariants of
// their own.
type CatalogService struct {
	db     *gorm.DB
	cache  *cache.RedisCache     // optional
	spaces *storage.SpacesClient // optional; media URLs stay as keys without it
}

// NewCatalogService creates a new catalog service
func NewCatalogService(db *gorm.DB, redisCache *cache.RedisCache, spaces *storage.SpacesClient) *CatalogService {
	return &CatalogService{db: db, cache: redisCache, spaces: spaces}
}

// ListCategories returns active categories, cached briefly since they
// change rarely.
func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	const cacheKey = "catalog:categories"

	if s.cache != nil {
		var cached []model.Category
		if err := s.cache.GetJSON(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var categories []model.Category
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	for i := range categories {
		categories[i].Icon = s.mediaURL(categories[i].Icon)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, categories, categoryCacheTTL); err != nil {
			log.Printf("Warning: failed to cache categories: %v", err)
		}
	}
	return categories, nil
}

// ListCourses returns published courses matching the filter, plus the total
// match count for pagination.
func (s *CatalogService) ListCourses(ctx context.Context, filter CourseFilter) ([]model.Course, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Course{}).
		Where("courses.is_published = ?", true)

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories ON categories.id = courses.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty_level = ?", filter.Difficulty)
	}
	if filter.IsPremium != nil {
		query = query.Where("courses.is_premium = ?", *filter.IsPremium)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"courses.title ILIKE ? OR courses.description ILIKE ? OR courses.short_description ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	ordering, ok := allowedOrderings[filter.Ordering]
	if !ok {
		ordering = "created_at DESC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var courses []model.Course
	err := query.
		Preload("Category").
		Order(ordering).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	for i := range courses {
		courses[i].Thumbnail = s.mediaURL(courses[i].Thumbnail)
	}
	return courses, total, nil
}

// GetCourse fetches a published course by slug with its published lessons
// in display order.
func (s *CatalogService) GetCourse(ctx context.Context, slug string) (*model.Course, error) {
	var course model.Course
	err := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("sort_order ASC")
		}).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course: %w", err)
	}

	course.Thumbnail = s.mediaURL(course.Thumbnail)
	return &course, nil
}

// GetLesson fetches a published lesson of a published course by slugs,
// with the owning course attached.
func (s *CatalogService) GetLesson(ctx context.Context, courseSlug, lessonSlug string) (*model.Lesson, *model.Course, error) {
	course, err := s.GetCourse(ctx, courseSlug)
	if err != nil {
		return nil, nil, err
	}

	var lesson model.Lesson
	err = s.db.WithContext(ctx).
		Where("course_id = ? AND slug = ? AND is_published = ?", course.ID, lessonSlug, true).
		First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrLessonNotFound
		}
		return nil, nil, fmt.Errorf("failed to fetch lesson: %w", err)
	}
	return &lesson, course, nil
}

// mediaURL resolves an object storage key to a public URL. Keys pass
// through unchanged when no storage client is configured.
func (s *CatalogService) mediaURL(key string) string {
	if key == "" || s.spaces == nil {
		return key
	}
	return s.spaces.GetFileURL(key)
}
