package repository

import (
	"family_learn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(courseID string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Where("id = ?", courseID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindByIDWithSections(courseID string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sections.sort_order ASC")
	}).Where("id = ?", courseID).First(&course).Error
	return &course, err
}

func (r *CourseRepository) FindAllWithSections() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("sections.sort_order ASC")
	}).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

// FindWithTemplates loads a section together with its ordered question
// templates and each template's instances. This is the section-provider view
// test generation consumes.
func (r *SectionRepository) FindWithTemplates(sectionID string) (*model.Section, error) {
	var section model.Section
	err := r.DB.Preload("QuestionTemplates", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_templates.sort_order ASC")
	}).Preload("QuestionTemplates.Instances").
		Where("id = ?", sectionID).
		First(&section).Error
	return &section, err
}

func (r *SectionRepository) Create(section *model.Section) error {
	return r.DB.Create(section).Error
}
