package model

// swagger:model Course
type Course struct {
	UUIDBase
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    string    `gorm:"size:255" json:"imageUrl"`
	Sections    []Section `gorm:"foreignKey:CourseID" json:"sections,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Section
type Section struct {
	UUIDBase
	CourseID          string             `gorm:"index;type:varchar(36);not null" json:"courseId"`
	Title             string             `gorm:"size:200;not null" json:"title"`
	Order             int                `gorm:"column:sort_order;default:0" json:"order"`
	QuestionTemplates []QuestionTemplate `gorm:"foreignKey:SectionID" json:"questionTemplates,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
