package model

import "encoding/json"

// QuestionTemplate is an authored question shell. Text and Explanation may
// contain {name} placeholders that are bound per instance. Templates are
// immutable once authored; generated tests keep their own copy of the data.
type QuestionTemplate struct {
	UUIDBase
	SectionID   string             `gorm:"index;type:varchar(36);not null" json:"sectionId"`
	Text        string             `gorm:"type:text;not null" json:"text"`
	Explanation string             `gorm:"type:text" json:"explanation"`
	Order       int                `gorm:"column:sort_order;default:0" json:"order"`
	Instances   []QuestionInstance `gorm:"foreignKey:TemplateID" json:"instances,omitempty"`
}

func (QuestionTemplate) TableName() string {
	return "question_templates"
}

// QuestionInstance is one concrete variable-bound variant of a template.
// Variables is a JSON object mapping placeholder name to value;
// AnswerOptions is a JSON array of option strings.
type QuestionInstance struct {
	UUIDBase
	TemplateID    string          `gorm:"index;type:varchar(36);not null" json:"templateId"`
	Variables     json.RawMessage `gorm:"type:json" json:"variables"`
	AnswerOptions json.RawMessage `gorm:"type:json" json:"answerOptions"`
	CorrectAnswer string          `gorm:"size:255;not null" json:"correctAnswer"`
}

func (QuestionInstance) TableName() string {
	return "question_instances"
}
