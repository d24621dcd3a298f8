package model

import "encoding/json"

type TestStatus string

const (
	TestPending TestStatus = "PENDING"
	TestPassed  TestStatus = "PASSED"
	TestFailed  TestStatus = "FAILED"
)

// GeneratedQuestion is the materialized form of one template at
// test-generation time: a copy of the chosen instance's data with all
// placeholders already substituted. Stored as part of the test's Questions
// JSON column, ordered like the section's templates.
type GeneratedQuestion struct {
	TemplateID    string   `json:"templateId"`
	InstanceID    string   `json:"instanceId"`
	Text          string   `json:"text"`
	Explanation   string   `json:"explanation,omitempty"`
	AnswerOptions []string `json:"answerOptions"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// TestAnswer is one submitted answer, matched to a question by instance id.
type TestAnswer struct {
	InstanceID string `json:"instanceId" binding:"required"`
	UserAnswer string `json:"userAnswer"`
}

// QuestionResult is the per-question grading record. UserAnswer is null when
// no answer matched the question's instance id.
type QuestionResult struct {
	Text          string  `json:"text"`
	CorrectAnswer string  `json:"correctAnswer"`
	UserAnswer    *string `json:"userAnswer"`
}

// swagger:model Test
type Test struct {
	UUIDBase
	UserID    uint            `gorm:"index;not null" json:"userId"`
	CourseID  string          `gorm:"index;type:varchar(36);not null" json:"courseId"`
	SectionID string          `gorm:"index;type:varchar(36);not null" json:"sectionId"`
	Status    TestStatus      `gorm:"size:20;default:'PENDING'" json:"status"`
	Score     int             `gorm:"default:0" json:"score"`
	Questions json.RawMessage `gorm:"type:json" json:"questions,omitempty"`
	Results   json.RawMessage `gorm:"type:json" json:"results,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// GeneratedQuestions decodes the embedded question sequence.
func (t *Test) GeneratedQuestions() ([]GeneratedQuestion, error) {
	var questions []GeneratedQuestion
	if len(t.Questions) == 0 {
		return questions, nil
	}
	err := json.Unmarshal(t.Questions, &questions)
	return questions, err
}
