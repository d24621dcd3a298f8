// Seeds a demo course with one section and a few question templates so a
// fresh database has something to generate tests from.
//
// Usage: go run scripts/seed_demo.go

package main

import (
	"encoding/json"
	"family_learn_backend/internal/config"
	"family_learn_backend/internal/model"
	"family_learn_backend/pkg/database"
	"family_learn_backend/pkg/logger"
	"log"
)

type demoInstance struct {
	variables     map[string]interface{}
	answerOptions []string
	correctAnswer string
}

type demoTemplate struct {
	text        string
	explanation string
	instances   []demoInstance
}

var demoTemplates = []demoTemplate{
	{
		text:        "{name} has {a} apples and picks {b} more. How many apples does {name} have now?",
		explanation: "Add the apples together: {a} plus {b}.",
		instances: []demoInstance{
			{
				variables:     map[string]interface{}{"name": "Mia", "a": 2, "b": 3},
				answerOptions: []string{"4", "5", "6"},
				correctAnswer: "5",
			},
			{
				variables:     map[string]interface{}{"name": "Leo", "a": 4, "b": 4},
				answerOptions: []string{"6", "7", "8"},
				correctAnswer: "8",
			},
		},
	},
	{
		text:        "What is {a} times {b}?",
		explanation: "Multiply {a} by {b}.",
		instances: []demoInstance{
			{
				variables:     map[string]interface{}{"a": 3, "b": 4},
				answerOptions: []string{"7", "12", "34"},
				correctAnswer: "12",
			},
			{
				variables:     map[string]interface{}{"a": 5, "b": 6},
				answerOptions: []string{"11", "30", "56"},
				correctAnswer: "30",
			},
		},
	},
	{
		text:        "Which number comes after {a}?",
		explanation: "Counting up from {a} gives the next number.",
		instances: []demoInstance{
			{
				variables:     map[string]interface{}{"a": 9},
				answerOptions: []string{"8", "10", "11"},
				correctAnswer: "10",
			},
		},
	},
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var existing int64
	if err := db.Model(&model.Course{}).Where("title = ?", "Numbers and Counting").Count(&existing).Error; err != nil {
		log.Fatalf("Failed to check existing data: %v", err)
	}
	if existing > 0 {
		log.Println("Demo course already seeded, nothing to do")
		return
	}

	course := &model.Course{
		Title:       "Numbers and Counting",
		Description: "A first math course for young learners.",
	}
	if err := db.Create(course).Error; err != nil {
		log.Fatalf("Failed to create course: %v", err)
	}

	section := &model.Section{
		CourseID: course.ID,
		Title:    "Addition basics",
		Order:    1,
	}
	if err := db.Create(section).Error; err != nil {
		log.Fatalf("Failed to create section: %v", err)
	}

	for i, dt := range demoTemplates {
		template := &model.QuestionTemplate{
			SectionID:   section.ID,
			Text:        dt.text,
			Explanation: dt.explanation,
			Order:       i + 1,
		}
		if err := db.Create(template).Error; err != nil {
			log.Fatalf("Failed to create template: %v", err)
		}

		for _, di := range dt.instances {
			variables, err := json.Marshal(di.variables)
			if err != nil {
				log.Fatalf("Failed to encode variables: %v", err)
			}
			options, err := json.Marshal(di.answerOptions)
			if err != nil {
				log.Fatalf("Failed to encode answer options: %v", err)
			}

			instance := &model.QuestionInstance{
				TemplateID:    template.ID,
				Variables:     variables,
				AnswerOptions: options,
				CorrectAnswer: di.correctAnswer,
			}
			if err := db.Create(instance).Error; err != nil {
				log.Fatalf("Failed to create instance: %v", err)
			}
		}
	}

	log.Println("Demo course seeded")
}
