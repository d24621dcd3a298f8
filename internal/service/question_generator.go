package service

import (
	"encoding/json"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/util"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// QuestionGenerator materializes one GeneratedQuestion per template by
// picking a random instance and substituting its variable bindings into the
// template text. The random source is injectable so tests can pin the choice.
type QuestionGenerator struct {
	rng *rand.Rand
}

func NewQuestionGenerator() *QuestionGenerator {
	return &QuestionGenerator{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func NewQuestionGeneratorWithSource(src rand.Source) *QuestionGenerator {
	return &QuestionGenerator{rng: rand.New(src)}
}

// Generate keeps the template order in its output; the submission grader
// relies on the persisted sequence matching it.
func (g *QuestionGenerator) Generate(templates []model.QuestionTemplate) ([]model.GeneratedQuestion, error) {
	questions := make([]model.GeneratedQuestion, 0, len(templates))

	for _, template := range templates {
		if len(template.Instances) == 0 {
			return nil, fmt.Errorf("template %s: %w", template.ID, util.ErrTemplateNoInstances)
		}

		instance := template.Instances[g.rng.Intn(len(template.Instances))]

		text := template.Text
		explanation := template.Explanation

		if len(instance.Variables) > 0 {
			var variables map[string]interface{}
			if err := json.Unmarshal(instance.Variables, &variables); err != nil {
				return nil, fmt.Errorf("template %s instance %s: decode variables: %w", template.ID, instance.ID, err)
			}
			for name, value := range variables {
				placeholder := "{" + name + "}"
				replacement := variableString(value)
				text = strings.ReplaceAll(text, placeholder, replacement)
				if explanation != "" {
					explanation = strings.ReplaceAll(explanation, placeholder, replacement)
				}
			}
		}

		var options []string
		if len(instance.AnswerOptions) > 0 {
			if err := json.Unmarshal(instance.AnswerOptions, &options); err != nil {
				return nil, fmt.Errorf("template %s instance %s: decode answer options: %w", template.ID, instance.ID, err)
			}
		}

		questions = append(questions, model.GeneratedQuestion{
			TemplateID:    template.ID,
			InstanceID:    instance.ID,
			Text:          text,
			Explanation:   explanation,
			AnswerOptions: options,
			CorrectAnswer: instance.CorrectAnswer,
		})
	}

	return questions, nil
}

// variableString renders a JSON-decoded binding value the way it should read
// inside question text. JSON numbers arrive as float64; integral values must
// not pick up a decimal point.
func variableString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
