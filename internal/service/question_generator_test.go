package service

import (
	"encoding/json"
	"errors"
	"family_learn_backend/internal/model"
	"family_learn_backend/internal/util"
	"strings"
	"testing"
)

func template(id string, text, explanation string, instances ...model.QuestionInstance) model.QuestionTemplate {
	tpl := model.QuestionTemplate{
		Text:        text,
		Explanation: explanation,
		Instances:   instances,
	}
	tpl.ID = id
	return tpl
}

func instance(id string, variables, options string, correct string) model.QuestionInstance {
	inst := model.QuestionInstance{
		TemplateID:    "tpl",
		Variables:     json.RawMessage(variables),
		AnswerOptions: json.RawMessage(options),
		CorrectAnswer: correct,
	}
	inst.ID = id
	return inst
}

func TestGenerateSubstitutesAllOccurrences(t *testing.T) {
	gen := NewQuestionGeneratorWithSource(fixedSource{})

	templates := []model.QuestionTemplate{
		template("t1",
			"{name} has {count} apples. How many does {name} have?",
			"Count them: {name} has {count}.",
			instance("i1", `{"name": "Ana", "count": 3}`, `["2", "3", "4"]`, "3"),
		),
	}

	questions, err := gen.Generate(templates)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(questions))
	}

	q := questions[0]
	if q.Text != "Ana has 3 apples. How many does Ana have?" {
		t.Errorf("text = %q", q.Text)
	}
	if q.Explanation != "Count them: Ana has 3." {
		t.Errorf("explanation = %q", q.Explanation)
	}
	if strings.Contains(q.Text, "{") || strings.Contains(q.Explanation, "{") {
		t.Errorf("unsubstituted placeholder left in %q / %q", q.Text, q.Explanation)
	}
	if q.InstanceID != "i1" || q.TemplateID != "t1" {
		t.Errorf("ids = (%s, %s)", q.TemplateID, q.InstanceID)
	}
	if q.CorrectAnswer != "3" {
		t.Errorf("correctAnswer = %q", q.CorrectAnswer)
	}
	if len(q.AnswerOptions) != 3 || q.AnswerOptions[1] != "3" {
		t.Errorf("answerOptions = %v", q.AnswerOptions)
	}
}

func TestGeneratePicksInstanceFromTemplate(t *testing.T) {
	gen := NewQuestionGenerator()

	templates := []model.QuestionTemplate{
		template("t1", "pick one", "",
			instance("i1", `{}`, `["a"]`, "a"),
			instance("i2", `{}`, `["b"]`, "b"),
		),
	}

	for i := 0; i < 20; i++ {
		questions, err := gen.Generate(templates)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		id := questions[0].InstanceID
		if id != "i1" && id != "i2" {
			t.Fatalf("instance id %q is not one of the template's instances", id)
		}
	}
}

func TestGeneratePreservesTemplateOrder(t *testing.T) {
	gen := NewQuestionGeneratorWithSource(fixedSource{})

	templates := []model.QuestionTemplate{
		template("t1", "first", "", instance("i1", `{}`, `[]`, "a")),
		template("t2", "second", "", instance("i2", `{}`, `[]`, "b")),
		template("t3", "third", "", instance("i3", `{}`, `[]`, "c")),
	}

	questions, err := gen.Generate(templates)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for i, wantID := range []string{"t1", "t2", "t3"} {
		if questions[i].TemplateID != wantID {
			t.Errorf("questions[%d].TemplateID = %s, want %s", i, questions[i].TemplateID, wantID)
		}
	}
}

func TestGenerateRejectsTemplateWithoutInstances(t *testing.T) {
	gen := NewQuestionGeneratorWithSource(fixedSource{})

	templates := []model.QuestionTemplate{
		template("t1", "ok", "", instance("i1", `{}`, `[]`, "a")),
		template("t2", "broken", ""),
	}

	_, err := gen.Generate(templates)
	if !errors.Is(err, util.ErrTemplateNoInstances) {
		t.Fatalf("err = %v, want ErrTemplateNoInstances", err)
	}
}

func TestVariableStringFormatsNumbers(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{float64(3), "3"},
		{float64(2.5), "2.5"},
		{"seven", "seven"},
		{true, "true"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := variableString(c.in); got != c.want {
			t.Errorf("variableString(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
