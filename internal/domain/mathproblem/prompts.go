package mathproblem

import (
	"embed"
	"fmt"
	"strconv"

	"github.com/kyleowen12345/math-problem-generator/internal/prompt"
)

//go:embed prompts/*.yml
var promptsFS embed.FS

// Prompts is the math problem prompt bundle.
type Prompts struct {
	prompts map[string]map[string]string
}

// NewPrompts loads the embedded prompt bundle.
func NewPrompts() (*Prompts, error) {
	loaded, err := prompt.LoadYAMLDir(promptsFS, "prompts")
	if err != nil {
		return nil, fmt.Errorf("load mathproblem prompts: %w", err)
	}
	return &Prompts{prompts: loaded}, nil
}

// GenerateSystem returns the problem generation system prompt.
func (p *Prompts) GenerateSystem() (string, error) {
	data, err := p.getPrompt("generate")
	if err != nil {
		return "", err
	}
	return promptField(data, "system", "generate.system")
}

// GenerateUser returns the problem generation user prompt for a profile.
func (p *Prompts) GenerateUser(profile DifficultyProfile) (string, error) {
	data, err := p.getPrompt("generate")
	if err != nil {
		return "", err
	}
	template, err := promptField(data, "user", "generate.user")
	if err != nil {
		return "", err
	}
	formatted, err := prompt.FormatTemplate(template, map[string]string{
		"gradeBand":      profile.GradeBand,
		"operations":     profile.Operations,
		"operationCount": profile.OperationCount,
		"answerMin":      strconv.Itoa(profile.AnswerMin),
		"answerMax":      strconv.Itoa(profile.AnswerMax),
	})
	if err != nil {
		return "", fmt.Errorf("format generate.user: %w", err)
	}
	return formatted, nil
}

// FeedbackSystem returns the feedback system prompt.
func (p *Prompts) FeedbackSystem() (string, error) {
	data, err := p.getPrompt("feedback")
	if err != nil {
		return "", err
	}
	return promptField(data, "system", "feedback.system")
}

// FeedbackUser returns the feedback user prompt for a graded answer.
func (p *Prompts) FeedbackUser(problemText string, userAnswer float64, correctAnswer int, isCorrect bool) (string, error) {
	data, err := p.getPrompt("feedback")
	if err != nil {
		return "", err
	}

	key := "incorrect"
	if isCorrect {
		key = "correct"
	}
	template, err := promptField(data, key, "feedback."+key)
	if err != nil {
		return "", err
	}

	formatted, err := prompt.FormatTemplate(template, map[string]string{
		"problem":       problemText,
		"userAnswer":    strconv.FormatFloat(userAnswer, 'f', -1, 64),
		"correctAnswer": strconv.Itoa(correctAnswer),
	})
	if err != nil {
		return "", fmt.Errorf("format feedback.%s: %w", key, err)
	}
	return formatted, nil
}

func (p *Prompts) getPrompt(name string) (map[string]string, error) {
	if p == nil || p.prompts == nil {
		return nil, fmt.Errorf("mathproblem prompts not initialized")
	}
	promptMap, ok := p.prompts[name]
	if !ok {
		return nil, fmt.Errorf("prompt not found: %s", name)
	}
	return promptMap, nil
}

func promptField(data map[string]string, key string, label string) (string, error) {
	value, ok := data[key]
	if !ok {
		return "", fmt.Errorf("prompt field missing: %s", label)
	}
	return value, nil
}
