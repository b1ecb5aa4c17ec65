package fortune

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/astroverse/fortune-backend/internal/zodiac"
)

// Horizon is the time span a fortune covers.
type Horizon string

const (
	Daily   Horizon = "daily"
	Weekly  Horizon = "weekly"
	Monthly Horizon = "monthly"
)

// Category is the aspect of life a fortune focuses on.
type Category string

const (
	General Category = "general"
	Love    Category = "love"
	Career  Category = "career"
	Wealth  Category = "wealth"
	Health  Category = "health"
)

var horizonLabels = map[Horizon]string{
	Daily:   "今日",
	Weekly:  "本周",
	Monthly: "本月",
}

var categoryLabels = map[Category]string{
	General: "综合运势",
	Love:    "爱情运势",
	Career:  "事业运势",
	Wealth:  "财运",
	Health:  "健康运势",
}

var (
	// ErrMissingZodiacInfo means neither a sign nor a birth date was available.
	ErrMissingZodiacInfo = errors.New("zodiac sign could not be determined, a birth date is required")
	// ErrGeneration wraps failures of the external generation call.
	ErrGeneration = errors.New("fortune generation failed")
)

const systemPrompt = "你是一位专业的占星师和运势预测专家，擅长根据星座、生日等信息为用户提供准确、有趣且富有指导意义的运势预测。你的预测风格温暖、积极，既有娱乐性又有实用价值。"

const emptyFallback = "暂时无法生成运势预测，请稍后再试。"

const (
	maxTokens   = 500
	temperature = 0.8
)

// Request carries everything needed to generate one fortune. It is built per
// call and never persisted; only the generated text is.
type Request struct {
	Name      string
	Sign      zodiac.Key
	BirthDate string // optional YYYY-MM-DD, prompt flavor only
	Horizon   Horizon
	Category  Category
}

// Provider is the external generation service boundary.
type Provider interface {
	Complete(ctx context.Context, system, user string, maxTokens int, temperature float32) (string, error)
	ListModels(ctx context.Context) error
}

// Service builds fortune prompts and dispatches them to a Provider.
type Service struct {
	provider Provider
}

// NewService creates a fortune Service backed by the given provider.
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Generate resolves the sign, composes the prompt and relays the provider's
// answer. An empty provider payload yields a fixed placeholder sentence; a
// failed call is translated to ErrGeneration without fabricating content.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	sign, err := s.resolveSign(req)
	if err != nil {
		return "", err
	}
	req.Sign = sign

	prompt := buildPrompt(req)

	text, err := s.provider.Complete(ctx, systemPrompt, prompt, maxTokens, temperature)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	if strings.TrimSpace(text) == "" {
		return emptyFallback, nil
	}
	return text, nil
}

// resolveSign prefers a freshly supplied birth date over a stored sign.
func (s *Service) resolveSign(req Request) (zodiac.Key, error) {
	if req.BirthDate != "" {
		date, err := zodiac.ParseBirthDate(req.BirthDate)
		if err != nil {
			return "", fmt.Errorf("invalid birth date %q: %w", req.BirthDate, err)
		}
		return zodiac.ResolveSign(date), nil
	}
	if req.Sign != "" {
		return req.Sign, nil
	}
	return "", ErrMissingZodiacInfo
}

// CheckProviderReachable probes the provider and reports reachability.
// Transport errors are logged and reported as false, never propagated.
func (s *Service) CheckProviderReachable(ctx context.Context) bool {
	if err := s.provider.ListModels(ctx); err != nil {
		log.Printf("Generation provider unreachable: %v", err)
		return false
	}
	return true
}

// buildPrompt composes the user-role instruction: the person, sign, horizon
// and category, six fixed authoring constraints, and one category-specific
// focus line (unknown categories fall back to the general line).
func buildPrompt(req Request) string {
	signName := string(req.Sign)
	if info, ok := zodiac.SignInfo(req.Sign); ok {
		signName = info.Name
	}
	horizonLabel := horizonLabels[req.Horizon]
	categoryLabel := categoryLabels[req.Category]

	var b strings.Builder
	fmt.Fprintf(&b, "请为 %s（%s）生成%s的%s预测。", req.Name, signName, horizonLabel, categoryLabel)
	if req.BirthDate != "" {
		fmt.Fprintf(&b, "生日：%s。", req.BirthDate)
	}

	fmt.Fprintf(&b, `

要求：
1. 内容要积极正面，富有指导意义
2. 语言温暖亲切，避免过于神秘或恐怖的表述
3. 提供具体的建议和行动指南
4. 字数控制在200-300字之间
5. 结构清晰，包含运势分析和实用建议
6. 体现%s的性格特点
`, signName)

	b.WriteString("7. " + categoryFocus(req.Category) + "\n")
	return b.String()
}

// categoryFocus is a closed one-to-one mapping; the category set is small and
// fixed, so a switch rather than a dispatch table.
func categoryFocus(category Category) string {
	switch category {
	case Love:
		return "重点关注感情关系、桃花运、恋爱建议等方面"
	case Career:
		return "重点关注工作发展、职场关系、事业机会等方面"
	case Wealth:
		return "重点关注财务状况、投资理财、收入机会等方面"
	case Health:
		return "重点关注身体健康、精神状态、养生建议等方面"
	default:
		return "综合分析各个方面的运势，给出全面的指导"
	}
}

// HorizonLabel returns the localized label for a horizon, empty if unknown.
func HorizonLabel(h Horizon) string { return horizonLabels[h] }

// CategoryLabel returns the localized label for a category, empty if unknown.
func CategoryLabel(c Category) string { return categoryLabels[c] }
