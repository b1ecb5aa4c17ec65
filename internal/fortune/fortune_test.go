package fortune

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/astroverse/fortune-backend/internal/zodiac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	text    string
	err     error
	listErr error

	lastSystem      string
	lastUser        string
	lastMaxTokens   int
	lastTemperature float32
	calls           int
}

func (s *stubProvider) Complete(_ context.Context, system, user string, maxTokens int, temperature float32) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastUser = user
	s.lastMaxTokens = maxTokens
	s.lastTemperature = temperature
	return s.text, s.err
}

func (s *stubProvider) ListModels(context.Context) error {
	return s.listErr
}

func baseRequest() Request {
	return Request{
		Name:     "小明",
		Sign:     zodiac.Aries,
		Horizon:  Daily,
		Category: General,
	}
}

func TestGenerate_ReturnsProviderText(t *testing.T) {
	provider := &stubProvider{text: "今日运势不错。"}
	svc := NewService(provider)

	text, err := svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, "今日运势不错。", text)

	assert.Equal(t, systemPrompt, provider.lastSystem)
	assert.Equal(t, maxTokens, provider.lastMaxTokens)
	assert.InDelta(t, temperature, provider.lastTemperature, 0.0001)
}

func TestGenerate_EmptyPayloadYieldsPlaceholder(t *testing.T) {
	svc := NewService(&stubProvider{text: "   "})

	text, err := svc.Generate(context.Background(), baseRequest())
	require.NoError(t, err)
	assert.Equal(t, emptyFallback, text)
	assert.NotEmpty(t, text)
}

func TestGenerate_ProviderErrorTranslated(t *testing.T) {
	svc := NewService(&stubProvider{err: errors.New("quota exceeded")})

	text, err := svc.Generate(context.Background(), baseRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Empty(t, text, "no content may be fabricated on failure")
}

func TestGenerate_MissingZodiacInfo(t *testing.T) {
	provider := &stubProvider{text: "x"}
	svc := NewService(provider)

	req := baseRequest()
	req.Sign = ""
	req.BirthDate = ""

	_, err := svc.Generate(context.Background(), req)
	assert.ErrorIs(t, err, ErrMissingZodiacInfo)
	assert.Zero(t, provider.calls, "generation must not proceed without a sign")
}

func TestGenerate_BirthDateRecomputesSign(t *testing.T) {
	provider := &stubProvider{text: "x"}
	svc := NewService(provider)

	// Stored sign says aries, but the supplied birth date is a scorpio day.
	req := baseRequest()
	req.BirthDate = "1990-11-01"

	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Contains(t, provider.lastUser, "天蝎座")
	assert.NotContains(t, provider.lastUser, "白羊座")
}

func TestGenerate_InvalidBirthDate(t *testing.T) {
	svc := NewService(&stubProvider{text: "x"})

	req := baseRequest()
	req.BirthDate = "not-a-date"

	_, err := svc.Generate(context.Background(), req)
	assert.Error(t, err)
}

func TestBuildPrompt_Structure(t *testing.T) {
	req := Request{
		Name:      "小红",
		Sign:      zodiac.Leo,
		BirthDate: "1995-08-01",
		Horizon:   Weekly,
		Category:  Love,
	}

	prompt := buildPrompt(req)

	assert.Contains(t, prompt, "小红")
	assert.Contains(t, prompt, "狮子座")
	assert.Contains(t, prompt, "本周")
	assert.Contains(t, prompt, "爱情运势")
	assert.Contains(t, prompt, "生日：1995-08-01。")

	// The six fixed constraint lines.
	for _, line := range []string{
		"1. 内容要积极正面",
		"2. 语言温暖亲切",
		"3. 提供具体的建议和行动指南",
		"4. 字数控制在200-300字之间",
		"5. 结构清晰",
		"6. 体现狮子座的性格特点",
	} {
		assert.Contains(t, prompt, line)
	}

	// Identical input composes the identical prompt.
	assert.Equal(t, prompt, buildPrompt(req))
}

func TestBuildPrompt_ExactlyOneCategoryLine(t *testing.T) {
	focusLines := map[Category]string{
		Love:   "重点关注感情关系、桃花运、恋爱建议等方面",
		Career: "重点关注工作发展、职场关系、事业机会等方面",
		Wealth: "重点关注财务状况、投资理财、收入机会等方面",
		Health: "重点关注身体健康、精神状态、养生建议等方面",
		General: "综合分析各个方面的运势，给出全面的指导",
	}

	for category, want := range focusLines {
		req := baseRequest()
		req.Category = category
		prompt := buildPrompt(req)

		assert.Equal(t, 1, strings.Count(prompt, "7. "), "category %s", category)
		assert.Contains(t, prompt, "7. "+want, "category %s", category)

		for other, line := range focusLines {
			if other != category {
				assert.NotContains(t, prompt, line, "category %s must not carry the %s line", category, other)
			}
		}
	}
}

func TestBuildPrompt_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	req := baseRequest()
	req.Category = Category("astral-projection")

	prompt := buildPrompt(req)
	assert.Contains(t, prompt, "7. 综合分析各个方面的运势，给出全面的指导")
}

func TestBuildPrompt_OmitsBirthDateWhenAbsent(t *testing.T) {
	prompt := buildPrompt(baseRequest())
	assert.NotContains(t, prompt, "生日：")
}

func TestCheckProviderReachable(t *testing.T) {
	assert.True(t, NewService(&stubProvider{}).CheckProviderReachable(context.Background()))
	assert.False(t, NewService(&stubProvider{listErr: errors.New("dial tcp: timeout")}).CheckProviderReachable(context.Background()))
}
