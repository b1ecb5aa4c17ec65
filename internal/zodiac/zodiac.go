package zodiac

import (
	"regexp"
	"time"
)

// Key identifies one of the twelve signs.
type Key string

const (
	Aries       Key = "aries"
	Taurus      Key = "taurus"
	Gemini      Key = "gemini"
	Cancer      Key = "cancer"
	Leo         Key = "leo"
	Virgo       Key = "virgo"
	Libra       Key = "libra"
	Scorpio     Key = "scorpio"
	Sagittarius Key = "sagittarius"
	Capricorn   Key = "capricorn"
	Aquarius    Key = "aquarius"
	Pisces      Key = "pisces"
)

// Sign holds the static display metadata for one sign.
type Sign struct {
	Key         Key    `json:"key"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
	Symbol      string `json:"symbol"`
	DateRange   string `json:"date_range"`
	Element     string `json:"element"`
	Description string `json:"description"`
}

// signs is read-only after package init; safe for concurrent reads.
var signs = map[Key]Sign{
	Aries:       {Key: Aries, Name: "白羊座", EnglishName: "Aries", Symbol: "♈", DateRange: "3月21日 - 4月19日", Element: "火象星座", Description: "热情、积极、勇敢"},
	Taurus:      {Key: Taurus, Name: "金牛座", EnglishName: "Taurus", Symbol: "♉", DateRange: "4月20日 - 5月20日", Element: "土象星座", Description: "稳重、务实、可靠"},
	Gemini:      {Key: Gemini, Name: "双子座", EnglishName: "Gemini", Symbol: "♊", DateRange: "5月21日 - 6月20日", Element: "风象星座", Description: "聪明、好奇、善变"},
	Cancer:      {Key: Cancer, Name: "巨蟹座", EnglishName: "Cancer", Symbol: "♋", DateRange: "6月21日 - 7月22日", Element: "水象星座", Description: "温柔、体贴、感性"},
	Leo:         {Key: Leo, Name: "狮子座", EnglishName: "Leo", Symbol: "♌", DateRange: "7月23日 - 8月22日", Element: "火象星座", Description: "自信、大方、领导力强"},
	Virgo:       {Key: Virgo, Name: "处女座", EnglishName: "Virgo", Symbol: "♍", DateRange: "8月23日 - 9月22日", Element: "土象星座", Description: "细致、完美主义、分析力强"},
	Libra:       {Key: Libra, Name: "天秤座", EnglishName: "Libra", Symbol: "♎", DateRange: "9月23日 - 10月22日", Element: "风象星座", Description: "优雅、平衡、社交能力强"},
	Scorpio:     {Key: Scorpio, Name: "天蝎座", EnglishName: "Scorpio", Symbol: "♏", DateRange: "10月23日 - 11月21日", Element: "水象星座", Description: "神秘、专注、洞察力强"},
	Sagittarius: {Key: Sagittarius, Name: "射手座", EnglishName: "Sagittarius", Symbol: "♐", DateRange: "11月22日 - 12月21日", Element: "火象星座", Description: "自由、乐观、爱冒险"},
	Capricorn:   {Key: Capricorn, Name: "摩羯座", EnglishName: "Capricorn", Symbol: "♑", DateRange: "12月22日 - 1月19日", Element: "土象星座", Description: "务实、有责任心、目标明确"},
	Aquarius:    {Key: Aquarius, Name: "水瓶座", EnglishName: "Aquarius", Symbol: "♒", DateRange: "1月20日 - 2月18日", Element: "风象星座", Description: "独立、创新、人道主义"},
	Pisces:      {Key: Pisces, Name: "双鱼座", EnglishName: "Pisces", Symbol: "♓", DateRange: "2月19日 - 3月20日", Element: "水象星座", Description: "浪漫、直觉、富有同情心"},
}

// ordered keeps the conventional aries..pisces listing order.
var ordered = []Key{
	Aries, Taurus, Gemini, Cancer, Leo, Virgo,
	Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces,
}

// BirthDateLayout is the only accepted textual birth date shape.
const BirthDateLayout = "2006-01-02"

var birthDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ResolveSign maps a calendar date onto a sign. Only month and day matter;
// the twelve intervals cover every (month, day) pair, so there is no error
// case. The capricorn interval wraps the year boundary (Dec 22 - Jan 19).
func ResolveSign(birthDate time.Time) Key {
	month := int(birthDate.Month())
	day := birthDate.Day()

	switch {
	case (month == 3 && day >= 21) || (month == 4 && day <= 19):
		return Aries
	case (month == 4 && day >= 20) || (month == 5 && day <= 20):
		return Taurus
	case (month == 5 && day >= 21) || (month == 6 && day <= 20):
		return Gemini
	case (month == 6 && day >= 21) || (month == 7 && day <= 22):
		return Cancer
	case (month == 7 && day >= 23) || (month == 8 && day <= 22):
		return Leo
	case (month == 8 && day >= 23) || (month == 9 && day <= 22):
		return Virgo
	case (month == 9 && day >= 23) || (month == 10 && day <= 22):
		return Libra
	case (month == 10 && day >= 23) || (month == 11 && day <= 21):
		return Scorpio
	case (month == 11 && day >= 22) || (month == 12 && day <= 21):
		return Sagittarius
	case (month == 12 && day >= 22) || (month == 1 && day <= 19):
		return Capricorn
	case (month == 1 && day >= 20) || (month == 2 && day <= 18):
		return Aquarius
	default:
		return Pisces
	}
}

// SignInfo looks up the static metadata for a key. Unknown keys report
// ok=false instead of failing, so callers can render a neutral state.
func SignInfo(key Key) (Sign, bool) {
	sign, ok := signs[key]
	return sign, ok
}

// AllSigns returns the full table in aries..pisces order.
func AllSigns() []Sign {
	out := make([]Sign, 0, len(ordered))
	for _, key := range ordered {
		out = append(out, signs[key])
	}
	return out
}

// ParseBirthDate parses a YYYY-MM-DD string into a calendar date.
func ParseBirthDate(s string) (time.Time, error) {
	return time.Parse(BirthDateLayout, s)
}

// IsPlausibleBirthDate accepts only the fixed YYYY-MM-DD shape, requires it
// to be a real calendar date, and rejects dates in the future.
func IsPlausibleBirthDate(s string) bool {
	if !birthDatePattern.MatchString(s) {
		return false
	}
	date, err := ParseBirthDate(s)
	if err != nil {
		return false
	}
	return !date.After(time.Now())
}
