package weather

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"mascot-backend/internal/domain/entity"
)

// UnknownLabel is shown for codes outside the WMO table.
const UnknownLabel = "不明"

var labels = map[int]string{
	0:  "快晴",
	1:  "晴れ",
	2:  "晴れ",
	3:  "曇り",
	45: "霧",
	48: "霧",
	51: "小雨",
	53: "雨",
	55: "大雨",
	61: "小雨",
	63: "雨",
	65: "大雨",
	71: "小雪",
	73: "雪",
	75: "大雪",
	77: "雪",
	80: "にわか雨",
	81: "にわか雨",
	82: "にわか雨",
	85: "にわか雪",
	86: "にわか雪",
	95: "雷雨",
	96: "雷雨",
	99: "雷雨",
}

// Describe returns the Japanese label for a WMO weather code.
func Describe(code int) string {
	if label, ok := labels[code]; ok {
		return label
	}
	return UnknownLabel
}

// Summary is the subset of the forecast the mascot talks about.
type Summary struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	Code        int     `json:"weathercode"`
	Label       string  `json:"label"`
}

// String renders the summary the way the mascot announces it.
func (s Summary) String() string {
	return fmt.Sprintf("東京: %s %.1f°C", s.Label, s.Temperature)
}

var errMissingCurrent = errors.New("current.temperature_2m or current.weathercode missing")

// Summarize extracts the current temperature and weather code from an
// Open-Meteo response.
func Summarize(raw []byte) (Summary, error) {
	if !gjson.ValidBytes(raw) {
		return Summary{}, entity.NewError(entity.ErrParseFailed, "summarize weather", errInvalidJSON)
	}
	fields := gjson.GetManyBytes(raw, "current.time", "current.temperature_2m", "current.weathercode")
	if fields[1].Type != gjson.Number || fields[2].Type != gjson.Number {
		return Summary{}, entity.NewError(entity.ErrParseFailed, "summarize weather", errMissingCurrent)
	}
	code := int(fields[2].Int())
	return Summary{
		Time:        fields[0].String(),
		Temperature: fields[1].Float(),
		Code:        code,
		Label:       Describe(code),
	}, nil
}
