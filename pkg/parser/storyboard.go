package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// ErrMalformedResponse は応答が JSON として解析できない、またはスキーマを満たさない場合のエラーです。
var ErrMalformedResponse = errors.New("malformed storyboard response")

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// ParseStoryboardIdea は AI の応答テキストから StoryboardIdea を取り出し、スキーマを検証します。
func ParseStoryboardIdea(raw string) (domain.StoryboardIdea, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.StoryboardIdea{}, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	var idea domain.StoryboardIdea
	if err := json.Unmarshal([]byte(extractJSON(raw)), &idea); err != nil {
		return domain.StoryboardIdea{}, fmt.Errorf("%w: AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %v", ErrMalformedResponse, truncateString(raw, 200), err)
	}
	if err := Validate(idea); err != nil {
		return domain.StoryboardIdea{}, err
	}
	return idea, nil
}

// Validate は StoryboardIdea が必須項目をすべて満たしているかを検証します。
func Validate(idea domain.StoryboardIdea) error {
	var problems []string
	if strings.TrimSpace(idea.ModelResponseText) == "" {
		problems = append(problems, "modelResponseText is empty")
	}
	if strings.TrimSpace(idea.Storyboard.Title) == "" {
		problems = append(problems, "storyboard.title is empty")
	}
	if strings.TrimSpace(idea.Storyboard.Logline) == "" {
		problems = append(problems, "storyboard.logline is empty")
	}
	if len(idea.Storyboard.ShotList) == 0 {
		problems = append(problems, "storyboard.shotList is empty")
	}
	for i, shot := range idea.Storyboard.ShotList {
		if shot.ShotNumber <= 0 {
			problems = append(problems, fmt.Sprintf("shotList[%d].shotNumber must be positive", i))
		}
		if strings.TrimSpace(shot.CameraAngle) == "" {
			problems = append(problems, fmt.Sprintf("shotList[%d].cameraAngle is empty", i))
		}
		if strings.TrimSpace(shot.Description) == "" {
			problems = append(problems, fmt.Sprintf("shotList[%d].description is empty", i))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, strings.Join(problems, "; "))
	}
	return nil
}

// extractJSON はコードフェンスや前後の説明文を取り除き、JSON 部分を返します。
func extractJSON(raw string) string {
	if matches := jsonBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		return matches[1]
	}

	// フェンスがなければ最も外側の {...} を使う
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first != -1 && last > first {
		return raw[first : last+1]
	}

	// それもなければ全体を JSON とみなす
	return raw
}

// truncateString は s を先頭 maxLen 文字（rune 単位）に切り詰めます。
func truncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen]) + "..."
}
