package prompts

import "google.golang.org/genai"

// StoryboardSchema は構造化出力に使うレスポンススキーマを返します。
// domain.StoryboardIdea の JSON タグと一致させる必要があります。
func StoryboardSchema() *genai.Schema {
	shot := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"shotNumber": {
				Type:        genai.TypeInteger,
				Description: "The sequential number of the shot (1, 2, 3, etc.).",
			},
			"cameraAngle": {
				Type:        genai.TypeString,
				Description: `A brief description of the camera angle or shot type (e.g., "Wide Shot," "Close-up," "Drone Shot").`,
			},
			"description": {
				Type:        genai.TypeString,
				Description: "A description of the action or visuals in the shot.",
			},
		},
		Required: []string{"shotNumber", "cameraAngle", "description"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"modelResponseText": {
				Type:        genai.TypeString,
				Description: "A short, friendly, conversational response to the user, explaining the storyboard concept you created.",
			},
			"storyboard": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "A creative and catchy title for the video project.",
					},
					"logline": {
						Type:        genai.TypeString,
						Description: "A one-sentence summary of the video's concept or story.",
					},
					"shotList": {
						Type:        genai.TypeArray,
						Description: "A list of 3-4 key shots that outline the visual story.",
						Items:       shot,
					},
				},
				Required: []string{"title", "logline", "shotList"},
			},
		},
		Required: []string{"modelResponseText", "storyboard"},
	}
}
