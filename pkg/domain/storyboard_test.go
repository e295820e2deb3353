package domain

import (
	"encoding/json"
	"testing"
)

func TestStoryboardIdea_JSON(t *testing.T) {
	t.Run("AIからのレスポンス形式をパースできること", func(t *testing.T) {
		inputJSON := `{
			"modelResponseText": "Here is a punchy ad concept.",
			"storyboard": {
				"title": "Morning Fuel",
				"logline": "A sleepy city wakes up one sip at a time.",
				"shotList": [
					{"shotNumber": 1, "cameraAngle": "Drone Shot", "description": "Skyline at dawn."},
					{"shotNumber": 2, "cameraAngle": "Close-up", "description": "Steam rising from a cup."}
				]
			}
		}`

		var idea StoryboardIdea
		if err := json.Unmarshal([]byte(inputJSON), &idea); err != nil {
			t.Fatalf("パース失敗: %v", err)
		}
		if idea.Storyboard.Title != "Morning Fuel" {
			t.Errorf("タイトルが違います: %s", idea.Storyboard.Title)
		}
		if len(idea.Storyboard.ShotList) != 2 || idea.Storyboard.ShotList[1].CameraAngle != "Close-up" {
			t.Error("ショットリストが正しくパースされていません")
		}
	})
}

func TestStoryboardIdea_Clone(t *testing.T) {
	idea := StoryboardIdea{
		Storyboard: Storyboard{
			Title:    "A",
			ShotList: []Shot{{ShotNumber: 1, CameraAngle: "Wide", Description: "x"}},
		},
	}

	c := idea.Clone()
	c.Storyboard.ShotList[0].Description = "y"

	if idea.Storyboard.ShotList[0].Description != "x" {
		t.Error("Clone がショットリストを共有しています")
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%q は有効なはずです", c)
		}
	}
	if Category("All").Valid() {
		t.Error(`"All" はカテゴリではありません`)
	}
}

func TestProject_String(t *testing.T) {
	p := Project{Title: "Tech Breakdown", Category: CategoryTalkingHead}
	expected := "Tech Breakdown [Talking Head]"
	if p.String() != expected {
		t.Errorf("期待値 '%s', 実際の値 '%s'", expected, p.String())
	}
}
