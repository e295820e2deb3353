package domain

import "fmt"

// Category はポートフォリオ作品の分類です。
type Category string

const (
	CategoryPodcast     Category = "Podcast"
	CategoryTalkingHead Category = "Talking Head"
	CategoryAds         Category = "Ads"
	CategorySocialMedia Category = "Social Media"
)

// Categories は表示順に並んだ全カテゴリです。
var Categories = []Category{
	CategoryPodcast,
	CategoryTalkingHead,
	CategoryAds,
	CategorySocialMedia,
}

// Valid は Category が既知の値かどうかを返します。
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Project はギャラリーに表示する参照専用の作品レコードです。
type Project struct {
	Title    string   `json:"title" toml:"title"`
	Category Category `json:"category" toml:"category"`
	ImageURL string   `json:"imageUrl" toml:"image_url"`
	Duration string   `json:"duration" toml:"duration"`
	Link     string   `json:"link" toml:"link"`
}

// String は作品の情報を文字列で返します。
func (p Project) String() string {
	return fmt.Sprintf("%s [%s]", p.Title, p.Category)
}
