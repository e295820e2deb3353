package domain

// StoryboardIdea は AI モデルから返される1ターン分の応答全体の構造です。
// 会話用のテキストと、累積的に更新されたストーリーボードを持ちます。
type StoryboardIdea struct {
	ModelResponseText string     `json:"modelResponseText"`
	Storyboard        Storyboard `json:"storyboard"`
}

// Storyboard は動画企画のショット単位の構成案です。
type Storyboard struct {
	Title    string `json:"title"`
	Logline  string `json:"logline"`
	ShotList []Shot `json:"shotList"`
}

// Shot はストーリーボードの1ショットです。ShotNumber は 1 始まりの連番です。
type Shot struct {
	ShotNumber  int    `json:"shotNumber"`
	CameraAngle string `json:"cameraAngle"`
	Description string `json:"description"`
}

// Clone は ShotList を共有しないコピーを返します。
func (s StoryboardIdea) Clone() StoryboardIdea {
	c := s
	if s.Storyboard.ShotList != nil {
		c.Storyboard.ShotList = make([]Shot, len(s.Storyboard.ShotList))
		copy(c.Storyboard.ShotList, s.Storyboard.ShotList)
	}
	return c
}
