package parallax

// Presentation は初期表示時に一度だけ適用する要素ごとの静的スタイルです。
type Presentation struct {
	TransformOrigin string `json:"transformOrigin,omitempty"`
	AnimationDelay  string `json:"animationDelay,omitempty"`
	Float           bool   `json:"float"`
}

// Setup は3D回転の支点と待機アニメーションの初期設定を返します。
// ボタンは外側へ振れるため、支点を反対側に置きます。
func Setup() map[Element]Presentation {
	return map[Element]Presentation{
		Badge:         {},
		Title:         {TransformOrigin: "center bottom"},
		Paragraph:     {},
		WorkButton:    {TransformOrigin: "right center", Float: true},
		ContactButton: {TransformOrigin: "left center", AnimationDelay: "-1.5s", Float: true},
	}
}

// RevealThreshold は .scroll-animate ブロックを表示状態にする交差率です。
const RevealThreshold = 0.2

// Revealed は交差率からブロックを表示状態にするかを返します。閾値を下回れば再び隠します。
func Revealed(intersectionRatio float64) bool {
	return intersectionRatio >= RevealThreshold
}
