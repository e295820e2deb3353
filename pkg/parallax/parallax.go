// Package parallax はスクロール位置からヒーローセクションの表示スタイルを計算します。
// 計算は純粋関数で、同じ入力には常に同じ出力を返します。
package parallax

import (
	"math"
	"strconv"
	"strings"
)

const (
	// EndRatio はアニメーションが完了するスクロール量のビューポート高さに対する比率です。
	EndRatio = 0.6
	// TopThreshold 以下のスクロール位置はページ最上部として扱います。
	TopThreshold = 1.0
	// FloatClass はボタンの待機アニメーションのクラス名です。
	FloatClass = "animate-gentle-float"

	maxLift  = 200.0
	maxDepth = 400.0
	maxTilt  = 80.0
	maxSwing = 100.0
)

// Element はスタイルを適用するヒーロー要素の名前です。
type Element string

const (
	Badge         Element = "badge"
	Title         Element = "title"
	Paragraph     Element = "paragraph"
	WorkButton    Element = "workButton"
	ContactButton Element = "contactButton"
)

// Elements は対象となる5要素です。
var Elements = []Element{Badge, Title, Paragraph, WorkButton, ContactButton}

// Style は1要素に適用するインラインスタイルです。
// Opacity が nil で Transform が空の場合、インラインの上書きはありません。
type Style struct {
	Opacity   *float64 `json:"opacity"`
	Transform string   `json:"transform,omitempty"`
	Float     bool     `json:"float"`
}

// Cleared はインラインの上書きがないかどうかを返します。
func (s Style) Cleared() bool {
	return s.Opacity == nil && s.Transform == ""
}

// HeroStyles は5要素分のスタイルです。
type HeroStyles struct {
	Progress float64           `json:"progress"`
	Styles   map[Element]Style `json:"styles"`
}

// motion は要素ごとの各変形成分の倍率です。0 の成分は出力しません。
type motion struct {
	lift, depth, tilt, swing float64
}

var motions = map[Element]motion{
	Badge:         {lift: 1, depth: 0.8, tilt: 1},
	Title:         {lift: 1, depth: 1, tilt: 1},
	Paragraph:     {lift: 1.1, depth: 0.9, tilt: 0.9},
	WorkButton:    {depth: 1, swing: 1},
	ContactButton: {depth: 1, swing: -1},
}

// floats は最上部で待機アニメーションを付ける要素です。
var floats = map[Element]bool{
	WorkButton:    true,
	ContactButton: true,
}

// Progress は 0 から 1 に丸めたアニメーションの進捗を返します。
func Progress(scrollY, viewportHeight float64) float64 {
	if scrollY <= 0 || math.IsNaN(scrollY) {
		return 0
	}
	end := viewportHeight * EndRatio
	if end <= 0 || math.IsNaN(end) {
		return 1
	}
	return min(1, scrollY/end)
}

// Compute はスクロール位置とビューポートの高さからヒーロー要素のスタイルを計算します。
// 最上部ではインラインの上書きをすべて外し、ボタンに待機アニメーションを戻します。
func Compute(scrollY, viewportHeight float64) HeroStyles {
	styles := make(map[Element]Style, len(Elements))

	if scrollY <= TopThreshold || math.IsNaN(scrollY) {
		for _, el := range Elements {
			styles[el] = Style{Float: floats[el]}
		}
		return HeroStyles{Progress: 0, Styles: styles}
	}

	p := Progress(scrollY, viewportHeight)
	opacity := 1 - p
	for _, el := range Elements {
		o := opacity
		styles[el] = Style{
			Opacity:   &o,
			Transform: motions[el].transform(p),
		}
	}
	return HeroStyles{Progress: p, Styles: styles}
}

func (m motion) transform(p float64) string {
	lift := -p * maxLift
	depth := -p * maxDepth
	tilt := p * maxTilt
	swing := p * maxSwing

	var parts []string
	if m.lift != 0 {
		parts = append(parts, "translateY("+num(lift*m.lift)+"px)")
	}
	if m.depth != 0 {
		parts = append(parts, "translateZ("+num(depth*m.depth)+"px)")
	}
	if m.tilt != 0 {
		parts = append(parts, "rotateX("+num(tilt*m.tilt)+"deg)")
	}
	if m.swing != 0 {
		parts = append(parts, "rotateY("+num(swing*m.swing)+"deg)")
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	if v == 0 {
		v = 0 // -0 を 0 に正規化
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
