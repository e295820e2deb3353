package parallax

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCompute_AtTopClearsOverrides(t *testing.T) {
	for _, y := range []float64{0, 1, -40} {
		hs := Compute(y, 900)
		if hs.Progress != 0 {
			t.Errorf("scrollY=%v: progress = %v", y, hs.Progress)
		}
		for _, el := range Elements {
			s := hs.Styles[el]
			if !s.Cleared() {
				t.Errorf("scrollY=%v %s: 上書きが残っています: %+v", y, el, s)
			}
			if s.Float != floats[el] {
				t.Errorf("scrollY=%v %s: float = %v", y, el, s.Float)
			}
		}
	}
}

func TestCompute_Midway(t *testing.T) {
	hs := Compute(300, 1000)

	if hs.Progress != 0.5 {
		t.Fatalf("progress = %v, want 0.5", hs.Progress)
	}

	want := map[Element]string{
		Badge:         "translateY(-100px) translateZ(-160px) rotateX(40deg)",
		Title:         "translateY(-100px) translateZ(-200px) rotateX(40deg)",
		Paragraph:     "translateY(-110.00000000000001px) translateZ(-180px) rotateX(36deg)",
		WorkButton:    "translateZ(-200px) rotateY(50deg)",
		ContactButton: "translateZ(-200px) rotateY(-50deg)",
	}
	for el, tf := range want {
		s := hs.Styles[el]
		if s.Transform != tf {
			t.Errorf("%s: transform = %q, want %q", el, s.Transform, tf)
		}
		if s.Opacity == nil || *s.Opacity != 0.5 {
			t.Errorf("%s: opacity = %v", el, s.Opacity)
		}
		if s.Float {
			t.Errorf("%s: スクロール中は待機アニメーションを外すべきです", el)
		}
	}
}

func TestCompute_ClampsPastThreshold(t *testing.T) {
	for _, y := range []float64{600, 601, 5000} {
		hs := Compute(y, 1000)
		if hs.Progress != 1 {
			t.Errorf("scrollY=%v: progress = %v, want 1", y, hs.Progress)
		}
		for _, el := range Elements {
			if o := hs.Styles[el].Opacity; o == nil || *o != 0 {
				t.Errorf("scrollY=%v %s: opacity = %v, want 0", y, el, o)
			}
		}
	}
}

func TestCompute_ZeroViewport(t *testing.T) {
	hs := Compute(10, 0)
	if hs.Progress != 1 {
		t.Errorf("progress = %v, want 1", hs.Progress)
	}
}

func TestCompute_NonFiniteInput(t *testing.T) {
	tests := []struct {
		name         string
		scrollY      float64
		viewport     float64
		wantProgress float64
	}{
		{name: "scrollY が NaN なら最上部扱い", scrollY: math.NaN(), viewport: 800, wantProgress: 0},
		{name: "viewport が NaN なら終端扱い", scrollY: 500, viewport: math.NaN(), wantProgress: 1},
		{name: "scrollY が +Inf なら終端扱い", scrollY: math.Inf(1), viewport: 800, wantProgress: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := Compute(tt.scrollY, tt.viewport)
			if hs.Progress != tt.wantProgress {
				t.Errorf("progress = %v, want %v", hs.Progress, tt.wantProgress)
			}
			if _, err := json.Marshal(hs); err != nil {
				t.Errorf("JSON にエンコードできません: %v", err)
			}
		})
	}
}

func TestCompute_Idempotent(t *testing.T) {
	a := Compute(123.4, 812)
	b := Compute(123.4, 812)
	for _, el := range Elements {
		if a.Styles[el].Transform != b.Styles[el].Transform || *a.Styles[el].Opacity != *b.Styles[el].Opacity {
			t.Errorf("%s: 同じ入力で結果が異なります", el)
		}
	}
}

func TestSetup(t *testing.T) {
	p := Setup()
	if p[Title].TransformOrigin != "center bottom" {
		t.Errorf("title origin = %q", p[Title].TransformOrigin)
	}
	if p[WorkButton].TransformOrigin != "right center" || !p[WorkButton].Float {
		t.Errorf("work button = %+v", p[WorkButton])
	}
	if p[ContactButton].AnimationDelay != "-1.5s" || p[ContactButton].TransformOrigin != "left center" {
		t.Errorf("contact button = %+v", p[ContactButton])
	}
}

func TestRevealed(t *testing.T) {
	tests := []struct {
		ratio float64
		want  bool
	}{
		{0, false},
		{0.19, false},
		{0.2, true},
		{1, true},
	}
	for _, tt := range tests {
		if got := Revealed(tt.ratio); got != tt.want {
			t.Errorf("Revealed(%v) = %v, want %v", tt.ratio, got, tt.want)
		}
	}
}
