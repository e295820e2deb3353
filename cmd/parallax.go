package cmd

import (
	"fmt"
	"strconv"

	"github.com/shouni/go-storyboard-kit/pkg/parallax"

	"github.com/spf13/cobra"
)

var (
	scrollY        float64
	viewportHeight float64
)

// parallaxCmd はスクロール位置に対するヒーロー要素のスタイルを表示するのだ！
var parallaxCmd = &cobra.Command{
	Use:     "parallax",
	Short:   "スクロール位置からヒーロー要素の 3D パララックススタイルを計算するのだ！",
	Example: "  storyboard-kit parallax --scroll-y 300 --viewport 1000",
	RunE:    parallaxCommand,
}

func init() {
	parallaxCmd.Flags().Float64Var(&scrollY, "scroll-y", 0, "縦方向のスクロール量（px）なのだ。")
	parallaxCmd.Flags().Float64Var(&viewportHeight, "viewport", 1000, "ビューポートの高さ（px）なのだ。")
}

func parallaxCommand(cmd *cobra.Command, args []string) error {
	hs := parallax.Compute(scrollY, viewportHeight)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "progress: %s\n", strconv.FormatFloat(hs.Progress, 'f', -1, 64))
	fmt.Fprintln(out, renderHeroStyles(hs))
	return nil
}

func renderHeroStyles(hs parallax.HeroStyles) string {
	rows := make([][]string, 0, len(parallax.Elements))
	for _, el := range parallax.Elements {
		s := hs.Styles[el]
		opacity := "-"
		if s.Opacity != nil {
			opacity = strconv.FormatFloat(*s.Opacity, 'f', -1, 64)
		}
		transform := s.Transform
		if transform == "" {
			transform = "-"
		}
		rows = append(rows, []string{string(el), opacity, transform, strconv.FormatBool(s.Float)})
	}
	return renderTable(heroColumns, rows)
}
