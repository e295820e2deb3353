package cmd

import (
	"fmt"

	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/gallery"

	"github.com/spf13/cobra"
)

var projectsCategory string

// projectsCmd はギャラリーの作品一覧を表示するのだ！
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "ギャラリーの作品をカテゴリで絞り込んで表示するのだ！",
	Example: `  storyboard-kit projects
  storyboard-kit projects --category "Talking Head"`,
	RunE: projectsCommand,
}

func init() {
	projectsCmd.Flags().StringVarP(&projectsCategory, "category", "c", gallery.All, "絞り込むカテゴリなのだ（All, Podcast, Talking Head, Ads, Social Media）。")
}

func projectsCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	catalog, err := builder.InitializeCatalog(cfg.ProjectsFile)
	if err != nil {
		return err
	}

	projects, err := catalog.Filter(projectsCategory)
	if err != nil {
		return fmt.Errorf("%w（指定できるのは %v なのだ）", err, gallery.Categories())
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderProjects(projects))
	return nil
}

func renderProjects(projects []domain.Project) string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.Title, string(p.Category), p.Duration, p.Link})
	}
	return renderTable(projectColumns, rows)
}
