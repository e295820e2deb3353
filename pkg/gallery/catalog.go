package gallery

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// All はカテゴリで絞り込まないことを表す疑似カテゴリです。
const All = "All"

// ErrUnknownCategory は未知のカテゴリが指定された場合のエラーです。
var ErrUnknownCategory = errors.New("unknown project category")

// Catalog は参照専用の作品一覧です。
type Catalog struct {
	projects []domain.Project
}

type catalogFile struct {
	Projects []domain.Project `toml:"projects"`
}

// NewCatalog はスライスから Catalog を生成します。カテゴリが不正な作品があればエラーを返します。
func NewCatalog(projects []domain.Project) (*Catalog, error) {
	for i, p := range projects {
		if !p.Category.Valid() {
			return nil, fmt.Errorf("projects[%d] %q: %w: %q", i, p.Title, ErrUnknownCategory, p.Category)
		}
	}
	cp := make([]domain.Project, len(projects))
	copy(cp, projects)
	return &Catalog{projects: cp}, nil
}

// ParseCatalog は TOML のバイト列から Catalog を生成します。
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("作品カタログのデコードに失敗しました: %w", err)
	}
	return NewCatalog(f.Projects)
}

// LoadCatalog は指定されたファイルパスから Catalog を読み込みます。
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("作品カタログの読み込みに失敗しました: %w", err)
	}
	return ParseCatalog(data)
}

// Categories は絞り込みボタンに並べるカテゴリを表示順で返します。先頭は常に All です。
func Categories() []string {
	out := make([]string, 0, len(domain.Categories)+1)
	out = append(out, All)
	for _, c := range domain.Categories {
		out = append(out, string(c))
	}
	return out
}

// Projects は全作品のコピーを返します。
func (c *Catalog) Projects() []domain.Project {
	out := make([]domain.Project, len(c.projects))
	copy(out, c.projects)
	return out
}

// Filter は指定カテゴリの作品を登録順で返します。All の場合は全作品です。
func (c *Catalog) Filter(category string) ([]domain.Project, error) {
	if category == All {
		return c.Projects(), nil
	}
	cat := domain.Category(category)
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	out := make([]domain.Project, 0, len(c.projects))
	for _, p := range c.projects {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out, nil
}
