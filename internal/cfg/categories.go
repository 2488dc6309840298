package cfg

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/jimlawless/whereami"
	"github.com/pinkcart/go-backend/internal/domain"
	"github.com/pinkcart/go-backend/pkg/e"
	"gopkg.in/yaml.v3"
)

// SlugAll — slug, при котором фильтр по категории не применяется.
const SlugAll = "all"

//go:embed categories.yaml
var defaultCategories []byte

type categoryEntry struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type categoryFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

// CategoryMap — таблица slug -> отображаемое имя категории.
// Порядок записей сохраняется как в файле.
type CategoryMap struct {
	entries []categoryEntry
	bySlug  map[string]int
	byName  map[string]int
}

// DefaultCategoryMap возвращает встроенную таблицу категорий.
func DefaultCategoryMap() *CategoryMap {
	m, err := ParseCategoryMap(defaultCategories)
	if err != nil {
		panic(e.Wrap(whereami.WhereAmI(), err))
	}

	return m
}

// LoadCategoryMap читает таблицу из файла. Пустой путь означает встроенную таблицу.
func LoadCategoryMap(path string) (*CategoryMap, error) {
	if path == "" {
		return DefaultCategoryMap(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return ParseCategoryMap(data)
}

func ParseCategoryMap(data []byte) (*CategoryMap, error) {
	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	m := &CategoryMap{
		entries: make([]categoryEntry, 0, len(file.Categories)),
		bySlug:  make(map[string]int, len(file.Categories)),
		byName:  make(map[string]int, len(file.Categories)),
	}

	for _, c := range file.Categories {
		c.Slug = strings.TrimSpace(c.Slug)
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, e.Wrap(fmt.Sprintf("category %q", c.Slug), e.ErrCategoryRequired)
		}
		if c.Slug == "" {
			c.Slug = domain.Slugify(c.Name)
		}
		if c.Slug == SlugAll {
			return nil, e.Wrap(fmt.Sprintf("category %q: slug is reserved", c.Slug), e.ErrIncorrectEnvVariable)
		}
		if _, dup := m.bySlug[c.Slug]; dup {
			return nil, e.Wrap(fmt.Sprintf("category %q: duplicate slug", c.Slug), e.ErrIncorrectEnvVariable)
		}

		m.bySlug[c.Slug] = len(m.entries)
		m.byName[c.Name] = len(m.entries)
		m.entries = append(m.entries, c)
	}

	return m, nil
}

// Lookup возвращает отображаемое имя по slug.
// Для пустого slug, "all" и неизвестных slug возвращает false: фильтр не применяется.
func (m *CategoryMap) Lookup(slug string) (string, bool) {
	if slug == "" || slug == SlugAll {
		return "", false
	}

	i, ok := m.bySlug[slug]
	if !ok {
		return "", false
	}

	return m.entries[i].Name, true
}

// SlugFor возвращает slug для отображаемого имени, иначе выводит его через Slugify.
func (m *CategoryMap) SlugFor(name string) string {
	if i, ok := m.byName[name]; ok {
		return m.entries[i].Slug
	}

	return domain.Slugify(name)
}

// Categories возвращает категории таблицы в исходном порядке.
func (m *CategoryMap) Categories() []domain.Category {
	res := make([]domain.Category, 0, len(m.entries))
	for _, c := range m.entries {
		res = append(res, domain.Category{
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			Icon:        c.Icon,
		})
	}

	return res
}

func (m *CategoryMap) Len() int {
	return len(m.entries)
}
