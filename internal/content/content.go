// Package content loads the static portfolio content: profile, section
// catalog, skills, projects, certifications and education.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"

	"github.com/DixDev1621/portfolio/internal/ui"
)

//go:embed content.yaml
var defaultContent []byte

// Regions are the section ids the page template renders, in page order.
var Regions = []string{"home", "about", "skills", "projects", "certifications", "education", "contact"}

type Profile struct {
	Name      string `yaml:"name"`
	Headline  string `yaml:"headline"`
	About     string `yaml:"about"` // markdown
	Email     string `yaml:"email"`
	LinkedIn  string `yaml:"linkedin"`
	GitHub    string `yaml:"github"`
	Photo     string `yaml:"photo"`
	Resume    string `yaml:"resume"`
	Copyright string `yaml:"copyright"`
}

type Skill struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Project struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Source      string `yaml:"source"`
	Demo        string `yaml:"demo,omitempty"`
}

type Certification struct {
	Title  string `yaml:"title"`
	Org    string `yaml:"org"`
	Verify string `yaml:"verify,omitempty"`
}

type Education struct {
	Degree      string `yaml:"degree"`
	Institution string `yaml:"institution"`
	Period      string `yaml:"period"`
}

// Portfolio is the whole page content. It is read-only once loaded.
type Portfolio struct {
	Profile        Profile         `yaml:"profile"`
	Sections       []ui.Section    `yaml:"sections"`
	Skills         []Skill         `yaml:"skills"`
	Tools          []Skill         `yaml:"tools"`
	Projects       []Project       `yaml:"projects"`
	ExtraProjects  []string        `yaml:"extra_projects"`
	Certifications []Certification `yaml:"certifications"`
	Education      []Education     `yaml:"education"`

	catalog   ui.Catalog
	aboutHTML template.HTML
}

// Load reads the content file at path, or the embedded default when path is
// empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Parse(bytes.NewReader(defaultContent))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content %s: %w", path, err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes, validates and prepares a content document.
func Parse(r io.Reader) (*Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	about, err := renderMarkdown(p.Profile.About)
	if err != nil {
		return nil, fmt.Errorf("rendering about: %w", err)
	}
	p.aboutHTML = about
	p.catalog = ui.NewCatalog(p.Sections)
	return &p, nil
}

// Validate checks the document. Section ids must be unique and each must be
// a region the page renders, so navigation never has to check at runtime.
func (p *Portfolio) Validate() error {
	var errs []error

	if strings.TrimSpace(p.Profile.Name) == "" {
		errs = append(errs, errors.New("profile.name is required"))
	}
	if strings.TrimSpace(p.Profile.Email) == "" {
		errs = append(errs, errors.New("profile.email is required"))
	}
	if len(p.Sections) == 0 {
		errs = append(errs, errors.New("sections must not be empty"))
	}

	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		switch {
		case s.ID == "":
			errs = append(errs, fmt.Errorf("sections[%d]: id is required", i))
		case seen[s.ID]:
			errs = append(errs, fmt.Errorf("sections[%d]: duplicate id %q", i, s.ID))
		case !isRegion(s.ID):
			errs = append(errs, fmt.Errorf("sections[%d]: %q is not a page region (want one of %s)",
				i, s.ID, strings.Join(Regions, ", ")))
		}
		if s.Label == "" {
			errs = append(errs, fmt.Errorf("sections[%d]: label is required", i))
		}
		seen[s.ID] = true
	}

	for i, pr := range p.Projects {
		if pr.Title == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: title is required", i))
		}
	}
	for i, c := range p.Certifications {
		if c.Title == "" {
			errs = append(errs, fmt.Errorf("certifications[%d]: title is required", i))
		}
	}
	for i, sk := range p.Skills {
		if sk.Name == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: name is required", i))
		}
	}
	for i, sk := range p.Tools {
		if sk.Name == "" {
			errs = append(errs, fmt.Errorf("tools[%d]: name is required", i))
		}
	}

	return errors.Join(errs...)
}

// Catalog returns the navigation catalog built from Sections.
func (p *Portfolio) Catalog() ui.Catalog { return p.catalog }

// AboutHTML is the sanitised rendering of Profile.About.
func (p *Portfolio) AboutHTML() template.HTML { return p.aboutHTML }

func isRegion(id string) bool {
	for _, r := range Regions {
		if r == id {
			return true
		}
	}
	return false
}

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}
