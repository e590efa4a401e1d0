package content

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog holds every localized dataset. It is read-only after Load.
type Catalog struct {
	portfolios map[Locale]*Portfolio
	resumes    map[Locale]*Resume
}

// Embedded loads the datasets compiled into the binary.
func Embedded() (*Catalog, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded data: %w", err)
	}
	return Load(sub)
}

// Load reads portfolio.<locale>.yaml and resume.<locale>.yaml for every
// supported locale from the root of fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{
		portfolios: make(map[Locale]*Portfolio, len(Locales)),
		resumes:    make(map[Locale]*Resume, len(Locales)),
	}
	for _, loc := range Locales {
		p := &Portfolio{}
		if err := decodeFile(fsys, "portfolio."+string(loc)+".yaml", p); err != nil {
			return nil, err
		}
		c.portfolios[loc] = p

		r := &Resume{}
		if err := decodeFile(fsys, "resume."+string(loc)+".yaml", r); err != nil {
			return nil, err
		}
		c.resumes[loc] = r
	}
	return c, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", name, err)
	}
	return nil
}

// Portfolio returns the landing page data for loc, falling back to the
// default locale.
func (c *Catalog) Portfolio(loc Locale) *Portfolio {
	if p, ok := c.portfolios[loc]; ok {
		return p
	}
	return c.portfolios[DefaultLocale]
}

// Resume returns the resume for loc, falling back to the default locale.
func (c *Catalog) Resume(loc Locale) *Resume {
	if r, ok := c.resumes[loc]; ok {
		return r
	}
	return c.resumes[DefaultLocale]
}

// Check runs the cross-locale consistency checks over the catalog.
func (c *Catalog) Check() []Issue {
	return CheckProjectParity(c.Portfolio(English), c.Portfolio(Persian))
}
