// Package catalog loads the permission model from YAML and compiles it into
// the immutable structures the access package evaluates.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gruas/acesso/internal/acesso/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// Document is the YAML schema of a catalog.
type Document struct {
	Version     int                   `yaml:"version" validate:"required,eq=1"`
	Permissions []string              `yaml:"permissions" validate:"dive,permission"`
	Roles       []RoleDoc             `yaml:"roles" validate:"required,min=1,dive"`
	Aliases     map[string]string     `yaml:"aliases" validate:"dive,keys,required,endkeys,required"`
	Surfaces    map[string]SurfaceDoc `yaml:"surfaces" validate:"required,min=1,dive,keys,oneof=dashboard pwa,endkeys"`
	Routes      []RouteDoc            `yaml:"routes" validate:"required,min=1,dive"`
	Legacy      []LegacyDoc           `yaml:"legacy" validate:"dive"`
}

type RoleDoc struct {
	Name        string    `yaml:"name" validate:"required"`
	Rank        int       `yaml:"rank" validate:"min=1,max=10"`
	Description string    `yaml:"description"`
	HomePage    string    `yaml:"home_page" validate:"omitempty,startswith=/"`
	Grants      GrantsDoc `yaml:"grants"`
}

// GrantsDoc lists a role's permissions by access level. Wildcards are
// allowed here and nowhere else.
type GrantsDoc struct {
	Read  []string `yaml:"read" validate:"dive,permission"`
	Write []string `yaml:"write" validate:"dive,permission"`
	Admin []string `yaml:"admin" validate:"dive,permission"`
}

func (g GrantsDoc) empty() bool {
	return len(g.Read) == 0 && len(g.Write) == 0 && len(g.Admin) == 0
}

type SurfaceDoc struct {
	// Allow restricts the surface per role; nil leaves it unrestricted.
	Allow map[string][]string `yaml:"allow" validate:"omitempty,dive,keys,required,endkeys,dive,permission"`
	Menu  MenuDoc             `yaml:"menu" validate:"required"`
}

type MenuDoc struct {
	ID          string         `yaml:"id" validate:"required"`
	Label       string         `yaml:"label"`
	Route       string         `yaml:"route" validate:"omitempty,startswith=/"`
	Icon        string         `yaml:"icon"`
	Description string         `yaml:"description"`
	Exact       bool           `yaml:"exact"`
	Requires    RequirementDoc `yaml:"requires"`
	Children    []MenuDoc      `yaml:"children" validate:"dive"`
}

// RequirementDoc defaults to read level when permissions are named.
type RequirementDoc struct {
	Permissions []string `yaml:"permissions" validate:"dive,concrete_permission"`
	Level       string   `yaml:"level" validate:"omitempty,oneof=none read write admin"`
	All         bool     `yaml:"all"`
}

type RouteDoc struct {
	Pattern  string         `yaml:"pattern" validate:"required,startswith=/"`
	Exact    bool           `yaml:"exact"`
	Requires RequirementDoc `yaml:"requires"`
	MinRank  int            `yaml:"min_rank" validate:"min=0,max=10"`
}

type LegacyDoc struct {
	From string `yaml:"from" validate:"required,startswith=/"`
	To   string `yaml:"to" validate:"required,startswith=/"`
}

// Parse decodes a catalog without validating it.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}
	return &doc, nil
}

// Load reads and parses a catalog file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the catalog embedded in the binary.
func Default() *Document {
	doc, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return doc
}

// DefaultBytes returns the raw embedded catalog.
func DefaultBytes() []byte {
	return append([]byte(nil), defaultCatalog...)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("permission", func(fl validator.FieldLevel) bool {
		return domain.Permission(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("concrete_permission", func(fl validator.FieldLevel) bool {
		p := domain.Permission(fl.Field().String())
		return p.Valid() && !p.IsWildcard()
	})
	return v
}

// Validate checks the document against its struct tags. Structural rules
// that span fields are checked by Compile.
func (d *Document) Validate() error {
	if err := newValidator().Struct(d); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidCatalog, err)
	}
	return nil
}
