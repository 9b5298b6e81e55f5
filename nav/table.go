package nav

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rpupo63/blog-frontend/errs"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

// Route is one navigable view
type Route struct {
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	RequiresAuth bool   `yaml:"requiresAuth"`
}

// Table is the full route list plus the name of the login route
type Table struct {
	Login  string  `yaml:"login"`
	Routes []Route `yaml:"routes"`
}

// DefaultTable returns the built-in route table
func DefaultTable() Table {
	table, err := LoadTable(bytes.NewReader(defaultRoutes))
	if err != nil {
		panic(fmt.Sprintf("embedded route table: %v", err))
	}
	return table
}

// LoadTable decodes and validates a YAML route table
func LoadTable(r io.Reader) (Table, error) {
	var table Table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return Table{}, errs.NewMalformedPayloadError("route table", err)
	}
	if err := table.Validate(); err != nil {
		return Table{}, err
	}
	return table, nil
}

// LoadTableFile reads a route table from path
func LoadTableFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()
	return LoadTable(f)
}

// Validate checks that names and paths are unique and that the login route
// exists, has no parameters and is reachable without a session.
func (t Table) Validate() error {
	if len(t.Routes) == 0 {
		return errs.NewMissingRequiredFieldError("routes")
	}

	names := map[string]bool{}
	paths := map[string]bool{}
	for _, r := range t.Routes {
		if r.Name == "" {
			return errs.NewMissingRequiredFieldError("routes.name")
		}
		if !strings.HasPrefix(r.Path, "/") {
			return errs.NewInvalidFieldError("routes.path", fmt.Sprintf("route %s: path %q must start with /", r.Name, r.Path))
		}
		if names[r.Name] {
			return errs.NewInvalidFieldError("routes.name", fmt.Sprintf("duplicate route name %s", r.Name))
		}
		if paths[r.Path] {
			return errs.NewInvalidFieldError("routes.path", fmt.Sprintf("duplicate route path %s", r.Path))
		}
		names[r.Name] = true
		paths[r.Path] = true
	}

	login, ok := t.Find(t.Login)
	if !ok {
		return errs.NewInvalidFieldError("login", fmt.Sprintf("login route %q is not in the table", t.Login))
	}
	if login.RequiresAuth {
		return errs.NewInvalidFieldError("login", "login route cannot require authentication")
	}
	if strings.ContainsAny(login.Path, "{*") {
		return errs.NewInvalidFieldError("login", "login route cannot take parameters")
	}
	return nil
}

// Find looks a route up by name
func (t Table) Find(name string) (Route, bool) {
	for _, r := range t.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}
