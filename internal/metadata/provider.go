// Package metadata resolves the revision information shown in the report header.
// The pipeline receives a Provider instead of reading the environment itself.
package metadata

import (
	"os"
	"strings"

	"github.com/xkilldash9x/scanbrief/api/schemas"
)

// Fields is the revision information a Provider can resolve. Empty means unresolved.
type Fields struct {
	Branch     string
	Commit     string
	Repository string
}

// Provider resolves revision metadata.
type Provider interface {
	Lookup() Fields
}

// Resolve converts f into schemas.Metadata, substituting "unknown" for every
// unresolved field.
func Resolve(f Fields) schemas.Metadata {
	return schemas.Metadata{
		Branch:     orUnknown(f.Branch),
		Commit:     orUnknown(f.Commit),
		Repository: orUnknown(f.Repository),
	}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return schemas.UnknownValue
	}
	return s
}

// Static is a Provider returning fixed values.
type Static Fields

func (s Static) Lookup() Fields { return Fields(s) }

// EnvNames names the environment variables an EnvProvider reads.
type EnvNames struct {
	Branch     string
	Commit     string
	Repository string
}

// DefaultEnvNames are the variables set by GitHub Actions.
var DefaultEnvNames = EnvNames{
	Branch:     "GITHUB_REF",
	Commit:     "GITHUB_SHA",
	Repository: "GITHUB_REPOSITORY",
}

// EnvProvider reads metadata from environment variables.
type EnvProvider struct {
	names  EnvNames
	lookup func(string) (string, bool)
}

// NewEnvProvider reads from the process environment.
func NewEnvProvider(names EnvNames) *EnvProvider {
	return NewEnvProviderWithLookup(names, os.LookupEnv)
}

// NewEnvProviderWithLookup reads through lookup, which tests can stub.
func NewEnvProviderWithLookup(names EnvNames, lookup func(string) (string, bool)) *EnvProvider {
	return &EnvProvider{names: names, lookup: lookup}
}

func (e *EnvProvider) Lookup() Fields {
	return Fields{
		Branch:     e.get(e.names.Branch),
		Commit:     e.get(e.names.Commit),
		Repository: e.get(e.names.Repository),
	}
}

func (e *EnvProvider) get(name string) string {
	if name == "" {
		return ""
	}
	v, _ := e.lookup(name)
	return v
}

// Chain consults providers in order and keeps the first non-empty value of each
// field independently.
type Chain []Provider

func (c Chain) Lookup() Fields {
	var out Fields
	for _, p := range c {
		if p == nil {
			continue
		}
		f := p.Lookup()
		if out.Branch == "" {
			out.Branch = f.Branch
		}
		if out.Commit == "" {
			out.Commit = f.Commit
		}
		if out.Repository == "" {
			out.Repository = f.Repository
		}
	}
	return out
}
