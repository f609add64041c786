// Package catalog presents a reflection backend as browsable class
// descriptions. Parameters and docblocks go through the registry resolvers,
// so tools see exactly what decorated code would.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jymfony/scriba/runtime/reflection"
	"github.com/jymfony/scriba/runtime/sidechannel"
)

// ErrMemberNotFound is returned for an unknown member index.
var ErrMemberNotFound = errors.New("member not found")

// NotFoundError reports an unknown class reference along with close matches.
type NotFoundError struct {
	Ref         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("class %q not found", e.Ref)
}

// Unwrap lets callers match sidechannel.ErrClassNotFound.
func (e *NotFoundError) Unwrap() error {
	return sidechannel.ErrClassNotFound
}

// Summary is one line of a class listing.
type Summary struct {
	ID      reflection.ClassID `json:"id"`
	FQCN    string             `json:"fqcn"`
	Members int                `json:"members"`
}

// Class is the full description of one class.
type Class struct {
	ID        reflection.ClassID `json:"id"`
	FQCN      string             `json:"fqcn"`
	ClassName string             `json:"className"`
	Namespace string             `json:"namespace,omitempty"`
	Filename  string             `json:"filename,omitempty"`
	Docblock  string             `json:"docblock,omitempty"`
	Members   []Member           `json:"members"`
}

// Member describes one member with its resolved parameters and docblock.
type Member struct {
	Index      int                    `json:"index"`
	Kind       string                 `json:"kind"`
	Docblock   string                 `json:"docblock,omitempty"`
	Parameters []reflection.Parameter `json:"parameters"`
}

// Catalog reads class data from a backend.
type Catalog struct {
	backend  sidechannel.Backend
	registry *reflection.Registry
}

// New creates a catalog over backend.
func New(backend sidechannel.Backend, logger *zap.Logger) *Catalog {
	return &Catalog{
		backend:  backend,
		registry: reflection.NewRegistry(backend, reflection.WithLogger(logger)),
	}
}

// Backend returns the underlying backend.
func (c *Catalog) Backend() sidechannel.Backend {
	return c.backend
}

// List summarizes every class, ordered by id.
func (c *Catalog) List(ctx context.Context) ([]Summary, error) {
	ids, err := c.backend.ClassIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}

	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		data, ok := c.backend.ReflectionData(id)
		if !ok {
			continue
		}
		out = append(out, Summary{ID: id, FQCN: data.QualifiedName(), Members: len(data.Members)})
	}
	return out, nil
}

// Find resolves ref, either a class id or a fully qualified class name.
// Unknown references return a *NotFoundError.
func (c *Catalog) Find(ctx context.Context, ref string) (reflection.ClassID, error) {
	if _, ok := c.backend.ReflectionData(reflection.ClassID(ref)); ok {
		return reflection.ClassID(ref), nil
	}

	classes, err := c.List(ctx)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(classes))
	for _, s := range classes {
		if s.FQCN == ref {
			return s.ID, nil
		}
		names = append(names, s.FQCN)
	}
	return "", &NotFoundError{Ref: ref, Suggestions: suggest(ref, names)}
}

// Describe builds the full description of id.
func (c *Catalog) Describe(id reflection.ClassID) (*Class, error) {
	data, ok := c.backend.ReflectionData(id)
	if !ok {
		return nil, &NotFoundError{Ref: string(id)}
	}

	class := &Class{
		ID:        id,
		FQCN:      data.QualifiedName(),
		ClassName: data.ClassName,
		Namespace: data.Namespace,
		Filename:  data.Filename,
		Docblock:  data.Docblock,
		Members:   make([]Member, 0, len(data.Members)),
	}
	for _, m := range data.Members {
		doc, _ := c.registry.ResolveDocblock(id, m.Index)
		class.Members = append(class.Members, Member{
			Index:      m.Index,
			Kind:       m.Kind,
			Docblock:   doc,
			Parameters: c.registry.ResolveParameters(id, m.Index),
		})
	}
	return class, nil
}

// Parameters resolves the parameters of one member.
func (c *Catalog) Parameters(id reflection.ClassID, index int) ([]reflection.Parameter, error) {
	if err := c.checkMember(id, index); err != nil {
		return nil, err
	}
	return c.registry.ResolveParameters(id, index), nil
}

// Docblock resolves the docblock of one member. A member without one
// returns an empty string and false.
func (c *Catalog) Docblock(id reflection.ClassID, index int) (string, bool, error) {
	if err := c.checkMember(id, index); err != nil {
		return "", false, err
	}
	doc, ok := c.registry.ResolveDocblock(id, index)
	return doc, ok, nil
}

func (c *Catalog) checkMember(id reflection.ClassID, index int) error {
	data, ok := c.backend.ReflectionData(id)
	if !ok {
		return &NotFoundError{Ref: string(id)}
	}
	if _, ok := data.Member(index); !ok {
		return fmt.Errorf("%w: %s#%d", ErrMemberNotFound, id, index)
	}
	return nil
}
