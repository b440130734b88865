// Package store persists recipe-card templates.
//
// All backends implement [Store] with the same contract:
//   - Create fails with CONFLICT when the id already exists
//   - Get, Update and Delete fail with TEMPLATE_NOT_FOUND for unknown ids
//   - Delete of a default template fails with PERMISSION_DENIED and leaves
//     the stored template untouched
//   - Update keeps the stored IsDefault flag and CreatedAt timestamp
//   - List returns defaults first, then by name
//
// Backends:
//   - [MemoryStore]: in-process map, for tests and the HTTP API demo mode
//   - [FileStore]: one JSON file per template, for the CLI
//   - [RedisStore]: JSON values in Redis, for shared deployments
//   - [MongoStore]: one document per template in MongoDB
//
// Every template is validated with template.Validate before it is written.
package store

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/matzehuels/recipecard/pkg/errors"
	"github.com/matzehuels/recipecard/pkg/template"
)

// Store is the interface for template storage backends.
type Store interface {
	// Create stores a new template.
	Create(ctx context.Context, t template.Template) error

	// Get retrieves a template by id.
	Get(ctx context.Context, id string) (template.Template, error)

	// Update replaces an existing template.
	Update(ctx context.Context, t template.Template) error

	// Delete removes a template. Default templates cannot be deleted.
	Delete(ctx context.Context, id string) error

	// List returns all templates, defaults first.
	List(ctx context.Context) ([]template.Template, error)

	// Close releases backend resources.
	Close() error
}

// EnsureDefaults creates any missing default template. It is safe to call on
// every start and returns how many templates were created.
func EnsureDefaults(ctx context.Context, s Store) (int, error) {
	created := 0
	for _, t := range template.Defaults() {
		_, err := s.Get(ctx, t.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, errors.ErrCodeTemplateNotFound) {
			return created, err
		}
		if err := s.Create(ctx, t); err != nil {
			if errors.Is(err, errors.ErrCodeConflict) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

// checkDelete refuses to delete default templates.
func checkDelete(t template.Template) error {
	if t.IsDefault {
		return errors.New(errors.ErrCodePermissionDenied, "template %s is a default template and cannot be deleted", t.ID)
	}
	return nil
}

// prepareUpdate carries the stored identity fields over to an update.
func prepareUpdate(stored, t template.Template) template.Template {
	t.IsDefault = stored.IsDefault
	t.CreatedAt = stored.CreatedAt
	return t
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeTemplateNotFound, "template %s not found", id)
}

func conflict(id string) error {
	return errors.New(errors.ErrCodeConflict, "template %s already exists", id)
}

func invalid(err error) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInvalidTemplate, err, "invalid template")
}

// sortTemplates orders templates defaults first, then by name, then by id.
func sortTemplates(ts []template.Template) {
	slices.SortFunc(ts, func(a, b template.Template) int {
		if a.IsDefault != b.IsDefault {
			if a.IsDefault {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
