package draft

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopctl/internal/api"
)

type payload struct {
	Name  string  `json:"name" validate:"required"`
	Slug  string  `json:"slug" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
	Note  *string `json:"note,omitempty"`
}

func TestNewVsEdit(t *testing.T) {
	n := New(payload{Slug: "draft"})
	assert.True(t, n.IsNew())

	e := Edit(payload{Name: "Shoes", Slug: "shoes"}, 42)
	assert.False(t, e.IsNew())
	assert.Equal(t, int64(42), e.ID())
	assert.Equal(t, "Shoes", e.Value().Name, "edit seeds from the record")
}

func TestEditSeedsShallowCopy(t *testing.T) {
	original := payload{Name: "Shoes", Slug: "shoes"}
	f := Edit(original, 1)
	f.Value().Name = "Boots"
	assert.Equal(t, "Shoes", original.Name, "mutating the draft must not touch the source record")
}

func TestValidateStructTags(t *testing.T) {
	f := New(payload{Price: -1})
	ok := f.Validate()
	assert.False(t, ok)
	assert.Equal(t, "required", f.FieldError("name"))
	assert.Equal(t, "required", f.FieldError("slug"))
	assert.NotEmpty(t, f.FieldError("price"))
}

func TestValidateCustomChecks(t *testing.T) {
	f := New(payload{Name: "X", Slug: "x"})
	ok := f.Validate(func(p *payload) map[string]string {
		if len(p.Name) < 2 {
			return map[string]string{"name": "too short"}
		}
		return nil
	})
	assert.False(t, ok)
	assert.Equal(t, "too short", f.FieldError("name"))
}

func TestSaveDispatchesCreateOrUpdate(t *testing.T) {
	var created, updated bool

	f := New(payload{Name: "A", Slug: "a"})
	err := f.Save(context.Background(), nil,
		func(context.Context, payload) error { created = true; return nil },
		func(context.Context, int64, payload) error { updated = true; return nil },
	)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, updated)
	assert.True(t, f.Saved())

	created, updated = false, false
	e := Edit(payload{Name: "A", Slug: "a"}, 7)
	var gotID int64
	err = e.Save(context.Background(), nil,
		func(context.Context, payload) error { created = true; return nil },
		func(_ context.Context, id int64, _ payload) error { updated = true; gotID = id; return nil },
	)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, updated)
	assert.Equal(t, int64(7), gotID)
}

func TestSaveInvalidNeverSubmits(t *testing.T) {
	f := New(payload{}) // missing name and slug
	submitted := false
	err := f.Save(context.Background(), nil,
		func(context.Context, payload) error { submitted = true; return nil },
		func(context.Context, int64, payload) error { submitted = true; return nil },
	)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, submitted)
	assert.False(t, f.Saved())
}

func TestSlugConflictMapsToField(t *testing.T) {
	f := New(payload{Name: "Shoes", Slug: "shoes"})
	f.Value().Slug = "shoes"

	conflict := &api.Error{Status: http.StatusConflict, Code: "SLUG_EXISTS", Message: "slug already in use"}
	err := f.Save(context.Background(), nil,
		func(context.Context, payload) error { return conflict },
		func(context.Context, int64, payload) error { return nil },
	)

	require.Error(t, err)
	assert.Equal(t, "slug already in use", f.FieldError("slug"))
	assert.False(t, f.Saved(), "draft stays open for correction")
	assert.Equal(t, "shoes", f.Value().Slug, "operator input preserved")
}

func TestUnmappedErrorBecomesSubmitError(t *testing.T) {
	f := New(payload{Name: "A", Slug: "a"})
	err := f.Save(context.Background(), nil,
		func(context.Context, payload) error { return errors.New("network down") },
		func(context.Context, int64, payload) error { return nil },
	)
	require.Error(t, err)
	assert.Contains(t, f.SubmitError(), "network down")
	assert.False(t, f.Saved())
}

func TestSlugBinding(t *testing.T) {
	var b SlugBinding

	s, ok := b.Derive(true, "Новая Категория")
	assert.True(t, ok)
	assert.Equal(t, "novaia-kategoriia", s)

	_, ok = b.Derive(false, "Existing Record")
	assert.False(t, ok, "editing an existing record never rewrites the slug")

	b.Touch()
	_, ok = b.Derive(true, "Renamed")
	assert.False(t, ok, "manual slug edit detaches the binding")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "x", Trim("  x  "))
	assert.Nil(t, Optional("   "))
	if got := Optional(" hello "); assert.NotNil(t, got) {
		assert.Equal(t, "hello", *got)
	}
	assert.Nil(t, OptionalFrom(nil))
	empty := " "
	assert.Nil(t, OptionalFrom(&empty))
}
