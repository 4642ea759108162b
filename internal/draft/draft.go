// Package draft implements the form controller behind every editor modal:
// a local working copy of one entity's editable fields, seeded from defaults
// (new entity) or from a loaded record (edit), validated pre-flight, and
// submitted as a create or update depending on how it was seeded.
//
// The draft is never partially persisted. On success the caller discards it
// and reloads the owning list; on failure it stays intact, errors and all,
// so the operator can correct and retry.
package draft

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"shopctl/internal/api"
	"shopctl/internal/logging"
)

// ErrInvalid is returned by Save when pre-flight validation fails. Field
// details are on the form.
var ErrInvalid = errors.New("draft: validation failed")

// validate is shared; it resolves field names from json tags so validation
// errors line up with the API's field naming.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// fieldByCode maps the server's structured error codes onto form fields, so
// a conflict lands on the input that caused it instead of a generic banner.
var fieldByCode = map[string]string{
	"SLUG_EXISTS":  "slug",
	"SKU_EXISTS":   "sku",
	"EMAIL_EXISTS": "email",
	"CODE_EXISTS":  "code",
}

// Check is an entity-specific validation hook. It returns field->message
// pairs for anything the struct tags cannot express.
type Check[T any] func(*T) map[string]string

// Form is the draft controller for one entity of payload type T.
type Form[T any] struct {
	value      T
	existingID int64
	saved      bool

	fieldErrs map[string]string
	submitErr string
}

// New creates a draft for a brand-new entity, seeded from defaults.
func New[T any](defaults T) *Form[T] {
	return &Form[T]{value: defaults, fieldErrs: map[string]string{}}
}

// Edit creates a draft seeded from a loaded record's editable fields.
// T is a value type, so the assignment is the shallow copy the contract
// asks for.
func Edit[T any](seed T, id int64) *Form[T] {
	return &Form[T]{value: seed, existingID: id, fieldErrs: map[string]string{}}
}

// Value exposes the mutable working copy for the view's field bindings.
func (f *Form[T]) Value() *T { return &f.value }

// IsNew reports whether Save will create rather than update.
func (f *Form[T]) IsNew() bool { return f.existingID == 0 }

// ID returns the seeded entity id (0 for a new entity).
func (f *Form[T]) ID() int64 { return f.existingID }

// Saved reports whether the last Save succeeded; the owner destroys the
// draft once it has.
func (f *Form[T]) Saved() bool { return f.saved }

// FieldError returns the message attached to a field, or "".
func (f *Form[T]) FieldError(field string) string { return f.fieldErrs[field] }

// FieldErrors returns all current field errors.
func (f *Form[T]) FieldErrors() map[string]string { return f.fieldErrs }

// SubmitError returns the last non-field submission error, or "".
func (f *Form[T]) SubmitError() string { return f.submitErr }

// SetFieldError lets views attach their own pre-flight messages.
func (f *Form[T]) SetFieldError(field, msg string) { f.fieldErrs[field] = msg }

// Validate runs struct-tag validation plus any entity-specific checks,
// replacing the form's field errors. Returns true when the draft is clean.
func (f *Form[T]) Validate(checks ...Check[T]) bool {
	f.fieldErrs = map[string]string{}

	if err := validate.Struct(f.value); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				f.fieldErrs[fe.Field()] = messageFor(fe)
			}
		} else {
			f.submitErr = err.Error()
			return false
		}
	}
	for _, check := range checks {
		for field, msg := range check(&f.value) {
			f.fieldErrs[field] = msg
		}
	}
	return len(f.fieldErrs) == 0
}

// messageFor renders a human message for a failed rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be <= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("invalid (%s)", fe.Tag())
	}
}

// Save validates and submits the draft: create when new, update when seeded
// from an existing record. Structured server errors are mapped back onto
// fields; in every failure case the draft stays intact for retry.
func (f *Form[T]) Save(
	ctx context.Context,
	checks []Check[T],
	create func(context.Context, T) error,
	update func(context.Context, int64, T) error,
) error {
	f.submitErr = ""
	if !f.Validate(checks...) {
		return ErrInvalid
	}

	var err error
	if f.IsNew() {
		err = create(ctx, f.value)
	} else {
		err = update(ctx, f.existingID, f.value)
	}
	if err == nil {
		f.saved = true
		logging.Get(logging.CategoryDraft).Info("saved (new=%v id=%d)", f.IsNew(), f.existingID)
		return nil
	}

	if code := api.ErrorCode(err); code != "" {
		if field, ok := fieldByCode[code]; ok {
			f.fieldErrs[field] = serverMessage(err, code)
		} else {
			f.submitErr = err.Error()
		}
	} else {
		f.submitErr = err.Error()
	}
	logging.Get(logging.CategoryDraft).Warn("save failed (new=%v id=%d): %v", f.IsNew(), f.existingID, err)
	return err
}

func serverMessage(err error, code string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return code
}
