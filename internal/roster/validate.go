package roster

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

const (
	MinCofounders = 1
	MaxCofounders = 9

	maxFieldLength = 250

	FieldName  = "name"
	FieldEmail = "email"

	MsgCountBound     = "You can have maximum 9 cofounders, and a minimum of 1."
	MsgKeepOne        = "You must have at least one cofounder."
	MsgRepeatedEmails = "It looks like you've repeated some cofounder email addresses."

	MsgBlank          = "can't be blank"
	MsgNotEmail       = "doesn't look like an email"
	MsgAlreadyApplied = "is already associated with an application"
	MsgRepeated       = "has been mentioned before"
)

var (
	MsgTooLong = fmt.Sprintf("is too long (maximum is %d characters)", maxFieldLength)

	looseEmail = regexp.MustCompile(`\S+@\S+`)

	fields = newFieldValidator()
)

func MsgEmailTaken(email string) string {
	return fmt.Sprintf("A founder with email %s already exists in our database.", email)
}

// batchLevel is the Violation.Entry value for messages about the batch as a whole.
const batchLevel = -1

// Violation is a single validation message, either about the batch (Entry == -1)
// or about one field of the entry at index Entry.
type Violation struct {
	Entry   int
	Field   string
	Message string
}

func batchViolation(msg string) Violation {
	return Violation{Entry: batchLevel, Message: msg}
}

// FieldErrors maps a field name to its messages.
type FieldErrors map[string][]string

// Report is the outcome of validating a batch.
type Report struct {
	Base    []string            `json:"base,omitempty"`
	Entries map[int]FieldErrors `json:"entries,omitempty"`
}

func newReport(violations []Violation) *Report {
	r := &Report{}
	for _, v := range violations {
		if v.Entry == batchLevel {
			r.Base = append(r.Base, v.Message)
			continue
		}
		if r.Entries == nil {
			r.Entries = make(map[int]FieldErrors)
		}
		if r.Entries[v.Entry] == nil {
			r.Entries[v.Entry] = make(FieldErrors)
		}
		r.Entries[v.Entry][v.Field] = append(r.Entries[v.Entry][v.Field], v.Message)
	}
	return r
}

func (r *Report) OK() bool {
	return len(r.Base) == 0 && len(r.Entries) == 0
}

// Field returns the messages attached to one field of the entry at index i.
func (r *Report) Field(i int, field string) []string {
	return r.Entries[i][field]
}

type check func(ctx context.Context, entries []Entry) ([]Violation, error)

type Validator struct {
	lookup EmailLookup
}

func NewValidator(lookup EmailLookup) *Validator {
	return &Validator{lookup: lookup}
}

// Validate runs every check against the batch and merges their violations.
// The error is non-nil only when the email lookup itself fails.
func (v *Validator) Validate(ctx context.Context, entries []Entry) (*Report, error) {
	checks := []check{
		checkFields,
		checkKeepsOne,
		checkCount,
		v.checkNotRegistered,
		checkNotRepeated,
	}

	var violations []Violation
	for _, c := range checks {
		found, err := c(ctx, entries)
		if err != nil {
			return nil, err
		}
		violations = append(violations, found...)
	}

	return newReport(violations), nil
}

type fieldRule struct {
	tag     string
	message string
}

var (
	nameRules = []fieldRule{
		{tag: "notblank", message: MsgBlank},
		{tag: fmt.Sprintf("max=%d", maxFieldLength), message: MsgTooLong},
	}
	emailRules = []fieldRule{
		{tag: "notblank", message: MsgBlank},
		{tag: fmt.Sprintf("max=%d", maxFieldLength), message: MsgTooLong},
		{tag: "looseemail", message: MsgNotEmail},
	}
)

func newFieldValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return looseEmail.MatchString(fl.Field().String())
	})
	return v
}

// fieldViolations applies each rule on its own so one value can collect several messages.
func fieldViolations(i int, field, value string, rules []fieldRule) []Violation {
	var out []Violation
	for _, rule := range rules {
		if err := fields.Var(value, rule.tag); err != nil {
			out = append(out, Violation{Entry: i, Field: field, Message: rule.message})
		}
	}
	return out
}

func checkFields(_ context.Context, entries []Entry) ([]Violation, error) {
	var out []Violation
	for i, entry := range entries {
		c := entry.contact()
		out = append(out, fieldViolations(i, FieldName, c.Name, nameRules)...)
		out = append(out, fieldViolations(i, FieldEmail, c.Email, emailRules)...)
	}
	return out, nil
}

// checkKeepsOne rejects a batch of only persisted cofounders that are all marked for deletion.
func checkKeepsOne(_ context.Context, entries []Entry) ([]Violation, error) {
	persisted := 0
	for _, entry := range entries {
		e, ok := entry.(ExistingEntry)
		if !ok {
			return nil, nil
		}
		if !e.Delete {
			return nil, nil
		}
		persisted++
	}

	if persisted == 0 {
		return nil, nil
	}
	return []Violation{batchViolation(MsgKeepOne)}, nil
}

func checkCount(_ context.Context, entries []Entry) ([]Violation, error) {
	if len(entries) < MinCofounders || len(entries) > MaxCofounders {
		return []Violation{batchViolation(MsgCountBound)}, nil
	}
	return nil, nil
}

func (v *Validator) checkNotRegistered(ctx context.Context, entries []Entry) ([]Violation, error) {
	var out []Violation
	for i, entry := range entries {
		e, ok := entry.(NewEntry)
		if !ok || strings.TrimSpace(e.Email) == "" {
			continue
		}

		exists, err := v.lookup.CofounderExists(ctx, e.Email)
		if err != nil {
			return nil, errors.Wrapf(err, "look up cofounder email %q", e.Email)
		}
		if exists {
			out = append(out,
				batchViolation(MsgEmailTaken(e.Email)),
				Violation{Entry: i, Field: FieldEmail, Message: MsgAlreadyApplied},
			)
		}
	}
	return out, nil
}

// checkNotRepeated flags every entry whose email occurs more than once, with a single batch message.
func checkNotRepeated(_ context.Context, entries []Entry) ([]Violation, error) {
	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		seen[entry.contact().Email]++
	}

	var out []Violation
	for i, entry := range entries {
		if seen[entry.contact().Email] > 1 {
			out = append(out, Violation{Entry: i, Field: FieldEmail, Message: MsgRepeated})
		}
	}

	if len(out) > 0 {
		out = append(out, batchViolation(MsgRepeatedEmails))
	}
	return out, nil
}
