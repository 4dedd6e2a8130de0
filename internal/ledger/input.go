package ledger

import (
	"errors"
	"sort"
	"strings"

	"github.com/18981850753/shopList-App/internal/models"

	"github.com/go-playground/validator/v10"
)

// Input is what the add and edit forms collect.
type Input struct {
	Name   string `validate:"required,singleline"`
	Price  string `validate:"required,singleline"`
	Weight string `validate:"required,singleline"`
	Brand  string `validate:"singleline"`
	Remark string `validate:"singleline"`
}

// InputFrom prefills an edit form from an existing record.
func InputFrom(r models.Record) Input {
	return Input{
		Name:   r.Name,
		Price:  r.Price,
		Weight: r.Weight,
		Brand:  r.Brand,
		Remark: r.Remark,
	}
}

func (in Input) trimmed() Input {
	return Input{
		Name:   strings.TrimSpace(in.Name),
		Price:  strings.TrimSpace(in.Price),
		Weight: strings.TrimSpace(in.Weight),
		Brand:  strings.TrimSpace(in.Brand),
		Remark: strings.TrimSpace(in.Remark),
	}
}

// FieldErrors maps a form field (name, price, weight) to the message shown
// next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for field := range fe {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fe[field])
	}
	return strings.Join(msgs, "; ")
}

var fieldMessages = map[string]string{
	"Name":   "product name is required",
	"Price":  "price is required",
	"Weight": "weight is required",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// one record per line in the store
	v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})
	return v
}

func singleLineMessage(field string) string {
	return field + " must be a single line"
}

// toFieldErrors turns validator output into per-field messages. Anything
// else is returned unchanged.
func toFieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := FieldErrors{}
	for _, v := range verrs {
		field := strings.ToLower(v.Field())
		msg, ok := fieldMessages[v.Field()]
		switch {
		case v.Tag() == "singleline":
			msg = singleLineMessage(field)
		case !ok:
			msg = field + " is invalid"
		}
		fe[field] = msg
	}
	return fe
}
