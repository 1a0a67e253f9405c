package forms

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Errors map[Field]string

// Rules evaluates the sign-up schema. Each field reports at most the
// message of its first failing rule.
type Rules struct {
	validator *validator.Validate
	messages  *Messages
}

func NewRules(messages *Messages) *Rules {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	})
	return &Rules{validator: v, messages: messages}
}

func (r *Rules) Validate(values Values) Errors {
	errs := Errors{}
	err := r.validator.Struct(values)
	if err == nil {
		return errs
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// only reachable on a programming error in the schema
		panic(err)
	}
	for _, fe := range verrs {
		f := Field(fe.Field())
		if _, seen := errs[f]; seen {
			continue
		}
		errs[f] = r.message(f, fe)
	}
	return errs
}

func (r *Rules) message(f Field, fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return r.messages.Sprintf(requiredKey(f))
	case "eqfield":
		return r.messages.Sprintf(msgPasswordMismatch)
	case "min":
		n, _ := strconv.Atoi(fe.Param())
		return r.messages.Sprintf(msgMinLength, f.String(), n)
	case "max":
		n, _ := strconv.Atoi(fe.Param())
		return r.messages.Sprintf(msgMaxLength, f.String(), n)
	}
	return r.messages.Sprintf(msgInvalid, f.String())
}
