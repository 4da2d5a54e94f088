package users

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidEmail aceita qualquer string que contenha "@" e ".". A checagem é
// propositalmente fraca: "a.b@c" é um email válido aqui.
func ValidEmail(s string) bool {
	return strings.Contains(s, "@") && strings.Contains(s, ".")
}

// ValidPhone aceita exatamente 10 dígitos decimais.
func ValidPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

const (
	tagEmail = "loose_email"
	tagPhone = "phone10"
	tagDOB   = "dob"
)

// newValidator registra as regras do domínio como tags do validator e usa o
// nome JSON dos campos nos erros.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Os registros só falham com tag vazia ou função nil.
	_ = v.RegisterValidation(tagEmail, func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(tagPhone, func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation(tagDOB, func(fl validator.FieldLevel) bool {
		_, ok := ParseDate(fl.Field().String())
		return ok
	})

	return v
}

type fieldRule struct {
	tag     string
	message string
}

// Mensagens do POST, na ordem em que são checadas depois dos obrigatórios.
var createRules = []fieldRule{
	{tag: tagEmail, message: "Invalid Email"},
	{tag: tagPhone, message: "Invalid Phone Number"},
	{tag: tagDOB, message: "Invalid Date Format, Please use YYYY-MM-DD format"},
}

// Regras do PUT por campo; campos fora do mapa não têm validação de formato.
var updateRules = map[Field]fieldRule{
	FieldDOB:     {tag: tagDOB, message: "Invalid date format, please use YYYY-MM-DD"},
	FieldEmail:   {tag: tagEmail, message: "Invalid email format"},
	FieldPhoneNo: {tag: tagPhone, message: "Invalid phone number format"},
}
