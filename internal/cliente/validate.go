package cliente

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"sigec/internal/apperrors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sigecid", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		return IsSequentialID(id) || IsLegacyID(id)
	})
	_ = v.RegisterValidation("isotime", func(fl validator.FieldLevel) bool {
		return IsTimestamp(fl.Field().String())
	})
	_ = v.RegisterValidation("statuscliente", func(fl validator.FieldLevel) bool {
		s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
		return s == StatusAtivo || s == StatusInativo
	})
	return v
}

// Validate confere os invariantes de formato antes de uma gravação. Um id com cara de
// timestamp em criadoEm (ou o contrário) é recusado aqui, em vez de ir para a planilha.
func Validate(r *Record) error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", apperrors.ErrInvalidRecord, err)
	}
	campos := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		campos = append(campos, fmt.Sprintf("%s=%q (%s)", fe.Field(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidRecord, strings.Join(campos, ", "))
}
