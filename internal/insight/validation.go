package insight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/envioscan/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateStruct adapts go-playground/validator to llm.SchemaValidator.
func validateStruct[T any](v T) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			parts := make([]string, len(verrs))
			for i, fe := range verrs {
				parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
			}
			return errors.New(strings.Join(parts, "; "))
		}
		return err
	}
	return nil
}

func validateInsight(mode domain.InsightMode) func(domain.Insight) error {
	return func(ins domain.Insight) error {
		if err := validateStruct(ins); err != nil {
			return err
		}
		if mode == domain.ModePrototype && len(ins.PrototypingExperiments) == 0 {
			return errors.New("prototype mode requires prototypingExperiments")
		}
		return nil
	}
}

func validateReport(r domain.ComparativeReport) error {
	return validateStruct(r)
}
