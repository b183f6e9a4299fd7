package matching

import (
	"strconv"
	"strings"

	"github.com/formweave/aster/pkg/models"
	"github.com/formweave/aster/pkg/profile"
)

// ValidateFieldType reports whether a resolved profile value is compatible
// with a field's input type. Rules are evaluated in priority order; a value
// that resolved to nothing is never compatible. Pure and total.
func ValidateFieldType(field models.FieldDescriptor, path models.ProfilePath, value profile.Value) bool {
	if value.Kind() == profile.KindNone {
		return false
	}

	switch field.InputType {
	case "email":
		return pathContains(path, "email") &&
			value.Kind() == profile.KindScalar &&
			strings.Contains(value.Display(), "@")
	case "tel":
		// No format check; phone formats vary too much to validate here.
		return pathContains(path, "phone") && value.Kind() == profile.KindScalar
	case "number":
		if value.Kind() != profile.KindScalar {
			return false
		}
		_, err := strconv.ParseFloat(strings.TrimSpace(value.Display()), 64)
		return err == nil
	case "url":
		if value.Kind() != profile.KindScalar {
			return false
		}
		s := value.Display()
		return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
	case "file":
		// File selection itself is the execution collaborator's concern;
		// the engine only decides that a resume belongs here.
		return pathContains(path, "resume")
	case "select", "select-one":
		return value.Kind() == profile.KindScalar && value.Display() != ""
	case "textarea":
		return value.Kind() == profile.KindScalar || value.Kind() == profile.KindList
	default:
		return value.Kind() == profile.KindScalar
	}
}

func pathContains(path models.ProfilePath, fragment string) bool {
	return strings.Contains(strings.ToLower(path.String()), fragment)
}
