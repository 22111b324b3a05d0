package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Vietnamese mobile numbers, local (0xxxxxxxxx) or international (+84xxxxxxxxx).
var phoneRe = regexp.MustCompile(`^(0|\+84)(3|5|7|8|9)[0-9]{8}$`)

func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.NewReplacer(" ", "", "-", "", ".", "").Replace(p)
	return p
}

func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(NormalizePhone(phone))
}

// CanonicalPhone returns the local form so that +84 and 0 prefixes resolve
// to the same customer.
func CanonicalPhone(phone string) string {
	p := NormalizePhone(phone)
	if strings.HasPrefix(p, "+84") {
		return "0" + strings.TrimPrefix(p, "+84")
	}
	return p
}

func validatePhone(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	return IsValidPhone(v)
}

// Register installs the custom tags on gin's validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("vnphone", validatePhone)
}
