package validator

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate  *validator.Validate
	sanitizer *bluemonday.Policy
	initOnce  sync.Once

	routePattern = regexp.MustCompile(`^/[A-Za-z0-9_\-/]*$`)
	slugPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
)

func Init() {
	initOnce.Do(func() {
		validate = validator.New()

		sanitizer = bluemonday.UGCPolicy()
		sanitizer.AllowAttrs("class", "id", "dir").Globally()

		registerCustomValidations(validate)

		if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
			registerCustomValidations(engine)
		}
	})
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("route", validateRoute)
	v.RegisterValidation("slug", validateSlug)
	v.RegisterValidation("no_html", validateNoHTML)
}

func Validate(s interface{}) error {
	Init()
	return validate.Struct(s)
}

// SanitizeHTML cleans operator supplied markup with a UGC policy that keeps
// class, id and dir attributes.
func SanitizeHTML(html string) string {
	Init()
	return sanitizer.Sanitize(html)
}

// IsRoute reports whether value is an absolute in-site route path.
func IsRoute(value string) bool {
	if strings.HasPrefix(value, "//") {
		return false
	}
	return routePattern.MatchString(value)
}

func validateRoute(fl validator.FieldLevel) bool {
	return IsRoute(fl.Field().String())
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}
