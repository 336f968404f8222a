package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register installs json field naming and the custom rules on v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("taxid", taxIDValidator); err != nil {
		log.Fatal("register taxid validator failed")
	}
}

// tax ids may be typed with the usual punctuation, e.g. 111.444.777-35
var taxIDPattern = regexp.MustCompile(`^[0-9][0-9.\-/ ]*$`)

var taxIDValidator validator.Func = func(fl validator.FieldLevel) bool {
	return taxIDPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}
