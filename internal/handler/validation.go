package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs the custom binding validations used by the
// request models. Must be called once before the router serves traffic.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("timeframe", validTimeframe)
	}
}

// validTimeframe accepts the bar intervals the Alpaca data API serves.
func validTimeframe(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "1Min", "5Min", "15Min", "30Min", "1Hour", "1Day", "1Week", "1Month":
		return true
	}
	return false
}
