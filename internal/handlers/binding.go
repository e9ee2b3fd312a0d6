package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Decimal fields bind as structs, so the stock numeric rules (gt, gte) do not
// apply to them. "dpositive" fills that gap for monetary amounts.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dpositive", decimalPositive)
	}
}

func decimalPositive(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return ok && d.IsPositive()
}
