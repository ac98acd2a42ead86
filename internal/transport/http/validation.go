package httpt

import (
	"errors"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// registerValidators teaches gin's validator to compare decimal prices
// numerically, so tags such as gte=0 work on decimal.Decimal fields.
func registerValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("transport.http.registerValidators: unexpected validator engine")
			return
		}

		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	})
	return registerErr
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}
