package validate

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// 允许的排序字段，对应统计记录上的计数器
var rankKeys = map[string]struct{}{
	"view":   {},
	"enjoy":  {},
	"stored": {},
}

// rankKey 校验排序字段是否为统计计数器之一
func rankKey(fl validator.FieldLevel) bool {
	_, ok := rankKeys[fl.Field().String()]
	return ok
}

// RegisterValidations 注册自定义校验规则到gin的绑定校验器
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("rankkey", rankKey)
}
