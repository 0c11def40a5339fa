package meeting

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
)

var (
	endAfterStartTag  = "endafterstart"
	endAfterStartText = "end time must be after start time"
)

// InitValidators registers this package's validators; call once at startup.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(minutesFormStructValidation, MinutesForm{})
	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, endAfterStartText)
}

func minutesFormStructValidation(sl validator.StructLevel) {
	form := sl.Current().Interface().(MinutesForm)
	if !form.StartAt.IsZero() && !form.EndAt.IsZero() && !form.EndAt.After(form.StartAt) {
		sl.ReportError(form.EndAt, "end_at", "EndAt", endAfterStartTag, "")
	}
}
