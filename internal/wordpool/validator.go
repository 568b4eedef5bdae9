package wordpool

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validatorOnce sync.Once
	validate      *validator.Validate
	translator    ut.Translator
	validatorErr  error
)

func levelValidator() (*validator.Validate, ut.Translator, error) {
	validatorOnce.Do(func() {
		validate = validator.New()

		enLocale := en.New()
		uni := ut.New(enLocale, enLocale)
		translator, _ = uni.GetTranslator("en")
		if err := enTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
			validatorErr = fmt.Errorf("failed to register default translations: %w", err)
			return
		}
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate, translator, validatorErr
}

// validateLevel checks the field rules and the bucket invariants of a normalized level:
// day numbers are unique and within 1..TotalDays, and no item id appears twice.
func validateLevel(level Level) error {
	v, trans, err := levelValidator()
	if err != nil {
		return err
	}

	var problems []string
	if err := v.Struct(level); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validate.Struct(%s) > %w", level.ID, err)
		}
		for _, e := range validationErrors {
			problems = append(problems, e.Translate(trans))
		}
	}

	seenDays := make(map[int]struct{}, len(level.Days))
	seenItems := make(map[string]int)
	for _, bucket := range level.Days {
		if _, ok := seenDays[bucket.Day]; ok {
			problems = append(problems, fmt.Sprintf("day %d is defined more than once", bucket.Day))
		}
		seenDays[bucket.Day] = struct{}{}
		if bucket.Day > level.TotalDays {
			problems = append(problems, fmt.Sprintf("day %d exceeds total_days %d", bucket.Day, level.TotalDays))
		}
		for _, item := range bucket.Items {
			if item.ID == "" {
				continue
			}
			if day, ok := seenItems[item.ID]; ok {
				problems = append(problems, fmt.Sprintf("item %q appears in day %d and day %d", item.ID, day, bucket.Day))
				continue
			}
			seenItems[item.ID] = bucket.Day
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: level %q: %s", ErrInvalidCurriculum, level.ID, strings.Join(problems, ", "))
	}
	return nil
}
