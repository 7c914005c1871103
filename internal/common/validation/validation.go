package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinFieldLength = 2
	MaxLabelLength = 64
)

// ValidateObjectID разбирает hex ObjectID из пути
func ValidateObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid object id %q", id)
	}
	return oid, nil
}

// ValidateLabel проверяет метку типа аккаунта, она же callback_data кнопки.
// Telegram ограничивает callback_data 64 байтами.
func ValidateLabel(label string) error {
	label = strings.TrimSpace(label)
	if utf8.RuneCountInString(label) < MinFieldLength {
		return fmt.Errorf("type must be at least %d characters long", MinFieldLength)
	}
	if len(label) > MaxLabelLength {
		return fmt.Errorf("type cannot exceed %d bytes", MaxLabelLength)
	}
	return nil
}

// ParsePositiveInt разбирает положительное число, пустая строка дает def
func ParsePositiveInt(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if n < 1 {
		return 0, fmt.Errorf("%q must be positive", raw)
	}
	return n, nil
}

// BindingMessage превращает ошибку gin binding в короткое сообщение для клиента
func BindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("\"%s\" is required", field))
		case "min":
			parts = append(parts, fmt.Sprintf("\"%s\" length must be at least %s characters long", field, fe.Param()))
		case "max":
			parts = append(parts, fmt.Sprintf("\"%s\" length must be less than or equal to %s characters long", field, fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("\"%s\" is invalid", field))
		}
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
