package identity

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var validate = validator.New()

// guestContact правила проверки контактов гостя
type guestContact struct {
	Name  string `validate:"min=2,max=120"`
	Email string `validate:"omitempty,email,max=254"`
}

// validateGuest нормализует и проверяет контакты гостя
func validateGuest(fields *GuestFields) (domain.GuestContact, error) {
	verr := domain.NewValidationError()

	if fields == nil {
		verr.Add("guest", "guest contact details are required")
		return domain.GuestContact{}, verr
	}

	contact := guestContact{
		Name:  strings.TrimSpace(fields.Name),
		Email: strings.TrimSpace(fields.Email),
	}

	if err := validate.Struct(contact); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				switch fe.Field() {
				case "Name":
					verr.Add("name", "name must be between 2 and 120 characters")
				case "Email":
					verr.Add("email", "invalid email address")
				}
			}
		} else {
			verr.Add("guest", err.Error())
		}
	}

	phone, ok := NormalizePhone(fields.Phone)
	if !ok {
		verr.Add("phone", "phone must contain 7 to 15 digits with an optional leading +")
	}

	if err := verr.OrNil(); err != nil {
		return domain.GuestContact{}, err
	}

	result := domain.GuestContact{Name: contact.Name, Phone: phone}
	if contact.Email != "" {
		email := strings.ToLower(contact.Email)
		result.Email = &email
	}
	return result, nil
}

// NormalizePhone убирает разделители (пробелы, дефисы, скобки, точки) и проверяет номер:
// необязательный ведущий + и от 7 до 15 цифр
//
// Пример: "+7 (999) 123-45-67" → "+79991234567"
func NormalizePhone(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	var b strings.Builder
	digits := 0
	for i, r := range raw {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// разделитель
		default:
			return "", false
		}
	}

	if digits < domain.MinPhoneDigits || digits > domain.MaxPhoneDigits {
		return "", false
	}
	return b.String(), true
}
