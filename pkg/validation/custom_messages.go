package validation

func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"Email": {
			"required": "email must not be empty",
			"email":    "email format is invalid",
		},
		"Phone": {
			"required": "phone number must not be empty",
			"cnphone":  "phone number format is invalid",
		},
		"Password": {
			"required": "password must not be empty",
			"min":      "password must be at least 6 characters",
		},
		"Code": {
			"required": "verification code must not be empty",
			"len":      "verification code must be 6 digits",
		},
		"Username": {
			"max": "username must be at most 50 characters",
		},
	}
	return customValidationMessages[field]
}
