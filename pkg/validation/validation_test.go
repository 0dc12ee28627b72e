package validation

import (
	"errors"
	"testing"
)

func TestPhonePattern(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "Mobile number", phone: "13800138000", valid: true},
		{name: "199 prefix", phone: "19912345678", valid: true},
		{name: "Too short", phone: "1380013800", valid: false},
		{name: "Too long", phone: "138001380001", valid: false},
		{name: "Landline prefix", phone: "02112345678", valid: false},
		{name: "12 prefix", phone: "12800138000", valid: false},
		{name: "Letters", phone: "1380013800a", valid: false},
		{name: "Empty", phone: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := phoneRegexp.MatchString(tt.phone); got != tt.valid {
				t.Errorf("Expected %v for %q, got %v", tt.valid, tt.phone, got)
			}
		})
	}
}

func TestTranslateErrorFallback(t *testing.T) {
	out := TranslateError(errors.New("unexpected EOF"))

	if out["request"] != "unexpected EOF" {
		t.Errorf("Expected raw error text, got %v", out)
	}
}

func TestCustomMessageLookup(t *testing.T) {
	msg := CustomMessage("Phone")["cnphone"]
	if msg == "" {
		t.Error("Expected a message for the cnphone tag on Phone")
	}

	if CustomMessage("Unknown") != nil {
		t.Error("Expected nil for unknown field")
	}
}
