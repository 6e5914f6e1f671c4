package middleware

import (
	"errors"
	"unicode/utf8"
)

// ValidateSenderID validates the customer identifier on an inbound message.
func ValidateSenderID(id string) error {
	if len(id) == 0 {
		return errors.New("sender is required")
	}
	if len(id) > 128 {
		return errors.New("sender exceeds maximum length")
	}
	return nil
}

// ValidateMessageText validates inbound message text.
func ValidateMessageText(text string) error {
	if len(text) == 0 {
		return errors.New("message text is required")
	}
	if len(text) > 10000 {
		return errors.New("message text exceeds maximum length")
	}
	if !utf8.ValidString(text) {
		return errors.New("message text must be valid UTF-8")
	}
	return nil
}
