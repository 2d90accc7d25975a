package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// allowedMediaExtensions is the attachment allow-list. Matching is
// case-insensitive.
var allowedMediaExtensions = map[string]bool{
	".mov":  true,
	".avi":  true,
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".jpg":  true,
	".png":  true,
}

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)

// IsValidPhoneNumber accepts E.164-style numbers such as "+15551234567".
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// IsValidMediaFile reports whether the file name carries an allowed
// media extension. An empty name is valid since the attachment is
// optional.
func IsValidMediaFile(name string) bool {
	if name == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return allowedMediaExtensions[ext]
}

func IsValidPassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	// At least 3 of 4 character types required
	count := 0
	if hasUpper {
		count++
	}
	if hasLower {
		count++
	}
	if hasNumber {
		count++
	}
	if hasSpecial {
		count++
	}

	return count >= 3
}
