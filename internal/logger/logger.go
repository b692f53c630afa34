package logger

import (
	"fmt"
	"time"
)

// Codes ANSI pour les couleurs
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func stamp(color, mark, message string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("%s[%s]%s %s%s%s%s\n",
		colorGray, timestamp, colorReset,
		color, mark, fmt.Sprintf(message, args...), colorReset)
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	stamp(colorBlue, "", message, args...)
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	stamp(colorGreen, "✓ ", message, args...)
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	stamp(colorYellow, "⚠ ", message, args...)
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	stamp(colorRed, "✗ ", message, args...)
}
