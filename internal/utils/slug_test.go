package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Acme", "acme"},
		{"two words", "Clinic X", "clinic-x"},
		{"surrounding whitespace", "  Clinic X  ", "clinic-x"},
		{"whitespace run collapses", "Clinic   X", "clinic-x"},
		{"tabs and newlines", "Clinic\t \nX", "clinic-x"},
		{"uppercase", "CLINIC X", "clinic-x"},
		{"special characters stripped", "Dr. Silva & Filhos!", "dr-silva--filhos"},
		{"accented characters stripped", "Clínica Sorriso", "clnica-sorriso"},
		{"digits kept", "Unidade 2", "unidade-2"},
		{"existing hyphens kept", "pre-pago", "pre-pago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugify_CasingAndWhitespaceEquivalence(t *testing.T) {
	variants := []string{"Clinic X", "clinic x", " CLINIC X ", "clinic\tx"}
	for _, v := range variants {
		require.Equal(t, "clinic-x", Slugify(v))
	}
}
