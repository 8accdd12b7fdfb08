package hexcolor_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/framr/framr/internal/hexcolor"
)

func TestIsValid(t *testing.T) {
	valid := []string{"#FFFFFF", "ffffff", "#abc", "012", "#1A2b3C"}
	for _, s := range valid {
		if !hexcolor.IsValid(s) {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []string{"", "#", "#ff", "#ffff", "#fffff", "#fffffff", "red", "#ggg", "# fff"}
	for _, s := range invalid {
		if hexcolor.IsValid(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"#ffffff": "#FFFFFF",
		"ffffff":  "#FFFFFF",
		"#abc":    "#AABBCC",
		"f0c":     "#FF00CC",
		"#1a2B3c": "#1A2B3C",
	}

	for input, expected := range cases {
		normalized, err := hexcolor.Normalize(input)
		if err != nil {
			t.Fatal(err)
		}

		if normalized != expected {
			t.Errorf("Normalize(%q) = %q, expected %q", input, normalized, expected)
		}
	}

	if _, err := hexcolor.Normalize("nope"); !errors.Is(err, hexcolor.ErrInvalidColor) {
		t.Errorf("got %v, expected ErrInvalidColor", err)
	}
}

func TestParse(t *testing.T) {
	rgba, err := hexcolor.Parse("#1A2B3C")
	if err != nil {
		t.Fatal(err)
	}

	expected := color.NRGBA{R: 0x1A, G: 0x2B, B: 0x3C, A: 0xFF}
	if rgba != expected {
		t.Errorf("got %+v, expected %+v", rgba, expected)
	}
}

func TestContrast(t *testing.T) {
	cases := map[string]string{
		"#FFFFFF": "#000000",
		"#000000": "#FFFFFF",
		"#FFFF00": "#000000", // yellow is perceptually light
		"#0000FF": "#FFFFFF", // blue is perceptually dark
	}

	for input, expected := range cases {
		contrast, err := hexcolor.Contrast(input)
		if err != nil {
			t.Fatal(err)
		}

		if contrast != expected {
			t.Errorf("Contrast(%q) = %q, expected %q", input, contrast, expected)
		}
	}
}
