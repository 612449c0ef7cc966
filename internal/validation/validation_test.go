package validation_test

import (
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/validation"
)

func TestValidatePersonalInfoAcceptsCompleteForm(t *testing.T) {
	t.Parallel()
	res := validation.ValidatePersonalInfo(validation.PersonalInfo{
		Name: "Alex", Age: "34", Gender: "Male", Weight: "80kg", Height: "180cm",
	})
	if !res.IsValid {
		t.Fatalf("expected valid form, got errors %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Fatalf("expected empty error map, got %v", res.Errors)
	}
}

func TestValidatePersonalInfoReportsEveryMissingField(t *testing.T) {
	t.Parallel()
	res := validation.ValidatePersonalInfo(validation.PersonalInfo{Name: "   "})
	if res.IsValid {
		t.Fatalf("expected invalid form")
	}
	for _, field := range []string{"name", "age", "gender", "weight", "height"} {
		if res.Errors[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, res.Errors)
		}
	}
}

func TestValidatePersonalInfoAgeRange(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"0":        true,
		"150":      true,
		"34 years": true,
		"151":      false,
		"-1":       false,
		"abc":      false,
	}
	for age, valid := range cases {
		res := validation.ValidatePersonalInfo(validation.PersonalInfo{
			Name: "A", Age: age, Gender: "F", Weight: "60kg", Height: "165cm",
		})
		if res.IsValid != valid {
			t.Fatalf("age %q: expected valid=%v, got %v (%v)", age, valid, res.IsValid, res.Errors)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	t.Parallel()
	got := validation.SanitizeInput("  <script>hello</script>  ")
	if got != "scripthello/script" {
		t.Fatalf("unexpected sanitized value %q", got)
	}

	long := strings.Repeat("a", validation.MaxInputLength+50)
	if n := len(validation.SanitizeInput(long)); n != validation.MaxInputLength {
		t.Fatalf("expected truncation to %d, got %d", validation.MaxInputLength, n)
	}
}

func TestSanitizeMedicalText(t *testing.T) {
	t.Parallel()
	got := validation.SanitizeMedicalText(" line one\nline\x00 two\x07\t ")
	if got != "line one\nline two" {
		t.Fatalf("unexpected sanitized value %q", got)
	}

	long := strings.Repeat("é", validation.MaxMedicalTextLength+1)
	if n := len([]rune(validation.SanitizeMedicalText(long))); n != validation.MaxMedicalTextLength {
		t.Fatalf("expected %d characters, got %d", validation.MaxMedicalTextLength, n)
	}
}

func TestValidateImageFile(t *testing.T) {
	t.Parallel()
	ok := validation.ValidateImageFile(&validation.ImageFile{Name: "scan.png", Size: 1024, Type: "image/png"}, 10)
	if !ok.Valid {
		t.Fatalf("expected valid image, got %q", ok.Error)
	}

	cases := []struct {
		name string
		file *validation.ImageFile
	}{
		{"nil", nil},
		{"gif", &validation.ImageFile{Name: "a.gif", Size: 10, Type: "image/gif"}},
		{"too large", &validation.ImageFile{Name: "a.jpg", Size: 11 * 1024 * 1024, Type: "image/jpeg"}},
		{"no name", &validation.ImageFile{Size: 10, Type: "image/webp"}},
		{"long name", &validation.ImageFile{Name: strings.Repeat("n", 256), Size: 10, Type: "image/webp"}},
	}
	for _, tc := range cases {
		res := validation.ValidateImageFile(tc.file, 10)
		if res.Valid || res.Error == "" {
			t.Fatalf("%s: expected rejection, got %+v", tc.name, res)
		}
	}
}

func TestValidateIdentifiers(t *testing.T) {
	t.Parallel()
	if !validation.ValidateUUID("3f2504e0-4f89-41d3-9a0c-0305e82c3301") {
		t.Fatalf("expected uuid to validate")
	}
	if validation.ValidateUUID("3f2504e0-4f89-41d3-9a0c") || validation.ValidateUUID("'; DROP TABLE users;--") {
		t.Fatalf("expected malformed uuid to fail")
	}
	if !validation.ValidateUserID("user_2abc-XYZ") {
		t.Fatalf("expected user id to validate")
	}
	if validation.ValidateUserID("") || validation.ValidateUserID("bad id") || validation.ValidateUserID(strings.Repeat("x", 256)) {
		t.Fatalf("expected malformed user id to fail")
	}
}
