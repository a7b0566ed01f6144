package domain

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"TODO", "IN_PROGRESS", "DONE"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) returned error: %v", s, err)
		}
	}

	if _, err := ParseStatus("todo"); err == nil {
		t.Error("expected lower-case status to be rejected")
	}
	if _, err := ParseStatus("CANCELLED"); err == nil {
		t.Error("expected unknown status to be rejected")
	}
}

func TestParsePriority(t *testing.T) {
	for _, s := range []string{"HIGH", "MEDIUM", "LOW"} {
		if _, err := ParsePriority(s); err != nil {
			t.Errorf("ParsePriority(%q) returned error: %v", s, err)
		}
	}
	if _, err := ParsePriority("URGENT"); err == nil {
		t.Error("expected unknown priority to be rejected")
	}
}

func TestPublicUserOmitsPasswordHash(t *testing.T) {
	u := &User{ID: 1, Email: "a@example.com", Username: "a", PasswordHash: "secret"}
	p := u.Public()
	if p.ID != 1 || p.Email != "a@example.com" || p.Username != "a" {
		t.Errorf("unexpected public view: %+v", p)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	ve := NewValidationError()
	if !ve.Empty() {
		t.Fatal("new validation error should be empty")
	}
	ve.Add("title", "must not be blank")
	ve.Add("priority", "unknown value")
	if ve.Empty() {
		t.Fatal("expected non-empty validation error")
	}
	msg := ve.Error()
	if msg == "" {
		t.Fatal("expected message")
	}
	got, ok := AsValidation(ve)
	if !ok || len(got.Fields) != 2 {
		t.Fatalf("AsValidation failed: %v %v", got, ok)
	}
}
