package fields

import "testing"

func TestDefaultGuesser(t *testing.T) {
	cases := map[string]string{
		"submit":           "Submit",
		"password":         "Password",
		"confirm_password": "Password",
		"email":            "Email",
		"user.email":       "Email",
		"id":               "Hidden",
		"account_id":       "Hidden",
		"is_active":        "Checkbox",
		"has_children":     "Checkbox",
		"retry_count":      "Integer",
		"age":              "Integer",
		"description":      "TextArea",
		"city":             "Text",
		"last_name":        "Text",
	}
	for name, want := range cases {
		got, ok := DefaultGuesser(name)
		if !ok || got != want {
			t.Fatalf("guess %q: want %q, got %q (ok=%v)", name, want, got, ok)
		}
	}

	for _, name := range []string{"", "frobnicator", "payload"} {
		if got, ok := DefaultGuesser(name); ok {
			t.Fatalf("guess %q: expected no guess, got %q", name, got)
		}
	}
}
