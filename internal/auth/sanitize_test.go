package auth

import "testing"

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "demo", want: "demo"},
		{name: "trims whitespace", input: "  demo  ", want: "demo"},
		{name: "strips angle brackets", input: "<script>demo</script>", want: "scriptdemo/script"},
		{name: "brackets around value", input: "<demo>", want: "demo"},
		{name: "whitespace inside brackets", input: "< demo >", want: "demo"},
		{name: "whitespace exposed by stripping", input: "<  >abc", want: "abc"},
		{name: "empty", input: "", want: ""},
		{name: "only brackets", input: "<><>", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeField(tt.input); got != tt.want {
				t.Fatalf("sanitizeField(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
