package resume

import "testing"

func TestExtractContact(t *testing.T) {
	text := "John Smith\nBoston, MA\njohn.smith@example.com | (555) 123-4567\nlinkedin.com/in/jsmith | github.com/jsmith\nhttps://jsmith.dev\n"
	lines := splitLines(text)
	contact := extractContact(text, lines, 10)

	if contact.Name != "John Smith" {
		t.Errorf("name = %q, want John Smith", contact.Name)
	}
	if contact.Email != "john.smith@example.com" {
		t.Errorf("email = %q", contact.Email)
	}
	if contact.Phone == "" {
		t.Error("expected phone to be found")
	}
	if contact.LinkedIn != "linkedin.com/in/jsmith" {
		t.Errorf("linkedin = %q", contact.LinkedIn)
	}
	if contact.GitHub != "github.com/jsmith" {
		t.Errorf("github = %q", contact.GitHub)
	}
	if contact.Portfolio != "https://jsmith.dev" {
		t.Errorf("portfolio = %q", contact.Portfolio)
	}
	if contact.Location != "Boston, MA" {
		t.Errorf("location = %q, want Boston, MA", contact.Location)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "first plausible line",
			lines: []string{"Jane Doe", "Engineer"},
			want:  "Jane Doe",
		},
		{
			name:  "skips document boilerplate",
			lines: []string{"RESUME", "Jane Doe"},
			want:  "Jane Doe",
		},
		{
			name:  "skips contact lines",
			lines: []string{"jane@x.com", "555-123-4567", "Jane Doe"},
			want:  "Jane Doe",
		},
		{
			name:  "skips too short and too long",
			lines: []string{"JD", "Jane Doe"},
			want:  "Jane Doe",
		},
		{
			name:  "gives up after five lines",
			lines: []string{"1.", "2.", "3.", "4.", "5.", "Jane Doe"},
			want:  "",
		},
		{
			name:  "mostly non-alphabetic rejected",
			lines: []string{"#### 1234 ####"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractName(tt.lines); got != tt.want {
				t.Errorf("extractName() = %q, want %q", got, tt.want)
			}
		})
	}
}
