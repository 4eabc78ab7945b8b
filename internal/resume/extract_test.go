package resume

import "testing"

func TestExtractFullProfile(t *testing.T) {
	content := `Jane Doe
full-stack developer, 8 years of experience
jane.doe@example.com | (415) 555-0137
Experience: React, Node.js, PostgreSQL`

	p := Extract(content)
	if p.Name != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", p.Name)
	}
	if p.Email != "jane.doe@example.com" {
		t.Fatalf("expected lowercased email, got %q", p.Email)
	}
	if p.Phone != "(415) 555-0137" {
		t.Fatalf("expected normalized phone, got %q", p.Phone)
	}
}

func TestExtractPhoneFormats(t *testing.T) {
	cases := []string{
		"call 415-555-0137 anytime",
		"call 415.555.0137 anytime",
		"call 415 555 0137 anytime",
		"call +1 415 555 0137 anytime",
		"call 4155550137 anytime",
	}
	for _, content := range cases {
		p := Extract(content)
		if p.Phone != "(415) 555-0137" {
			t.Fatalf("content %q: expected (415) 555-0137, got %q", content, p.Phone)
		}
	}
}

func TestExtractNamePrefix(t *testing.T) {
	p := Extract("resume of applicant. Name: John Michael Smith. details follow")
	if p.Name != "John Michael Smith" {
		t.Fatalf("expected prefixed name extracted, got %q", p.Name)
	}
}

func TestExtractMissingFieldsStayEmpty(t *testing.T) {
	p := Extract("no contact information here at all")
	if p.Name != "" || p.Email != "" || p.Phone != "" {
		t.Fatalf("expected empty profile, got %+v", p)
	}
}

func TestExtractEmailIsLowercased(t *testing.T) {
	p := Extract("reach me at Jane.DOE@Example.COM")
	if p.Email != "jane.doe@example.com" {
		t.Fatalf("expected lowercased email, got %q", p.Email)
	}
}
