package validator

import (
	"strings"
	"testing"
)

type routeHolder struct {
	Title string `validate:"required,no_html"`
	URL   string `validate:"required,route"`
	Icon  string `validate:"required,slug"`
}

func TestValidateCustomRules(t *testing.T) {
	cases := []struct {
		name    string
		value   routeHolder
		wantErr bool
	}{
		{name: "valid", value: routeHolder{Title: "עמוד הבית", URL: "/Home", Icon: "home"}},
		{name: "nested route", value: routeHolder{Title: "x", URL: "/courses/intro-101", Icon: "graduation-cap"}},
		{name: "relative url", value: routeHolder{Title: "x", URL: "Home", Icon: "home"}, wantErr: true},
		{name: "protocol relative", value: routeHolder{Title: "x", URL: "//evil.example", Icon: "home"}, wantErr: true},
		{name: "html title", value: routeHolder{Title: "<b>x</b>", URL: "/Home", Icon: "home"}, wantErr: true},
		{name: "icon with caps", value: routeHolder{Title: "x", URL: "/Home", Icon: "Home"}, wantErr: true},
		{name: "missing title", value: routeHolder{URL: "/Home", Icon: "home"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeHTMLKeepsDirAndStripsScripts(t *testing.T) {
	input := `<section dir="rtl" class="intro"><h1>שלום</h1><script>alert(1)</script></section>`
	output := SanitizeHTML(input)

	if strings.Contains(output, "<script") {
		t.Fatalf("expected script to be stripped, got %q", output)
	}
	if !strings.Contains(output, `dir="rtl"`) {
		t.Fatalf("expected dir attribute to survive, got %q", output)
	}
	if !strings.Contains(output, `class="intro"`) {
		t.Fatalf("expected class attribute to survive, got %q", output)
	}
}

func TestIsRoute(t *testing.T) {
	if !IsRoute("/ProgressTracker") {
		t.Errorf("expected /ProgressTracker to be a route")
	}
	for _, value := range []string{"", "https://example.com/Home", "//example.com", "/Home?x=1", "/a b"} {
		if IsRoute(value) {
			t.Errorf("expected %q to be rejected", value)
		}
	}
}
