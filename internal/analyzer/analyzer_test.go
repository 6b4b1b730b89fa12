package analyzer

import (
	"reflect"
	"strings"
	"testing"
)

func TestAnalyzeJobType(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"website", "Build a WEBSITE for our bakery", "web development"},
		{"mobile", "Flutter mobile app wanted", "mobile development"},
		{"declaration order wins", "Design a logo for our website", "web development"},
		{"design", "Need a new logo and branding", "design"},
		{"content", "Weekly blog articles", "content writing"},
		{"data", "Build an Excel report", "data analysis"},
		{"marketing", "Run a social media campaign", "digital marketing"},
		{"nothing", "Walk my dog", General},
		{"empty", "", General},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Analyze(tt.desc).JobType; got != tt.want {
				t.Errorf("Analyze(%q).JobType = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}

func TestAnalyzeIndustry(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"Patient portal for a clinic", "healthcare"},
		{"Payment gateway integration", "fintech"},
		{"Online store revamp", "ecommerce"},
		{"Course platform for a school", "education"},
		{"Rental listings site", "real estate"},
		{"SaaS onboarding flow", "saas"},
		{"Walk my dog", General},
	}

	for _, tt := range tests {
		if got := Analyze(tt.desc).Industry; got != tt.want {
			t.Errorf("Analyze(%q).Industry = %q, want %q", tt.desc, got, tt.want)
		}
	}
}

func TestAnalyzeSkillsInVocabularyOrder(t *testing.T) {
	a := Analyze("Need a Laravel + Vue developer, PHP 8, MySQL, Docker on AWS")
	want := []string{"php", "laravel", "vue", "mysql", "aws", "docker"}
	if !reflect.DeepEqual(a.Skills, want) {
		t.Errorf("skills = %v, want %v", a.Skills, want)
	}
}

// Every vocabulary term present in a description is found and absent ones are not
func TestAnalyzeSkillsPresence(t *testing.T) {
	for _, term := range SkillVocabulary() {
		desc := "Looking for help with " + strings.ToUpper(term) + " urgently"
		found := false
		for _, s := range Analyze(desc).Skills {
			if s == term {
				found = true
			}
		}
		if !found {
			t.Errorf("expected %q to be detected in %q", term, desc)
		}
	}

	if skills := Analyze("Walk my dog").Skills; len(skills) != 0 {
		t.Errorf("expected no skills, got %v", skills)
	}
}

func TestAnalyzeIntegrations(t *testing.T) {
	a := Analyze("Connect Stripe checkout and Google Maps store locator")
	want := []string{"stripe", "google maps"}
	if !reflect.DeepEqual(a.Integrations, want) {
		t.Errorf("integrations = %v, want %v", a.Integrations, want)
	}
}

func TestAnalyzeKeepsDescription(t *testing.T) {
	desc := "  Mixed Case Description  "
	if got := Analyze(desc).Description; got != desc {
		t.Errorf("description changed: %q", got)
	}
}
