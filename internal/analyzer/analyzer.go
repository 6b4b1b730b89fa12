// Package analyzer classifies free-text job descriptions with fixed keyword tables.
package analyzer

import (
	"strings"

	"github.com/khrees2412/proposly/pkg/models"
)

// General is returned when no job type or industry keyword is found
const General = "general"

type category struct {
	name     string
	keywords []string
}

// Tables are checked in declaration order and the first match wins.
var jobTypes = []category{
	{"web development", []string{"website", "web app", "frontend", "backend", "fullstack"}},
	{"mobile development", []string{"mobile app", "android", "ios", "react native", "flutter"}},
	{"design", []string{"design", "ui", "ux", "graphic", "logo", "branding"}},
	{"content writing", []string{"content", "blog", "article", "copywriting", "seo"}},
	{"data analysis", []string{"data", "analysis", "dashboard", "excel", "sql"}},
	{"digital marketing", []string{"marketing", "social media", "ads", "campaign"}},
}

var industries = []category{
	{"healthcare", []string{"health", "medical", "hospital", "clinic"}},
	{"fintech", []string{"finance", "banking", "payment", "fintech"}},
	{"ecommerce", []string{"ecommerce", "shop", "store", "retail"}},
	{"education", []string{"education", "learning", "course", "school"}},
	{"real estate", []string{"real estate", "property", "rental"}},
	{"saas", []string{"saas", "software", "platform", "dashboard"}},
}

var skillVocabulary = []string{
	"php", "laravel", "javascript", "react", "vue", "node",
	"python", "django", "mysql", "postgresql", "mongodb",
	"html", "css", "bootstrap", "tailwind", "figma",
	"photoshop", "wordpress", "shopify", "api", "rest",
	"git", "aws", "docker", "seo", "content writing",
}

var integrationVocabulary = []string{
	"stripe", "paypal", "twilio", "sendgrid", "mailchimp", "zapier",
	"hubspot", "salesforce", "slack", "firebase", "google maps", "quickbooks",
}

// Analyze extracts the job type, skills, integrations and industry from a
// job description. It never fails: unmatched categories degrade to General
// and unmatched vocabularies to empty lists.
func Analyze(description string) models.JobAnalysis {
	lower := strings.ToLower(description)
	return models.JobAnalysis{
		JobType:      classify(lower, jobTypes),
		Skills:       findTerms(lower, skillVocabulary),
		Integrations: findTerms(lower, integrationVocabulary),
		Industry:     classify(lower, industries),
		Description:  description,
	}
}

func classify(lower string, table []category) string {
	for _, c := range table {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.name
			}
		}
	}
	return General
}

// findTerms returns every vocabulary term present in lower, in vocabulary order
func findTerms(lower string, vocabulary []string) []string {
	found := []string{}
	for _, term := range vocabulary {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	return found
}

// SkillVocabulary returns a copy of the recognised skill terms
func SkillVocabulary() []string {
	return append([]string(nil), skillVocabulary...)
}
