package assistant

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule pairs match keywords with a canned response. Rules are evaluated in
// order; the first rule with any keyword contained in the lowercased input
// wins.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

// RuleSet is an injected, versioned rule table. There is no global state:
// callers construct or load a set and hand it to Match.
type RuleSet struct {
	Version  string `yaml:"version"`
	Fallback string `yaml:"fallback"`
	Rules    []Rule `yaml:"rules"`
}

func (r Rule) matches(input string) bool {
	for _, keyword := range r.Keywords {
		if keyword != "" && strings.Contains(input, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// Match returns the response for the first matching rule, or the fallback.
func Match(rules RuleSet, message string) string {
	input := strings.ToLower(strings.TrimSpace(message))
	if input == "" {
		return rules.Fallback
	}
	for _, rule := range rules.Rules {
		if rule.matches(input) {
			return rule.Response
		}
	}
	return rules.Fallback
}

// LoadRules reads a rule set from a YAML file. An empty path returns the
// built-in defaults.
func LoadRules(path string) (RuleSet, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return RuleSet{}, fmt.Errorf("read assistant rules: %w", err)
	}
	var rules RuleSet
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return RuleSet{}, fmt.Errorf("parse assistant rules: %w", err)
	}
	if rules.Fallback == "" {
		rules.Fallback = DefaultRules().Fallback
	}
	return rules, nil
}

// DefaultRules is the built-in rule table for the careers portal.
func DefaultRules() RuleSet {
	return RuleSet{
		Version:  "1",
		Fallback: "I'm not sure about that. You can reach our team through the contact page, or ask me about jobs, application tracking, offices, or visiting the park.",
		Rules: []Rule{
			{Keywords: []string{"hello", "hi ", "hey"}, Response: "Hello! How can I help you today? You can ask me about open positions, tracking your application, or visiting the park."},
			{Keywords: []string{"job", "career", "vacanc", "position", "hiring"}, Response: "Open positions are listed on the careers page. Each posting includes requirements and a deadline, and you can apply directly through the application form."},
			{Keywords: []string{"track", "status", "tracking code"}, Response: "You can check your application status on the tracking page using the tracking code you received after applying, together with the email you applied with."},
			{Keywords: []string{"office", "rent", "space", "lease"}, Response: "Office spaces and serviced land are available for lease. The offices page lists current availability, sizes, and rates."},
			{Keywords: []string{"land", "parcel", "plot"}, Response: "Serviced land parcels are available for ICT companies. The lands page lists parcel sizes, zoning, and lease terms."},
			{Keywords: []string{"visit", "tour", "location", "address", "where"}, Response: "The park is open for visits on working days. You can find directions and a map on the contact page, or book a guided tour."},
			{Keywords: []string{"partner", "invest"}, Response: "We work with local and international partners. The partnership page explains investment incentives and how to get in touch with our investment team."},
			{Keywords: []string{"train", "course", "bootcamp"}, Response: "Training programs and bootcamps run throughout the year. The trainings page lists upcoming sessions and registration details."},
			{Keywords: []string{"event", "news"}, Response: "Upcoming events and the latest announcements are published on the news and events pages."},
			{Keywords: []string{"thank"}, Response: "You're welcome! Is there anything else I can help you with?"},
		},
	}
}
