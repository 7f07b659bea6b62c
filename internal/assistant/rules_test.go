package assistant

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFirstRuleWins(t *testing.T) {
	rules := RuleSet{
		Version:  "test",
		Fallback: "fallback",
		Rules: []Rule{
			{Keywords: []string{"job"}, Response: "first"},
			{Keywords: []string{"job", "career"}, Response: "second"},
		},
	}
	assert.Equal(t, "first", Match(rules, "Any JOB openings?"))
	assert.Equal(t, "second", Match(rules, "career advice please"))
}

func TestMatchFallback(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, rules.Fallback, Match(rules, "qwertyuiop"))
	assert.Equal(t, rules.Fallback, Match(rules, "   "))
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	rules := DefaultRules()
	assert.Equal(t, Match(rules, "how do i track my application"), Match(rules, "HOW DO I TRACK MY APPLICATION"))
}

func TestDefaultRulesCoverCoreTopics(t *testing.T) {
	rules := DefaultRules()
	for _, message := range []string{
		"any open jobs?",
		"where can I check my application status",
		"I want to rent an office",
		"can I visit the park",
	} {
		assert.NotEqual(t, rules.Fallback, Match(rules, message), "expected a rule to cover %q", message)
	}
}

func TestLoadRulesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `version: "2"
fallback: "custom fallback"
rules:
  - keywords: ["wifi", "internet"]
    response: "The park provides fiber connectivity to all tenants."
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "2", rules.Version)
	assert.Equal(t, "The park provides fiber connectivity to all tenants.", Match(rules, "do you have wifi?"))
	assert.Equal(t, "custom fallback", Match(rules, "unrelated"))
}

func TestLoadRulesEmptyPathUsesDefaults(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRules().Version, rules.Version)
	assert.NotEmpty(t, rules.Rules)
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
