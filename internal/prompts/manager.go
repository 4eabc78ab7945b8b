package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into the binary at
// compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// Manager loads prompt templates and renders them by placeholder
// substitution.
type Manager struct {
	prompts map[string]map[string]string // name -> variant -> complete prompt
}

// on-disk template shape
type promptTemplate struct {
	BasePrompt string            `yaml:"base_prompt"`
	Variants   map[string]string `yaml:"variants"`
}

// NewManager creates a prompt manager and loads the embedded templates.
func NewManager() (*Manager, error) {
	m := &Manager{prompts: make(map[string]map[string]string)}
	if err := m.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return m, nil
}

// BuildPrompt renders the named template variant. Every key of data
// replaces its {{.Key}} placeholder.
func (m *Manager) BuildPrompt(name, variant string, data map[string]string) (string, error) {
	variants, exists := m.prompts[name]
	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}

	prompt, exists := variants[variant]
	if !exists {
		return "", fmt.Errorf("variant '%s' not found for template '%s'", variant, name)
	}

	// Simple string replacement instead of template execution
	for key, value := range data {
		prompt = strings.ReplaceAll(prompt, "{{."+key+"}}", value)
	}

	return prompt, nil
}

// loadPrompts loads all YAML prompt files from the embedded filesystem.
func (m *Manager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		m.prompts[name] = make(map[string]string)

		for variant, body := range tmpl.Variants {
			var full strings.Builder
			if tmpl.BasePrompt != "" {
				full.WriteString(tmpl.BasePrompt)
				full.WriteString("\n\n")
			}
			full.WriteString(body)
			m.prompts[name][variant] = full.String()
		}
	}

	return nil
}
