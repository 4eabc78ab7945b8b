package evaluator

import "fmt"

// ProviderFactory creates a new provider instance.
type ProviderFactory func() (Provider, error)

// global registry of available providers
var providers = make(map[string]ProviderFactory)

// RegisterProvider registers a provider factory under the given name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates a provider instance by registered name.
func NewProvider(name string) (Provider, error) {
	factory, exists := providers[name]
	if !exists {
		return nil, fmt.Errorf("unsupported evaluator provider: %s", name)
	}
	return factory()
}
