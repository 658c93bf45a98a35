// Package llm holds the provider registry for text-generation services.
// Provider packages register themselves from init; import them for effect.
package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/config"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/domain"
	"github.com/InnovAIte-Deakin/AI-Prototyping-Lab---MedTech-Stream-2/internal/port"
)

// ProviderFactory creates a Generator from the generation config.
type ProviderFactory func(cfg *config.GenerationConfig) (port.Generator, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// Providers lists registered provider names in sorted order.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewGenerator builds the configured generator. It returns
// domain.ErrGeneratorNotConfigured when no provider or credential is set.
func NewGenerator(cfg *config.GenerationConfig) (port.Generator, error) {
	if !cfg.Enabled() {
		return nil, domain.ErrGeneratorNotConfigured
	}
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown generation provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
