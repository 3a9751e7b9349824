// Package services holds the long-lived components commands use: configuration,
// help rendering, scheme file loading and the shift roster.
package services

import (
	"fmt"
	"sync"

	"paramshell/pkg/paramtypes"
)

// Registry manages service registration and initialization order.
type Registry struct {
	mu       sync.RWMutex
	services map[string]paramtypes.Service
	order    []string
}

// NewRegistry creates an empty service registry.
func NewRegistry() *Registry {
	return &Registry{
		services: make(map[string]paramtypes.Service),
	}
}

// RegisterService adds a service, returning an error if the name is taken.
func (r *Registry) RegisterService(service paramtypes.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := service.Name()
	if _, exists := r.services[name]; exists {
		return fmt.Errorf("service %s already registered", name)
	}

	r.services[name] = service
	r.order = append(r.order, name)
	return nil
}

// GetService retrieves a service by name.
func (r *Registry) GetService(name string) (paramtypes.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	service, exists := r.services[name]
	if !exists {
		return nil, fmt.Errorf("service %s not found", name)
	}
	return service, nil
}

// HasService reports whether a service is registered.
func (r *Registry) HasService(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.services[name]
	return exists
}

// InitializeAll initializes services in registration order, so a service may
// rely on any service registered before it.
func (r *Registry) InitializeAll() error {
	r.mu.RLock()
	order := append([]string(nil), r.order...)
	r.mu.RUnlock()

	for _, name := range order {
		service, err := r.GetService(name)
		if err != nil {
			return err
		}
		if err := service.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize service %s: %w", name, err)
		}
	}
	return nil
}

// GetAllServices returns a copy of the registered services.
func (r *Registry) GetAllServices() map[string]paramtypes.Service {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]paramtypes.Service, len(r.services))
	for name, service := range r.services {
		result[name] = service
	}
	return result
}

// GlobalRegistry is the service registry the shell and builtin commands share.
var GlobalRegistry = NewRegistry()

var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global service registry.
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry replaces the global service registry.
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}

func getGlobalService[T paramtypes.Service](name string) (T, error) {
	var zero T
	service, err := GetGlobalRegistry().GetService(name)
	if err != nil {
		return zero, err
	}
	typed, ok := service.(T)
	if !ok {
		return zero, fmt.Errorf("service %s has unexpected type %T", name, service)
	}
	return typed, nil
}

// GetGlobalConfigurationService returns the registered configuration service.
func GetGlobalConfigurationService() (*ConfigurationService, error) {
	return getGlobalService[*ConfigurationService](ConfigurationServiceName)
}

// GetGlobalHelpService returns the registered help service.
func GetGlobalHelpService() (*HelpService, error) {
	return getGlobalService[*HelpService](HelpServiceName)
}

// GetGlobalShiftService returns the registered shift service.
func GetGlobalShiftService() (*ShiftService, error) {
	return getGlobalService[*ShiftService](ShiftServiceName)
}

// GetGlobalSchemeService returns the registered scheme service.
func GetGlobalSchemeService() (*SchemeService, error) {
	return getGlobalService[*SchemeService](SchemeServiceName)
}
