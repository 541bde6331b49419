// Package nodetype is the registry of node types that blueprint documents can
// reference as "provider.module.Name", for example "azure.compute.AppServices".
//
// The provider files in this package fill Default at startup. Lookups never
// import or reflect on anything: a type exists only if it was registered.
package nodetype

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ankek/terraform-provider-archdiagram/internal/scene"
)

// ErrDuplicate is returned when a node type path is registered twice.
var ErrDuplicate = errors.New("node type already registered")

// NodeType describes one drawable node kind.
type NodeType struct {
	Provider string
	Module   string
	Name     string
	Category scene.Category
	// Icon is an icon catalog key, empty when the type has no cached icon.
	Icon string
}

// Path returns the dotted provider.module.Name form.
func (n NodeType) Path() string {
	return n.Provider + "." + n.Module + "." + n.Name
}

// KnownProviders lists every provider name a registry may hold.
var KnownProviders = []string{
	"alibabacloud", "aws", "azure", "digitalocean", "elastic",
	"firebase", "gcp", "generic", "ibm", "k8s", "oci",
	"onprem", "openstack", "outscale", "programming", "saas",
}

// DefaultProviders are the providers documented when none are named.
var DefaultProviders = []string{"aws", "azure", "gcp", "k8s", "onprem"}

var displayNames = map[string]string{
	"aws":          "AWS",
	"azure":        "Azure",
	"gcp":          "GCP (Google Cloud Platform)",
	"k8s":          "Kubernetes",
	"onprem":       "On-Premises / Open Source",
	"alibabacloud": "Alibaba Cloud",
	"digitalocean": "DigitalOcean",
	"elastic":      "Elastic",
	"firebase":     "Firebase",
	"generic":      "Generic",
	"ibm":          "IBM",
	"oci":          "Oracle Cloud Infrastructure",
	"openstack":    "OpenStack",
	"outscale":     "Outscale",
	"programming":  "Programming",
	"saas":         "SaaS",
}

// DisplayName returns the human name of a provider, or the name itself.
func DisplayName(provider string) string {
	if d, ok := displayNames[provider]; ok {
		return d
	}
	return provider
}

// IsKnownProvider reports whether provider is in KnownProviders.
func IsKnownProvider(provider string) bool {
	for _, p := range KnownProviders {
		if p == provider {
			return true
		}
	}
	return false
}

// Registry holds node types keyed by path.
type Registry struct {
	mu    sync.RWMutex
	types map[string]NodeType
}

// Default is the registry filled by this package's provider files.
var Default = New()

// New returns an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]NodeType)}
}

// Register adds a node type. Names must be exported-style identifiers and
// the provider must be known.
func (r *Registry) Register(nt NodeType) error {
	if !IsKnownProvider(nt.Provider) {
		return fmt.Errorf("unknown provider %q", nt.Provider)
	}
	if nt.Module == "" || nt.Name == "" {
		return fmt.Errorf("node type %q: module and name are required", nt.Path())
	}
	if strings.HasPrefix(nt.Name, "_") {
		return fmt.Errorf("node type %q: private names cannot be registered", nt.Path())
	}
	if nt.Category == "" {
		nt.Category = scene.CategoryDefault
	}
	if _, err := scene.ParseCategory(string(nt.Category)); err != nil {
		return fmt.Errorf("node type %q: %w", nt.Path(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	path := nt.Path()
	if _, exists := r.types[path]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, path)
	}
	r.types[path] = nt
	return nil
}

// RegisterModule registers names under one provider module with a shared category.
func (r *Registry) RegisterModule(provider, module string, cat scene.Category, names ...string) error {
	for _, name := range names {
		if err := r.Register(NodeType{Provider: provider, Module: module, Name: name, Category: cat}); err != nil {
			return err
		}
	}
	return nil
}

// SetIcon attaches an icon catalog key to a registered type.
func (r *Registry) SetIcon(path, icon string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	nt, ok := r.types[path]
	if !ok {
		return fmt.Errorf("node type %q is not registered", path)
	}
	nt.Icon = icon
	r.types[path] = nt
	return nil
}

// Lookup returns the node type registered under a dotted path.
func (r *Registry) Lookup(path string) (NodeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nt, ok := r.types[path]
	return nt, ok
}

// Providers returns the providers that have at least one type, sorted.
func (r *Registry) Providers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	for _, nt := range r.types {
		seen[nt.Provider] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Modules returns the type names of provider grouped by module, each list sorted.
func (r *Registry) Modules(provider string) map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	modules := make(map[string][]string)
	for _, nt := range r.types {
		if nt.Provider == provider {
			modules[nt.Module] = append(modules[nt.Module], nt.Name)
		}
	}
	for _, names := range modules {
		sort.Strings(names)
	}
	return modules
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// mustRegisterModule is used by the provider files at init time, where a
// registration error is a programming mistake.
func mustRegisterModule(provider, module string, cat scene.Category, names ...string) {
	if err := Default.RegisterModule(provider, module, cat, names...); err != nil {
		panic(err)
	}
}

func mustSetIcons(provider string, icons map[string]string) {
	for rel, key := range icons {
		if err := Default.SetIcon(provider+"."+rel, key); err != nil {
			panic(err)
		}
	}
}
