package converter

import (
	"go/ast"
	"go/types"
	"sort"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/specular-eng/specular/errors"
	"github.com/specular-eng/specular/frontend"
	"github.com/specular-eng/specular/model"
)

// Metadata describes a converter strategy.
type Metadata struct {
	// Name is the unique strategy identifier (e.g., "native.funcdecl")
	Name string

	// Version is the strategy version (semver)
	Version string

	// EngineVersion is the required engine version (semver constraint).
	// Empty means no constraint.
	EngineVersion string

	// Description is a human-readable description
	Description string
}

// Strategy is the base interface every registered strategy implements.
// A strategy additionally implements any combination of NodeConverter,
// NodeTypeConverter, and TypeConverter; the registry sniffs the roles at
// registration time.
type Strategy interface {
	Metadata() Metadata
}

// NodeConverter converts syntax nodes of the kinds it claims into
// reflections. Returning nil is a valid, silent outcome.
type NodeConverter interface {
	Strategy

	// SupportedKinds lists the node kinds this converter claims.
	SupportedKinds() []frontend.NodeKind

	// ConvertNode builds a reflection for node, or returns nil.
	ConvertNode(ctx *Context, node ast.Node) *model.Reflection
}

// NodeTypeConverter converts type expressions it recognizes syntactically.
// The node-based list is consulted before the value-based list.
type NodeTypeConverter interface {
	Strategy

	// Priority orders the node-based list, highest first.
	Priority() int

	// SupportsNode reports whether this converter can handle the expression.
	SupportsNode(ctx *Context, node ast.Expr, typ types.Type) bool

	// ConvertNodeType builds a type-model node for the expression.
	ConvertNodeType(ctx *Context, node ast.Expr, typ types.Type) model.Type
}

// TypeConverter converts checked type values. It is the semantic fallback
// behind the node-based pass.
type TypeConverter interface {
	Strategy

	// Priority orders the value-based list, highest first.
	Priority() int

	// SupportsType reports whether this converter can handle the type.
	SupportsType(ctx *Context, typ types.Type) bool

	// ConvertType builds a type-model node for the type.
	ConvertType(ctx *Context, typ types.Type) model.Type
}

// Registry holds the pluggable strategy tables: one node converter per
// node kind (last registration wins), and two independently priority-sorted
// type-converter lists. The registry is populated at startup and read-only
// during a run; mutating it while a run is in progress is unsupported.
type Registry struct {
	mu            sync.RWMutex
	engineVersion string

	names          map[string]Strategy
	nodeConverters map[frontend.NodeKind]NodeConverter

	// Both lists keep registration order between appends; sorting is stable
	// so equal priorities preserve it.
	nodeTypeConverters []NodeTypeConverter
	typeConverters     []TypeConverter
}

// NewRegistry creates an empty registry. engineVersion is checked against
// each strategy's EngineVersion constraint at registration time.
func NewRegistry(engineVersion string) *Registry {
	return &Registry{
		engineVersion:  engineVersion,
		names:          make(map[string]Strategy),
		nodeConverters: make(map[frontend.NodeKind]NodeConverter),
	}
}

// Register inserts a strategy into every table matching its roles.
// Returns an error on a strategy name conflict or an incompatible engine
// version constraint. Re-claiming a node kind is not an error: the last
// registration for a kind wins.
func (r *Registry) Register(s Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	metadata := s.Metadata()

	if _, exists := r.names[metadata.Name]; exists {
		return errors.Wrapf(errors.ErrStrategyConflict, "strategy %s", metadata.Name)
	}

	if err := r.validateVersion(metadata); err != nil {
		return errors.Wrapf(err, "version incompatible for %s", metadata.Name)
	}

	r.names[metadata.Name] = s

	if nc, ok := s.(NodeConverter); ok {
		for _, kind := range nc.SupportedKinds() {
			r.nodeConverters[kind] = nc
		}
	}
	if ntc, ok := s.(NodeTypeConverter); ok {
		r.nodeTypeConverters = append(r.nodeTypeConverters, ntc)
		sortByPriority(r.nodeTypeConverters, NodeTypeConverter.Priority)
	}
	if tc, ok := s.(TypeConverter); ok {
		r.typeConverters = append(r.typeConverters, tc)
		sortByPriority(r.typeConverters, TypeConverter.Priority)
	}

	return nil
}

// Unregister removes all of the strategy's entries from every table it
// participates in. Unregistering a strategy that was never registered is a
// no-op. Only entries whose value identity matches s are removed, so a
// node-kind claim that was since overridden by another strategy survives.
func (r *Registry) Unregister(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.names, s.Metadata().Name)

	for kind, nc := range r.nodeConverters {
		if Strategy(nc) == s {
			delete(r.nodeConverters, kind)
		}
	}

	r.nodeTypeConverters = removeStrategy(r.nodeTypeConverters, s)
	sortByPriority(r.nodeTypeConverters, NodeTypeConverter.Priority)

	r.typeConverters = removeStrategy(r.typeConverters, s)
	sortByPriority(r.typeConverters, TypeConverter.Priority)
}

// NodeConverter returns the converter claiming the given node kind.
func (r *Registry) NodeConverter(kind frontend.NodeKind) (NodeConverter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	nc, ok := r.nodeConverters[kind]
	return nc, ok
}

// NodeTypeConverters returns the node-based list in dispatch order.
func (r *Registry) NodeTypeConverters() []NodeTypeConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]NodeTypeConverter, len(r.nodeTypeConverters))
	copy(out, r.nodeTypeConverters)
	return out
}

// TypeConverters returns the value-based list in dispatch order.
func (r *Registry) TypeConverters() []TypeConverter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TypeConverter, len(r.typeConverters))
	copy(out, r.typeConverters)
	return out
}

// Strategies returns the registered strategy names in sorted order.
func (r *Registry) Strategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateVersion checks the strategy's engine constraint against the
// running engine version.
func (r *Registry) validateVersion(metadata Metadata) error {
	if metadata.EngineVersion == "" {
		// No version constraint specified
		return nil
	}

	engineVer, err := semver.NewVersion(r.engineVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid engine version %s", r.engineVersion)
	}

	constraint, err := semver.NewConstraint(metadata.EngineVersion)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %s", metadata.EngineVersion)
	}

	if !constraint.Check(engineVer) {
		return errors.Newf("strategy requires engine %s, but running %s", metadata.EngineVersion, r.engineVersion)
	}

	return nil
}

// sortByPriority stably sorts a converter list by descending priority.
// Stability keeps registration order among equal priorities.
func sortByPriority[T Strategy](list []T, priority func(T) int) {
	sort.SliceStable(list, func(i, j int) bool {
		return priority(list[i]) > priority(list[j])
	})
}

// removeStrategy filters every entry whose identity matches s.
func removeStrategy[T Strategy](list []T, s Strategy) []T {
	out := list[:0]
	for _, entry := range list {
		if Strategy(entry) != s {
			out = append(out, entry)
		}
	}
	return out
}
