package assetcore

import (
	"fmt"

	"github.com/scigolib/assetcore/internal/utils"
)

// ClassRegistry is the host capability consulted in object mode. Classes are
// opaque handles; the registry decides how instances are built. A registry
// must expose at least the classes "PPtr" and "UnknownObject".
type ClassRegistry interface {
	// Lookup resolves a class by name.
	Lookup(name string) (class any, ok bool)

	// Construct builds an instance of class from decoded field values,
	// keyed by cleaned field names.
	Construct(class any, fields map[string]any) (any, error)

	// DeclaredAttrs lists the field names class accepts in Construct.
	// Fields outside this set are retried as post-construction attributes.
	DeclaredAttrs(class any) []string

	// SetAttr assigns an extra attribute on a constructed instance.
	SetAttr(instance any, name string, value any) error
}

// NodeFieldKey is the synthetic field under which the schema node is handed
// to UnknownObject constructions.
const NodeFieldKey = "__node__"

// AssetFileFieldKey is the synthetic field under which the asset file is
// injected into PPtr constructions.
const AssetFileFieldKey = "assetsfile"

// parseClass converts a decoded field mapping into a host object. Lookup
// failures and construction failures degrade stepwise: trim fields the class
// does not declare and set them as attributes afterwards, then fall back to
// UnknownObject with the full field set.
func parseClass(fields map[string]any, node *TypeTreeNode, cfg *typeTreeConfig) (any, error) {
	registry := cfg.classes

	var class any
	var ok bool
	if node.kind == KindPPtr {
		class, ok = registry.Lookup("PPtr")
		if !ok {
			return nil, fmt.Errorf("%w: class registry has no PPtr", ErrResolution)
		}
		fields[AssetFileFieldKey] = cfg.assetFile
	} else {
		class, ok = registry.Lookup(node.Type)
		if !ok {
			class, ok = registry.Lookup("UnknownObject")
			if !ok {
				return nil, fmt.Errorf("%w: class registry has no UnknownObject", ErrResolution)
			}
			fields[NodeFieldKey] = node
		}
	}

	instance, err := registry.Construct(class, fields)
	if err == nil {
		return instance, nil
	}

	// The class may accept only a subset of the decoded fields. Move the
	// undeclared ones aside and retry.
	declared := make(map[string]struct{})
	for _, name := range registry.DeclaredAttrs(class) {
		declared[name] = struct{}{}
	}
	extras := make(map[string]any)
	for _, child := range node.Children {
		name := child.cleanName
		if _, ok := declared[name]; ok {
			continue
		}
		if value, present := fields[name]; present {
			extras[name] = value
			delete(fields, name)
		}
	}

	if len(extras) == 0 {
		// Nothing to trim, so the constructor itself rejects the shape.
		class, ok = registry.Lookup("UnknownObject")
		if !ok {
			return nil, fmt.Errorf("%w: class registry has no UnknownObject", ErrResolution)
		}
		fields[NodeFieldKey] = node
	}

	instance, err = registry.Construct(class, fields)
	if err == nil {
		for name, value := range extras {
			// Best effort: attributes the instance rejects are dropped.
			_ = registry.SetAttr(instance, name, value)
		}
		return instance, nil
	}

	// Last resort: UnknownObject with every decoded field.
	class, ok = registry.Lookup("UnknownObject")
	if !ok {
		return nil, fmt.Errorf("%w: class registry has no UnknownObject", ErrResolution)
	}
	fields[NodeFieldKey] = node
	for name, value := range extras {
		fields[name] = value
	}
	instance, err = registry.Construct(class, fields)
	if err != nil {
		return nil, utils.WrapError(fmt.Sprintf("constructing %s", node.Type), err)
	}
	return instance, nil
}
