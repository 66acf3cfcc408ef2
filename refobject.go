package assetcore

import "fmt"

// RefType is one entry of the reference-type table: a managed subtype
// identified by its class/namespace/assembly triple together with the schema
// used to decode its payload.
type RefType struct {
	ClassName    string
	Namespace    string
	AssemblyName string
	Node         *TypeTreeNode
}

// AssetFile carries the out-of-band state a TypeTree read may need: the
// reference-type table for ReferencedObject resolution. In object mode the
// asset file is also injected into PPtr instances.
type AssetFile struct {
	RefTypes []RefType
}

// resolveRefTypeNode matches the {class, ns, asm} triple already decoded
// into partial against the asset file's reference-type table. An empty class
// name means the reference has no payload and yields a nil node without
// error; a lookup miss is a resolution error.
func resolveRefTypeNode(partial map[string]any, assetFile *AssetFile) (*TypeTreeNode, error) {
	if assetFile == nil {
		return nil, fmt.Errorf("%w: referenced object requires an asset file", ErrResolution)
	}

	typeInfo, ok := partial["type"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: referenced object has no decoded type field", ErrResolution)
	}

	className, ok := typeInfo["class"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: reference type has no class name", ErrResolution)
	}
	namespace, ok := typeInfo["ns"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: reference type has no namespace", ErrResolution)
	}
	assembly, ok := typeInfo["asm"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: reference type has no assembly name", ErrResolution)
	}

	if className == "" {
		return nil, nil
	}

	for i := range assetFile.RefTypes {
		refType := &assetFile.RefTypes[i]
		if refType.ClassName == className &&
			refType.Namespace == namespace &&
			refType.AssemblyName == assembly {
			return refType.Node, nil
		}
	}
	return nil, fmt.Errorf("%w: no reference type for class %q ns %q asm %q",
		ErrResolution, className, namespace, assembly)
}
