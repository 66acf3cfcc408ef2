// Package assetcore implements the CPU-bound decoding primitives for
// game-engine asset-bundle resources: a schema-driven TypeTree deserializer,
// bit-packed numeric decoders, vertex-channel extraction, archive block
// decryption, and texture deswizzling. All operations are pure in-memory
// transformations; container parsing, decompression, and I/O belong to the
// caller.
package assetcore

import (
	"fmt"
	"strings"
)

// DataKind selects the decoder for a TypeTree node. It is derived once from
// the node's type name when the node is constructed.
type DataKind uint8

// Data kind constants cover the primitive wire types plus the structural
// node categories of the TypeTree format.
const (
	KindUnknown DataKind = iota // Class container (or unrecognized type name).
	KindU8
	KindU16
	KindU32
	KindU64
	KindS8
	KindS16
	KindS32
	KindS64
	KindF32
	KindF64
	KindBool
	KindString
	KindBytes // TypelessData.
	KindPair
	KindArray
	KindPPtr
	KindReferencedObject
	KindReferencedObjectData
	KindManagedReferencesRegistry
)

// String returns a human-readable kind name for diagnostics.
func (k DataKind) String() string {
	switch k {
	case KindUnknown:
		return "class"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindS8:
		return "s8"
	case KindS16:
		return "s16"
	case KindS32:
		return "s32"
	case KindS64:
		return "s64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindPair:
		return "pair"
	case KindArray:
		return "Array"
	case KindPPtr:
		return "PPtr"
	case KindReferencedObject:
		return "ReferencedObject"
	case KindReferencedObjectData:
		return "ReferencedObjectData"
	case KindManagedReferencesRegistry:
		return "ManagedReferencesRegistry"
	default:
		return fmt.Sprintf("kind_%d", uint8(k))
	}
}

// typeNameKinds maps engine type names to data kinds. Several names are
// aliases carried over from the serializer's C++ type system.
var typeNameKinds = map[string]DataKind{
	"SInt8":                     KindS8,
	"UInt8":                     KindU8,
	"char":                      KindU8,
	"short":                     KindS16,
	"SInt16":                    KindS16,
	"unsigned short":            KindU16,
	"UInt16":                    KindU16,
	"int":                       KindS32,
	"SInt32":                    KindS32,
	"unsigned int":              KindU32,
	"UInt32":                    KindU32,
	"Type*":                     KindU32,
	"long long":                 KindS64,
	"SInt64":                    KindS64,
	"unsigned long long":        KindU64,
	"UInt64":                    KindU64,
	"FileSize":                  KindU64,
	"float":                     KindF32,
	"double":                    KindF64,
	"bool":                      KindBool,
	"string":                    KindString,
	"TypelessData":              KindBytes,
	"pair":                      KindPair,
	"Array":                     KindArray,
	"ReferencedObject":          KindReferencedObject,
	"ReferencedObjectData":      KindReferencedObjectData,
	"ManagedReferencesRegistry": KindManagedReferencesRegistry,
}

// kindForTypeName resolves a type name to its data kind. Unrecognized names
// decode as class containers.
func kindForTypeName(typeName string) DataKind {
	if strings.HasPrefix(typeName, "PPtr<") {
		return KindPPtr
	}
	if kind, ok := typeNameKinds[typeName]; ok {
		return kind
	}
	return KindUnknown
}

// alignFlag in the meta flags requests 4-byte cursor alignment after the
// node's value has been read.
const alignFlag = 0x4000

// TypeTreeNode is one field descriptor in a deserialization schema. Nodes
// must be built with NewTypeTreeNode so that the derived kind, alignment and
// cleaned name are computed up front; Type, Name and MetaFlag must not be
// changed afterwards. Children may be appended only while the schema is being
// constructed, never during a read.
type TypeTreeNode struct {
	Level         uint8
	Type          string
	Name          string
	ByteSize      int32
	Version       int16
	TypeFlags     int32
	VariableCount int32
	Index         int32
	MetaFlag      int32
	RefTypeHash   uint64
	Children      []*TypeTreeNode

	kind      DataKind
	align     bool
	cleanName string
}

// NewTypeTreeNode constructs a node and precomputes its derived fields.
// Remaining metadata (Level, ByteSize, Version, ...) may be assigned on the
// returned node before it is linked into a schema.
func NewTypeTreeNode(typeName, name string, metaFlag int32) *TypeTreeNode {
	return &TypeTreeNode{
		Type:      typeName,
		Name:      name,
		MetaFlag:  metaFlag,
		kind:      kindForTypeName(typeName),
		align:     metaFlag&alignFlag != 0,
		cleanName: CleanFieldName(name),
	}
}

// AddChild appends children in schema order and returns the node for
// chained construction.
func (n *TypeTreeNode) AddChild(children ...*TypeTreeNode) *TypeTreeNode {
	n.Children = append(n.Children, children...)
	return n
}

// Kind returns the decoder selector derived from the type name.
func (n *TypeTreeNode) Kind() DataKind {
	return n.kind
}

// Align reports whether the cursor realigns to 4 bytes after this node.
func (n *TypeTreeNode) Align() bool {
	return n.align
}

// CleanName returns the field name cleaned into an identifier-safe form.
func (n *TypeTreeNode) CleanName() string {
	return n.cleanName
}

// CleanFieldName converts a raw field name into an identifier-safe form:
// a leading "(int&)" and a trailing "?" are stripped, separator characters
// become underscores, the reserved words "pass" and "from" get a trailing
// underscore, and a leading digit is prefixed with "x".
func CleanFieldName(name string) string {
	if name == "" {
		return name
	}

	cleaned := strings.TrimPrefix(name, "(int&)")
	cleaned = strings.TrimSuffix(cleaned, "?")

	cleaned = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '.', ':', '-', '[', ']':
			return '_'
		}
		return r
	}, cleaned)

	if cleaned == "pass" || cleaned == "from" {
		cleaned += "_"
	}
	if cleaned != "" && cleaned[0] >= '0' && cleaned[0] <= '9' {
		cleaned = "x" + cleaned
	}
	return cleaned
}
