package assetcore

import (
	"fmt"
	"math"

	set3 "github.com/TomTonic/Set3"

	"github.com/scigolib/assetcore/internal/utils"
)

// Byte-order codes accepted by ReadTypeTree.
const (
	// LittleEndianCode declares the buffer least significant byte first.
	LittleEndianCode byte = '<'
	// BigEndianCode declares the buffer most significant byte first.
	BigEndianCode byte = '>'
)

// ReadOptions control how ReadTypeTree materializes decoded values. A nil
// options pointer decodes to plain maps, slices and primitives.
type ReadOptions struct {
	// AsObject converts decoded class mappings into host objects through
	// Classes. Requires Classes to be non-nil.
	AsObject bool

	// AssetFile supplies the reference-type table for ReferencedObject
	// nodes and is injected into PPtr instances in object mode.
	AssetFile *AssetFile

	// Classes is the host class registry consulted in object mode.
	Classes ClassRegistry
}

// typeTreeConfig is the per-invocation reader configuration. hasRegistry
// guards the managed-references registry subtree so it is decoded at most
// once per top-level read.
type typeTreeConfig struct {
	asObject    bool
	classes     ClassRegistry
	assetFile   *AssetFile
	hasRegistry bool
}

// ReadTypeTree decodes data against the schema rooted at root and returns
// the decoded value together with the number of bytes consumed. endian must
// be LittleEndianCode or BigEndianCode. On error the partial result is
// discarded and the reported byte count is zero.
func ReadTypeTree(data []byte, root *TypeTreeNode, endian byte, opts *ReadOptions) (any, int, error) {
	if root == nil {
		return nil, 0, fmt.Errorf("%w: nil root node", ErrArgument)
	}

	cfg := typeTreeConfig{}
	if opts != nil {
		cfg.asObject = opts.AsObject
		cfg.classes = opts.Classes
		cfg.assetFile = opts.AssetFile
	}
	if cfg.asObject && cfg.classes == nil {
		return nil, 0, fmt.Errorf("%w: class registry required when decoding to objects", ErrArgument)
	}

	r := &reader{data: data}

	var value any
	var err error
	switch endian {
	case LittleEndianCode:
		value, err = readValue(r, littleEndian{}, root, &cfg)
	case BigEndianCode:
		value, err = readValue(r, bigEndian{}, root, &cfg)
	default:
		return nil, 0, fmt.Errorf("%w: unknown byte-order code %q", ErrArgument, endian)
	}
	if err != nil {
		return nil, 0, err
	}
	return value, r.pos, nil
}

// vectorReadKinds holds the element kinds served by the bulk vector path;
// every other element type recurses per element.
var vectorReadKinds = func() *set3.Set3[DataKind] {
	s := set3.Empty[DataKind]()
	for _, k := range []DataKind{
		KindU8, KindU16, KindU32, KindU64,
		KindS8, KindS16, KindS32, KindS64,
		KindF32, KindF64, KindBool, KindPair,
	} {
		s.Add(k)
	}
	return s
}()

// readValue decodes one node. Dispatch is driven entirely by the kind cached
// on the node; nodes without a dedicated kind are containers, either an
// array (first child of kind Array) or a class mapping.
func readValue[E byteOrder](r *reader, e E, node *TypeTreeNode, cfg *typeTreeConfig) (any, error) {
	align := node.align

	var value any
	var err error
	switch node.kind {
	case KindU8:
		value, err = readU8(r)
	case KindU16:
		value, err = readU16(r, e)
	case KindU32:
		value, err = readU32(r, e)
	case KindU64:
		value, err = readU64(r, e)
	case KindS8:
		value, err = readS8(r)
	case KindS16:
		value, err = readS16(r, e)
	case KindS32:
		value, err = readS32(r, e)
	case KindS64:
		value, err = readS64(r, e)
	case KindF32:
		value, err = readF32(r, e)
	case KindF64:
		value, err = readF64(r, e)
	case KindBool:
		value, err = readBool(r)
	case KindString:
		value, err = readString(r, e)
	case KindBytes:
		value, err = readBytes(r, e)
	case KindPair:
		value, err = readPair(r, e, node, cfg)
	case KindReferencedObject:
		value, err = readReferencedObject(r, e, node, cfg)
	default:
		if child := firstChild(node); child != nil && child.kind == KindArray {
			// The array node's alignment propagates to its container.
			if child.align {
				align = true
			}
			value, err = readArray(r, e, child, cfg)
		} else {
			var fields map[string]any
			fields, err = readClass(r, e, node, cfg)
			switch {
			case err != nil:
			case cfg.asObject:
				value, err = parseClass(fields, node, cfg)
			default:
				value = fields
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if align {
		r.align4()
	}
	return value, nil
}

func firstChild(node *TypeTreeNode) *TypeTreeNode {
	if len(node.Children) == 0 {
		return nil
	}
	return node.Children[0]
}

// readArray decodes a length-prefixed sequence described by an Array node
// whose children are the size descriptor and the element descriptor.
func readArray[E byteOrder](r *reader, e E, arrayNode *TypeTreeNode, cfg *typeTreeConfig) (any, error) {
	if len(arrayNode.Children) < 2 {
		return nil, fmt.Errorf("%w: Array node %q must have size and data children",
			ErrSchema, arrayNode.Name)
	}

	length, err := readLength(r, e)
	if err != nil {
		return nil, err
	}

	elem := arrayNode.Children[1]
	if vectorReadKinds.Contains(elem.kind) {
		return readValueArray(r, e, elem, cfg, length)
	}

	// The element may legally consume zero bytes, so the remaining byte
	// count only caps the initial capacity, not the element count.
	capacity := length
	if rem := r.remaining(); capacity > rem {
		capacity = rem
	}
	items := make([]any, 0, capacity)
	for i := 0; i < length; i++ {
		item, err := readValue(r, e, elem, cfg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// readValueArray is the fast vector path. Primitive elements take one bounds
// check and a bulk element loop, with no per-element recursion; pair elements
// are decoded one by one through readPair. The element node's alignment is
// applied once after the run.
func readValueArray[E byteOrder](r *reader, e E, elem *TypeTreeNode, cfg *typeTreeConfig, count int) (any, error) {
	need := func(size int) error {
		total, err := utils.SafeMultiply(uint64(count), uint64(size))
		if err != nil {
			return fmt.Errorf("%w: vector of %d x %d bytes overflows", ErrBounds, count, size)
		}
		if total > uint64(r.remaining()) {
			return fmt.Errorf("%w: vector needs %d bytes at offset %d of %d",
				ErrBounds, total, r.pos, len(r.data))
		}
		return nil
	}

	var value any
	switch elem.kind {
	case KindU8:
		if err := need(1); err != nil {
			return nil, err
		}
		out := make([]uint8, count)
		copy(out, r.data[r.pos:])
		r.pos += count
		value = out
	case KindS8:
		if err := need(1); err != nil {
			return nil, err
		}
		out := make([]int8, count)
		for i := range out {
			out[i] = int8(r.data[r.pos+i])
		}
		r.pos += count
		value = out
	case KindBool:
		if err := need(1); err != nil {
			return nil, err
		}
		out := make([]bool, count)
		for i := range out {
			out[i] = r.data[r.pos+i] != 0
		}
		r.pos += count
		value = out
	case KindU16:
		if err := need(2); err != nil {
			return nil, err
		}
		out := make([]uint16, count)
		for i := range out {
			out[i] = e.Uint16(r.data[r.pos+2*i:])
		}
		r.pos += 2 * count
		value = out
	case KindS16:
		if err := need(2); err != nil {
			return nil, err
		}
		out := make([]int16, count)
		for i := range out {
			out[i] = int16(e.Uint16(r.data[r.pos+2*i:]))
		}
		r.pos += 2 * count
		value = out
	case KindU32:
		if err := need(4); err != nil {
			return nil, err
		}
		out := make([]uint32, count)
		for i := range out {
			out[i] = e.Uint32(r.data[r.pos+4*i:])
		}
		r.pos += 4 * count
		value = out
	case KindS32:
		if err := need(4); err != nil {
			return nil, err
		}
		out := make([]int32, count)
		for i := range out {
			out[i] = int32(e.Uint32(r.data[r.pos+4*i:]))
		}
		r.pos += 4 * count
		value = out
	case KindU64:
		if err := need(8); err != nil {
			return nil, err
		}
		out := make([]uint64, count)
		for i := range out {
			out[i] = e.Uint64(r.data[r.pos+8*i:])
		}
		r.pos += 8 * count
		value = out
	case KindS64:
		if err := need(8); err != nil {
			return nil, err
		}
		out := make([]int64, count)
		for i := range out {
			out[i] = int64(e.Uint64(r.data[r.pos+8*i:]))
		}
		r.pos += 8 * count
		value = out
	case KindF32:
		if err := need(4); err != nil {
			return nil, err
		}
		out := make([]float32, count)
		for i := range out {
			out[i] = math.Float32frombits(e.Uint32(r.data[r.pos+4*i:]))
		}
		r.pos += 4 * count
		value = out
	case KindF64:
		if err := need(8); err != nil {
			return nil, err
		}
		out := make([]float64, count)
		for i := range out {
			out[i] = math.Float64frombits(e.Uint64(r.data[r.pos+8*i:]))
		}
		r.pos += 8 * count
		value = out
	case KindPair:
		out := make([][2]any, 0, min(count, r.remaining()))
		for i := 0; i < count; i++ {
			pair, err := readPair(r, e, elem, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, pair)
		}
		value = out
	default:
		return nil, fmt.Errorf("%w: kind %s has no vector read", ErrSchema, elem.kind)
	}

	if elem.align {
		r.align4()
	}
	return value, nil
}

// readPair decodes a key/value pair as a 2-element tuple.
func readPair[E byteOrder](r *reader, e E, node *TypeTreeNode, cfg *typeTreeConfig) ([2]any, error) {
	if len(node.Children) != 2 {
		return [2]any{}, fmt.Errorf("%w: pair node %q must have exactly 2 children, has %d",
			ErrSchema, node.Name, len(node.Children))
	}
	first, err := readValue(r, e, node.Children[0], cfg)
	if err != nil {
		return [2]any{}, err
	}
	second, err := readValue(r, e, node.Children[1], cfg)
	if err != nil {
		return [2]any{}, err
	}
	return [2]any{first, second}, nil
}

// readClass decodes a class container into a field mapping, keyed by raw
// names in dict mode and by cleaned names in object mode. The managed
// references registry is decoded on first encounter only.
func readClass[E byteOrder](r *reader, e E, node *TypeTreeNode, cfg *typeTreeConfig) (map[string]any, error) {
	fields := make(map[string]any, len(node.Children))
	for _, child := range node.Children {
		if child.kind == KindManagedReferencesRegistry {
			if cfg.hasRegistry {
				continue
			}
			cfg.hasRegistry = true
		}

		value, err := readValue(r, e, child, cfg)
		if err != nil {
			return nil, err
		}

		key := child.Name
		if cfg.asObject {
			key = child.cleanName
		}
		fields[key] = value
	}
	return fields, nil
}

// readReferencedObject decodes a ReferencedObject class. The placeholder
// ReferencedObjectData child is substituted with the concrete schema looked
// up from the asset file's reference-type table, keyed by the type triple
// decoded into the preceding fields.
func readReferencedObject[E byteOrder](r *reader, e E, node *TypeTreeNode, cfg *typeTreeConfig) (any, error) {
	// The subtree stays in plain mappings so the type triple can be read
	// back for resolution; only the completed value is handed to the host.
	asObject := cfg.asObject
	cfg.asObject = false
	defer func() { cfg.asObject = asObject }()

	value := make(map[string]any, len(node.Children))
	for _, child := range node.Children {
		if child.kind == KindReferencedObjectData {
			refNode, err := resolveRefTypeNode(value, cfg.assetFile)
			if err != nil {
				return nil, err
			}
			if refNode == nil {
				// Empty class name: the reference carries no payload.
				continue
			}
			data, err := readValue(r, e, refNode, cfg)
			if err != nil {
				return nil, err
			}
			value[child.Name] = data
			continue
		}

		childValue, err := readValue(r, e, child, cfg)
		if err != nil {
			return nil, err
		}
		value[child.Name] = childValue
	}

	if asObject {
		clz, ok := cfg.classes.Lookup("UnknownObject")
		if !ok {
			return nil, fmt.Errorf("%w: class registry has no UnknownObject", ErrResolution)
		}
		value[NodeFieldKey] = node
		instance, err := cfg.classes.Construct(clz, value)
		if err != nil {
			return nil, utils.WrapError("constructing referenced object", err)
		}
		return instance, nil
	}
	return value, nil
}
