// Package fingerprint computes deterministic 128-bit content fingerprints
// for layout descriptors and arbitrary values.
package fingerprint

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/incr/internal/core/domain"
	"go.trai.ch/incr/internal/core/ports"
)

var _ ports.Fingerprinter = (*Fingerprinter)(nil)

// altSeed seeds the second xxhash lane so the two 64-bit halves of a
// fingerprint are independent.
const altSeed uint64 = 0x9e3779b97f4a7c15

// maxDerefs caps consecutive pointer and interface hops, so a value that
// cycles without ever crossing a container (e.g. a pointer stored in the
// interface it points through) still terminates.
const maxDerefs = 8

// Markers written in place of values the walk cannot or will not descend
// into. Opacity here is a documented precision trade-off, not an error.
const (
	markerNil       = "nil"
	markerFunc      = "function"
	markerChan      = "chan"
	markerUnsafe    = "unsafe"
	markerTruncated = "truncated"
)

// Fingerprinter hashes descriptors and arbitrary values into 128-bit
// digests. It is stateless apart from the configured walk depth and safe for
// concurrent use.
type Fingerprinter struct {
	maxDepth int
}

// New creates a Fingerprinter with the given structural walk depth. A depth
// of zero falls back to the default.
func New(maxDepth int) *Fingerprinter {
	if maxDepth <= 0 {
		maxDepth = domain.DefaultMaxDepth
	}
	return &Fingerprinter{maxDepth: maxDepth}
}

// digest128 runs two seeded xxhash lanes over the same byte stream and
// combines them into one 128-bit fingerprint.
type digest128 struct {
	lo *xxhash.Digest
	hi *xxhash.Digest
}

func newDigest128() *digest128 {
	hi := xxhash.New()
	hi.ResetWithSeed(altSeed)
	return &digest128{lo: xxhash.New(), hi: hi}
}

func (d *digest128) writeString(s string) {
	_, _ = d.lo.WriteString(s)
	_, _ = d.hi.WriteString(s)
}

// writeSep writes a zero byte between fields so adjacent values cannot
// collide by concatenation.
func (d *digest128) writeSep() {
	_, _ = d.lo.Write([]byte{0})
	_, _ = d.hi.Write([]byte{0})
}

func (d *digest128) writeBytes(b []byte) {
	_, _ = d.lo.Write(b)
	_, _ = d.hi.Write(b)
}

func (d *digest128) writeInt(n int64) {
	d.writeString(strconv.FormatInt(n, 10))
	d.writeSep()
}

func (d *digest128) sum() domain.Fingerprint {
	var f domain.Fingerprint
	lo := d.lo.Sum64()
	hi := d.hi.Sum64()
	for i := range 8 {
		f[i] = byte(lo >> (8 * i))
		f[8+i] = byte(hi >> (8 * i))
	}
	return f
}

// Descriptor computes the fingerprint of a layout descriptor. It recurses
// depth-first: a node's digest covers its canonicalized scalar fields plus
// the ordered fingerprints of its children, so any scalar or structural
// change anywhere in the subtree changes the root fingerprint.
func (fp *Fingerprinter) Descriptor(d *domain.Descriptor) domain.Fingerprint {
	if d == nil {
		dig := newDigest128()
		dig.writeString(markerNil)
		return dig.sum()
	}
	children := make([]domain.Fingerprint, len(d.Children))
	for i, child := range d.Children {
		children[i] = fp.Descriptor(child)
	}
	return fp.Node(d, children)
}

// Node computes a single node's fingerprint from its canonicalized scalar
// fields plus the ordered, already-computed child fingerprints. The tree
// cache uses this to hash a tree in one bottom-up pass.
func (fp *Fingerprinter) Node(d *domain.Descriptor, children []domain.Fingerprint) domain.Fingerprint {
	dig := newDigest128()
	if d == nil {
		dig.writeString(markerNil)
		return dig.sum()
	}

	fp.writeScalars(dig, d)

	// Children: ordered fingerprints plus the count, so reordering,
	// insertion, and removal all change the digest.
	dig.writeInt(int64(len(children)))
	for _, cf := range children {
		dig.writeBytes(cf[:])
	}

	return dig.sum()
}

func (fp *Fingerprinter) writeScalars(dig *digest128, d *domain.Descriptor) {
	dig.writeString("descriptor")
	dig.writeSep()
	dig.writeInt(int64(d.Width))
	dig.writeInt(int64(d.Height))
	fp.writeSpacing(dig, d.Padding)
	fp.writeSpacing(dig, d.Margin)
	dig.writeString(string(d.Direction))
	dig.writeSep()
	dig.writeString(string(d.Align))
	dig.writeSep()
	if d.Grow {
		dig.writeString("grow")
	}
	dig.writeSep()
}

func (fp *Fingerprinter) writeSpacing(dig *digest128, s domain.Spacing) {
	dig.writeInt(int64(s.Top))
	dig.writeInt(int64(s.Right))
	dig.writeInt(int64(s.Bottom))
	dig.writeInt(int64(s.Left))
}

// Value computes the fingerprint of an arbitrary value via a bounded-depth
// structural walk. It never fails: functions, channels, and values beyond
// the depth limit hash as opaque markers.
func (fp *Fingerprinter) Value(v any) domain.Fingerprint {
	dig := newDigest128()
	fp.writeValue(dig, reflect.ValueOf(v), 0)
	return dig.sum()
}

// Args computes a single fingerprint over an ordered argument list.
func (fp *Fingerprinter) Args(args []any) domain.Fingerprint {
	dig := newDigest128()
	dig.writeInt(int64(len(args)))
	for _, arg := range args {
		fp.writeValue(dig, reflect.ValueOf(arg), 0)
		dig.writeSep()
	}
	return dig.sum()
}

// Dependencies resolves each dependency and folds key and current value into
// one fingerprint, in order.
func (fp *Fingerprinter) Dependencies(deps []domain.Dependency) domain.Fingerprint {
	dig := newDigest128()
	dig.writeInt(int64(len(deps)))
	for _, dep := range deps {
		dig.writeString(dep.Key)
		dig.writeSep()
		fp.writeValue(dig, reflect.ValueOf(dep.Resolve()), 0)
		dig.writeSep()
	}
	return dig.sum()
}

// writeValue canonicalizes v into the digest. depth counts container levels
// (structs, maps, slices, arrays); pointers and interfaces are dereferenced
// without consuming depth, but consecutive hops are capped by maxDerefs so
// pointer-only cycles terminate as well.
func (fp *Fingerprinter) writeValue(dig *digest128, v reflect.Value, depth int) {
	if !v.IsValid() {
		dig.writeString(markerNil)
		return
	}

	switch v.Kind() {
	case reflect.Bool:
		dig.writeString("bool:" + strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dig.writeString("int:" + strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		dig.writeString("uint:" + strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		// Format via the bit pattern so every value, including NaN and
		// negative zero, canonicalizes deterministically.
		dig.writeString("float:" + strconv.FormatUint(math.Float64bits(v.Float()), 16))
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		dig.writeString("complex:" +
			strconv.FormatUint(math.Float64bits(real(c)), 16) + ":" +
			strconv.FormatUint(math.Float64bits(imag(c)), 16))
	case reflect.String:
		dig.writeString("string:" + v.String())
	case reflect.Func:
		dig.writeString(markerFunc)
	case reflect.Chan:
		dig.writeString(markerChan)
	case reflect.UnsafePointer:
		dig.writeString(markerUnsafe)
	case reflect.Pointer, reflect.Interface:
		hops := 0
		for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
			if v.IsNil() {
				dig.writeString(markerNil)
				return
			}
			if hops >= maxDerefs {
				dig.writeString(markerTruncated)
				return
			}
			v = v.Elem()
			hops++
		}
		fp.writeValue(dig, v, depth)
	case reflect.Slice, reflect.Array:
		fp.writeSequence(dig, v, depth)
	case reflect.Map:
		fp.writeMap(dig, v, depth)
	case reflect.Struct:
		fp.writeStruct(dig, v, depth)
	default:
		dig.writeString("opaque:" + v.Kind().String())
	}
}

func (fp *Fingerprinter) writeSequence(dig *digest128, v reflect.Value, depth int) {
	if depth >= fp.maxDepth {
		dig.writeString(markerTruncated)
		return
	}
	dig.writeString("seq")
	dig.writeInt(int64(v.Len()))
	for i := range v.Len() {
		fp.writeValue(dig, v.Index(i), depth+1)
		dig.writeSep()
	}
}

func (fp *Fingerprinter) writeMap(dig *digest128, v reflect.Value, depth int) {
	if depth >= fp.maxDepth {
		dig.writeString(markerTruncated)
		return
	}
	if v.IsNil() {
		dig.writeString(markerNil)
		return
	}

	// Map iteration order is random; sort by a canonical key rendering for
	// determinism.
	keys := v.MapKeys()
	type pair struct {
		rendered string
		key      reflect.Value
	}
	pairs := make([]pair, len(keys))
	for i, k := range keys {
		pairs[i] = pair{rendered: fmt.Sprintf("%v", k.Interface()), key: k}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].rendered < pairs[j].rendered })

	dig.writeString("map")
	dig.writeInt(int64(len(pairs)))
	for _, p := range pairs {
		dig.writeString(p.rendered)
		dig.writeSep()
		fp.writeValue(dig, v.MapIndex(p.key), depth+1)
		dig.writeSep()
	}
}

func (fp *Fingerprinter) writeStruct(dig *digest128, v reflect.Value, depth int) {
	if depth >= fp.maxDepth {
		dig.writeString(markerTruncated)
		return
	}
	t := v.Type()
	dig.writeString("struct:" + t.String())
	dig.writeSep()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		dig.writeString(field.Name)
		dig.writeSep()
		fp.writeValue(dig, v.Field(i), depth+1)
		dig.writeSep()
	}
}
