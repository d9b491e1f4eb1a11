// Package vcard seeds the content-line engine with the vCard 4.0 format
// defined by RFC 6350: the per-property value types, the structured
// codecs for N, ADR, GENDER and CLIENTPIDMAP, and a thin Card wrapper
// over the parsed component.
//
// The package performs only the schema work the engine leaves to formats
// (default types, version gate). Cardinality rules ("a vCard must have
// exactly one FN") are the caller's business.
package vcard

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Neumenon/ietftext/contentline"
)

// FormatID identifies the vCard 4.0 format in registries and diagnostics.
const FormatID = "vcard-4.0"

// ComponentName is the BEGIN/END component name of a vCard object.
const ComponentName = "VCARD"

// Version is the only vCard version this format seed supports.
const Version = "4.0"

// Format-scoped structured type identifiers.
const (
	TypeName         = "x-structured-name"
	TypeAddress      = "x-structured-address"
	TypeGender       = "x-gender"
	TypeClientPIDMap = "x-client-pid-map"
)

var (
	// ErrNotVCard reports a root component that is not a VCARD.
	ErrNotVCard = errors.New("vcard: root component is not a VCARD")

	// ErrUnsupportedVersion reports a missing or non-4.0 VERSION property.
	ErrUnsupportedVersion = errors.New("vcard: missing or unsupported VERSION")
)

// NewRegistry builds a fresh registry seeded for vCard 4.0. Callers that
// do not need to mutate the result should share DefaultRegistry instead.
func NewRegistry() *contentline.Registry {
	r := contentline.NewRegistry(FormatID)

	r.Register(contentline.NewStructuredCodec(TypeName,
		[]string{"family", "given", "additional", "prefixes", "suffixes"}, true))
	r.Register(contentline.NewStructuredCodec(TypeAddress,
		[]string{"pobox", "ext", "street", "locality", "region", "code", "country"}, true))
	r.Register(&contentline.StructuredCodec{
		ID:         TypeGender,
		FieldNames: []string{"sex", "identity"},
		MinFields:  1,
	})
	r.Register(&contentline.StructuredCodec{
		ID:         TypeClientPIDMap,
		FieldNames: []string{"pid", "uri"},
		MinFields:  2,
	})

	// Per-property default value types, RFC 6350 §6. Properties absent
	// here fall back to text, which matches the RFC's own fallback.
	for prop, typeID := range map[string]string{
		"SOURCE":       contentline.TypeURI,
		"N":            TypeName,
		"NICKNAME":     contentline.TypeTextList,
		"PHOTO":        contentline.TypeURI,
		"BDAY":         contentline.TypeDateAndOrTime,
		"ANNIVERSARY":  contentline.TypeDateAndOrTime,
		"GENDER":       TypeGender,
		"ADR":          TypeAddress,
		"IMPP":         contentline.TypeURI,
		"LANG":         contentline.TypeLanguageTag,
		"GEO":          contentline.TypeURI,
		"LOGO":         contentline.TypeURI,
		"MEMBER":       contentline.TypeURI,
		"RELATED":      contentline.TypeURI,
		"CATEGORIES":   contentline.TypeTextList,
		"REV":          contentline.TypeTimestamp,
		"SOUND":        contentline.TypeURI,
		"UID":          contentline.TypeURI,
		"CLIENTPIDMAP": TypeClientPIDMap,
		"URL":          contentline.TypeURI,
		"KEY":          contentline.TypeURI,
		"FBURL":        contentline.TypeURI,
		"CALADRURI":    contentline.TypeURI,
		"CALURI":       contentline.TypeURI,
	} {
		r.SetPropertyDefault(prop, typeID)
	}
	return r
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// DefaultRegistry returns the shared vCard 4.0 registry. It is built once
// and must be treated as read-only; derive with Registry.Override for
// per-call customization.
func DefaultRegistry() *contentline.Registry {
	return defaultRegistry()
}

// Card is one vCard object.
type Card struct {
	Component *contentline.Component
}

// New creates a minimal valid card: VERSION, a freshly generated
// urn:uuid UID, and the given formatted name.
func New(formattedName string) *Card {
	c := contentline.NewComponent(ComponentName)
	c.AddProperty(contentline.NewProperty("VERSION", contentline.Text(Version)))
	c.AddProperty(contentline.NewProperty("UID", contentline.URI("urn:uuid:"+uuid.NewString())))
	c.AddProperty(contentline.NewProperty("FN", contentline.Text(formattedName)))
	return &Card{Component: c}
}

// Parse reads one vCard from a folded stream and checks the format gate:
// the root component must be a VCARD carrying VERSION:4.0.
func Parse(r io.Reader) (*Card, error) {
	comp, err := contentline.Parse(r, DefaultRegistry())
	if err != nil {
		return nil, err
	}
	return fromComponent(comp)
}

// ParseString parses a vCard held in memory.
func ParseString(s string) (*Card, error) {
	return Parse(strings.NewReader(s))
}

func fromComponent(comp *contentline.Component) (*Card, error) {
	if comp.Name != ComponentName {
		return nil, fmt.Errorf("%w (got %q)", ErrNotVCard, comp.Name)
	}
	version := comp.First("VERSION")
	if version == nil || version.Value.Text() != Version {
		return nil, ErrUnsupportedVersion
	}
	return &Card{Component: comp}, nil
}

// Encode serializes the card with the default fold width.
func (c *Card) Encode() (string, error) {
	return contentline.Encode(c.Component, DefaultRegistry())
}

// First returns the first property with the given name, or nil.
func (c *Card) First(name string) *contentline.Property {
	return c.Component.First(name)
}

// Named returns every property with the given name, in document order.
func (c *Card) Named(name string) []*contentline.Property {
	return c.Component.Named(name)
}

// Add appends a property to the card.
func (c *Card) Add(p *contentline.Property) {
	c.Component.AddProperty(p)
}

// UID returns the card's UID value, or "" when absent.
func (c *Card) UID() string {
	if p := c.First("UID"); p != nil {
		return p.Value.Text()
	}
	return ""
}

// FormattedName returns the first FN value, or "" when absent.
func (c *Card) FormattedName() string {
	if p := c.First("FN"); p != nil {
		return p.Value.Text()
	}
	return ""
}
