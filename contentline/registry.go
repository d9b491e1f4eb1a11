package contentline

import (
	"strings"
)

// Registry maps value-type identifiers to Codecs for one format, plus the
// per-property-name default types and the format-wide fallback type.
//
// A registry is mutable while a format seeds it and must be treated as
// read-only afterwards; a built registry is then safe to share across
// concurrent parses and encodes. Per-call customization goes through
// Derive or Override, which copy instead of mutating.
type Registry struct {
	format      string
	codecs      map[string]Codec
	propDefault map[string]string
	defaultType string
}

// NewRegistry creates a registry for the named format, seeded with the
// built-in codecs and "text" as the format-wide default type.
func NewRegistry(format string) *Registry {
	r := &Registry{
		format:      format,
		codecs:      make(map[string]Codec),
		propDefault: make(map[string]string),
		defaultType: TypeText,
	}
	for _, c := range []Codec{
		textCodec{},
		integerCodec{},
		floatCodec{},
		booleanCodec{},
		uriCodec{},
		binaryCodec{},
		languageTagCodec{},
		utcOffsetCodec{},
		textListCodec{},
		dateCodec{},
		timeCodec{},
		dateTimeCodec{id: TypeDateTime},
		dateTimeCodec{id: TypeTimestamp},
		dateAndOrTimeCodec{},
		durationCodec{},
	} {
		r.codecs[c.TypeID()] = c
	}
	return r
}

// Format returns the format identifier the registry was built for.
func (r *Registry) Format() string { return r.format }

// Register adds or replaces a codec under its type identifier.
func (r *Registry) Register(c Codec) {
	r.codecs[strings.ToLower(c.TypeID())] = c
}

// SetPropertyDefault maps a property name to the type it carries when no
// VALUE parameter says otherwise.
func (r *Registry) SetPropertyDefault(propName, typeID string) {
	r.propDefault[strings.ToUpper(propName)] = strings.ToLower(typeID)
}

// SetDefaultType sets the format-wide fallback type.
func (r *Registry) SetDefaultType(typeID string) {
	r.defaultType = strings.ToLower(typeID)
}

// Resolve returns the codec for a type identifier, or an ErrUnknownType
// error.
func (r *Registry) Resolve(typeID string) (Codec, error) {
	c, ok := r.codecs[strings.ToLower(typeID)]
	if !ok {
		return nil, newError(ErrUnknownType, Span{}, "no codec for type %q in format %q", typeID, r.format)
	}
	return c, nil
}

// TypeFor resolves the value type for a property: an explicit VALUE
// parameter wins, then the per-property default, then the format default.
func (r *Registry) TypeFor(propName string, params Parameters) string {
	if t := params.Value(ParamValueType); t != "" {
		return strings.ToLower(t)
	}
	if t, ok := r.propDefault[strings.ToUpper(propName)]; ok {
		return t
	}
	return r.defaultType
}

// ParseValue coerces raw value text through the codec for typeID.
func (r *Registry) ParseValue(typeID, raw string, params Parameters) (Value, error) {
	c, err := r.Resolve(typeID)
	if err != nil {
		return Value{}, err
	}
	return c.Parse(raw, params)
}

// EncodeValue renders a value through the codec for typeID.
func (r *Registry) EncodeValue(typeID string, v Value, params Parameters) (string, error) {
	c, err := r.Resolve(typeID)
	if err != nil {
		return "", err
	}
	return c.Encode(v, params)
}

// Derive returns an independent copy. Mutating the copy never affects the
// shared original.
func (r *Registry) Derive() *Registry {
	out := &Registry{
		format:      r.format,
		codecs:      make(map[string]Codec, len(r.codecs)),
		propDefault: make(map[string]string, len(r.propDefault)),
		defaultType: r.defaultType,
	}
	for k, v := range r.codecs {
		out.codecs[k] = v
	}
	for k, v := range r.propDefault {
		out.propDefault[k] = v
	}
	return out
}

// Override returns a derived registry with one per-property default
// replaced.
func (r *Registry) Override(propName, typeID string) *Registry {
	out := r.Derive()
	out.SetPropertyDefault(propName, typeID)
	return out
}
