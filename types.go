package treewire

// DecodeOpt bundles decoding options.
type DecodeOpt struct {
	// Namespace, when set, must match every element exactly; only the local
	// name then takes part in name comparisons. Empty means elements are
	// matched by raw name with namespaces ignored.
	Namespace string
}

// EncodeOpt bundles encoding options for the driver-built sinks.
type EncodeOpt struct {
	// Prefix qualifies every element name when non-empty.
	Prefix string
	// Namespace is declared on the root element when non-empty.
	Namespace string
}

// PathStyle selects one of the two path renderings.
type PathStyle int

const (
	// PathDotted renders names joined with dots and indices in brackets,
	// e.g. items[2].value.
	PathDotted PathStyle = iota
	// PathSlash renders XML-escaped names joined with slashes and indices
	// as *[i], e.g. items/*[2]/value.
	PathSlash
)

// FormatPath renders segments in the given style.
func FormatPath(segs []Segment, style PathStyle) string {
	if style == PathSlash {
		return XPathString(segs)
	}
	return PathString(segs)
}
