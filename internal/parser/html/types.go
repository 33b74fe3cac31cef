package html

// RegionType identifies the kind of CSS region found in HTML
type RegionType int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region type
	UnknownRegion RegionType = iota
	// StyleTag represents CSS inside a <style> element
	StyleTag
	// StyleAttribute represents CSS inside a style="..." attribute
	StyleAttribute
)

func (t RegionType) String() string {
	switch t {
	case StyleTag:
		return "style-tag"
	case StyleAttribute:
		return "style-attribute"
	}
	return "unknown"
}

// CSSRegion is a run of CSS embedded in an HTML document. StartCol is in
// UTF-16 code units.
type CSSRegion struct {
	Content   string
	StartLine uint32
	StartCol  uint32
	Type      RegionType
}
