package env

// LineKind tags each line of a Document.
type LineKind int

const (
	LineBlank LineKind = iota
	LineComment
	LineAssignment
	LineOpaque
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineAssignment:
		return "assignment"
	default:
		return "opaque"
	}
}

// Line is a single line of a .env file. Raw holds the original text without
// its line ending; Key, Value, Quote and Exported are only set for
// assignments.
type Line struct {
	Kind     LineKind
	Raw      string
	Key      string
	Value    string
	Quote    byte
	Exported bool
}

// Entry is a key and its decoded value.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}
