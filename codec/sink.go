package codec

// Sink is the output side of a document format. The codec only ever emits
// strings, absent markers, sequences and string-keyed maps.
type Sink interface {
	// WriteString emits one string token.
	WriteString(s string) error
	// WriteNone emits the format's "no value" marker.
	WriteNone() error
	// BeginSequence opens an ordered sequence of n elements; n is negative
	// when the length is not known up front.
	BeginSequence(n int) (SequenceSink, error)
	// BeginMap opens a keyed map of n entries.
	BeginMap(n int) (MapSink, error)
}

// SequenceSink receives the elements of a sequence in order.
type SequenceSink interface {
	// Element returns the sink for the next element.
	Element() Sink
	End() error
}

// MapSink receives the entries of a map.
type MapSink interface {
	// Entry writes key using the format's native key encoding and returns
	// the sink for its value.
	Entry(key string) Sink
	End() error
}

// Source is the input side of a document format.
type Source interface {
	// IsNone reports whether the current value is the format's "no value"
	// marker.
	IsNone() bool
	ReadString() (string, error)
	ReadSequence() (SequenceSource, error)
	ReadMap() (MapSource, error)
}

// SequenceSource yields the elements of a sequence in document order.
type SequenceSource interface {
	// Len is the number of elements, or -1 when unknown.
	Len() int
	Next() (Source, bool)
}

// MapSource yields the entries of a map.
type MapSource interface {
	// Len is the number of entries, or -1 when unknown.
	Len() int
	Next() (key string, value Source, ok bool)
}
