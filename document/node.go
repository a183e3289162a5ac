package document

import (
	"sort"

	"github.com/pkg/errors"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/cnabio/regexcodec/codec"
)

const (
	nullTag = "!!null"
	strTag  = "!!str"
	seqTag  = "!!seq"
	mapTag  = "!!map"
)

// EncodeNode renders v as a yaml.v3 node tree. Map entries are sorted by key.
func EncodeNode[T any](c codec.Codec[T], v T) (*yamlv3.Node, error) {
	n := &yamlv3.Node{}
	if err := c.Encode(v, nodeSink{n: n}); err != nil {
		return nil, err
	}
	return n, nil
}

// DecodeNode reads a T from a yaml.v3 node. Document nodes and aliases are
// followed, mappings are read in document order and any scalar other than
// null is taken as a string, so an unquoted pattern like 123 still reads as
// the text "123".
func DecodeNode[T any](c codec.Codec[T], n *yamlv3.Node) (T, error) {
	return c.Decode(nodeSource{n: n})
}

type nodeSink struct {
	n *yamlv3.Node
}

func (s nodeSink) WriteString(str string) error {
	*s.n = yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: strTag, Value: str}
	return nil
}

func (s nodeSink) WriteNone() error {
	*s.n = yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: nullTag, Value: "null"}
	return nil
}

func (s nodeSink) BeginSequence(n int) (codec.SequenceSink, error) {
	if n < 0 {
		n = 0
	}
	*s.n = yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: seqTag, Content: make([]*yamlv3.Node, 0, n)}
	return nodeSequenceSink{n: s.n}, nil
}

func (s nodeSink) BeginMap(n int) (codec.MapSink, error) {
	if n < 0 {
		n = 0
	}
	*s.n = yamlv3.Node{Kind: yamlv3.MappingNode, Tag: mapTag, Content: make([]*yamlv3.Node, 0, 2*n)}
	return nodeMapSink{n: s.n}, nil
}

type nodeSequenceSink struct {
	n *yamlv3.Node
}

func (s nodeSequenceSink) Element() codec.Sink {
	child := &yamlv3.Node{}
	s.n.Content = append(s.n.Content, child)
	return nodeSink{n: child}
}

func (s nodeSequenceSink) End() error {
	return nil
}

type nodeMapSink struct {
	n *yamlv3.Node
}

func (s nodeMapSink) Entry(key string) codec.Sink {
	value := &yamlv3.Node{}
	s.n.Content = append(s.n.Content,
		&yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: strTag, Value: key},
		value,
	)
	return nodeSink{n: value}
}

// End sorts the entries by key; Go map iteration order would otherwise make
// the output differ from run to run.
func (s nodeMapSink) End() error {
	pairs := make([][2]*yamlv3.Node, 0, len(s.n.Content)/2)
	for i := 0; i+1 < len(s.n.Content); i += 2 {
		pairs = append(pairs, [2]*yamlv3.Node{s.n.Content[i], s.n.Content[i+1]})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0].Value < pairs[j][0].Value })
	s.n.Content = s.n.Content[:0]
	for _, p := range pairs {
		s.n.Content = append(s.n.Content, p[0], p[1])
	}
	return nil
}

type nodeSource struct {
	n *yamlv3.Node
}

// resolve steps through document and alias nodes to the value they hold.
func resolve(n *yamlv3.Node) *yamlv3.Node {
	for n != nil {
		switch {
		case n.Kind == yamlv3.DocumentNode && len(n.Content) == 1:
			n = n.Content[0]
		case n.Kind == yamlv3.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func (s nodeSource) IsNone() bool {
	n := resolve(s.n)
	if n == nil || n.Kind == 0 || n.Kind == yamlv3.DocumentNode && len(n.Content) == 0 {
		return true
	}
	return n.Kind == yamlv3.ScalarNode && n.ShortTag() == nullTag
}

func (s nodeSource) ReadString() (string, error) {
	n := resolve(s.n)
	if n == nil || n.Kind != yamlv3.ScalarNode {
		return "", nodeMismatch("a string", n)
	}
	if n.ShortTag() == nullTag {
		return "", errors.Errorf("line %d: expected a string, got null", n.Line)
	}
	return n.Value, nil
}

func (s nodeSource) ReadSequence() (codec.SequenceSource, error) {
	n := resolve(s.n)
	if n == nil || n.Kind != yamlv3.SequenceNode {
		return nil, nodeMismatch("a sequence", n)
	}
	return &nodeSequenceSource{items: n.Content}, nil
}

func (s nodeSource) ReadMap() (codec.MapSource, error) {
	n := resolve(s.n)
	if n == nil || n.Kind != yamlv3.MappingNode {
		return nil, nodeMismatch("a map", n)
	}
	for i := 0; i < len(n.Content); i += 2 {
		if key := resolve(n.Content[i]); key == nil || key.Kind != yamlv3.ScalarNode {
			return nil, nodeMismatch("a string key", key)
		}
	}
	return &nodeMapSource{content: n.Content}, nil
}

type nodeSequenceSource struct {
	items []*yamlv3.Node
	pos   int
}

func (s *nodeSequenceSource) Len() int {
	return len(s.items)
}

func (s *nodeSequenceSource) Next() (codec.Source, bool) {
	if s.pos >= len(s.items) {
		return nil, false
	}
	n := s.items[s.pos]
	s.pos++
	return nodeSource{n: n}, true
}

// nodeMapSource walks key/value pairs in document order.
type nodeMapSource struct {
	content []*yamlv3.Node
	pos     int
}

func (s *nodeMapSource) Len() int {
	return len(s.content) / 2
}

func (s *nodeMapSource) Next() (string, codec.Source, bool) {
	if s.pos+1 >= len(s.content) {
		return "", nil, false
	}
	key, value := resolve(s.content[s.pos]), s.content[s.pos+1]
	s.pos += 2
	return key.Value, nodeSource{n: value}, true
}

func nodeMismatch(want string, n *yamlv3.Node) error {
	if n == nil || n.Kind == 0 {
		return errors.Errorf("expected %s, got nothing", want)
	}
	return errors.Errorf("line %d: expected %s, got %s", n.Line, want, kindName(n))
}

func kindName(n *yamlv3.Node) string {
	switch n.Kind {
	case yamlv3.SequenceNode:
		return "a sequence"
	case yamlv3.MappingNode:
		return "a map"
	case yamlv3.ScalarNode:
		if n.ShortTag() == nullTag {
			return "null"
		}
		return "a scalar"
	default:
		return "an unexpected node"
	}
}
