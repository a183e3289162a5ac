package serde_test

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/coregx/coregex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/cnabio/regexcodec/codec"
	"github.com/cnabio/regexcodec/engine"
	"github.com/cnabio/regexcodec/serde"
)

type filter struct {
	Name    string                `json:"name" yaml:"name"`
	Match   serde.Pattern         `json:"match" yaml:"match"`
	Exclude serde.OptionalPattern `json:"exclude" yaml:"exclude"`
	Paths   serde.PatternList     `json:"paths" yaml:"paths"`
	Labels  serde.PatternMap      `json:"labels" yaml:"labels"`
}

func exampleFilter() filter {
	return filter{
		Name:  "web",
		Match: serde.Pattern{Value: regexp.MustCompile(`^web-\d+$`)},
		Paths: serde.PatternList{Value: []*regexp.Regexp{
			regexp.MustCompile(`^/api/v\d+/`),
			regexp.MustCompile(`\.json$`),
		}},
		Labels: serde.PatternMap{Value: map[string]*regexp.Regexp{
			"tier": regexp.MustCompile("^(frontend|backend)$"),
		}},
	}
}

func assertFilter(t *testing.T, want, got filter) {
	t.Helper()
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Match.Get().String(), got.Match.Get().String())
	if want.Exclude.Value == nil {
		assert.Nil(t, got.Exclude.Value)
	} else {
		require.NotNil(t, got.Exclude.Value)
		assert.Equal(t, want.Exclude.Value.String(), got.Exclude.Value.String())
	}
	require.Len(t, got.Paths.Value, len(want.Paths.Value))
	for i := range want.Paths.Value {
		assert.Equal(t, want.Paths.Value[i].String(), got.Paths.Value[i].String())
	}
	require.Len(t, got.Labels.Value, len(want.Labels.Value))
	for k, p := range want.Labels.Value {
		require.Contains(t, got.Labels.Value, k)
		assert.Equal(t, p.String(), got.Labels.Value[k].String())
	}
}

func TestSerde_JSON(t *testing.T) {
	f := exampleFilter()

	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "web",
		"match": "^web-\\d+$",
		"exclude": null,
		"paths": ["^/api/v\\d+/", "\\.json$"],
		"labels": {"tier": "^(frontend|backend)$"}
	}`, string(data))

	var got filter
	require.NoError(t, json.Unmarshal(data, &got))
	assertFilter(t, f, got)
	assert.True(t, got.Match.Get().MatchString("web-12"))
}

func TestSerde_JSONWithExclude(t *testing.T) {
	f := exampleFilter()
	f.Exclude = serde.OptionalPattern{Value: regexp.MustCompile("^web-0$")}

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var got filter
	require.NoError(t, json.Unmarshal(data, &got))
	assertFilter(t, f, got)
}

func TestSerde_JSONInvalidPattern(t *testing.T) {
	doc := `{"name": "web", "match": "a", "paths": ["ok", "(["], "labels": {}}`

	var got filter
	err := json.Unmarshal([]byte(doc), &got)
	require.Error(t, err)

	var cerr *codec.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "([", cerr.Source)
	assert.Contains(t, err.Error(), `"(["`)
	assert.Nil(t, got.Paths.Value, "a failed field is left untouched")
}

func TestSerde_YAML(t *testing.T) {
	f := exampleFilter()
	f.Exclude = serde.OptionalPattern{Value: regexp.MustCompile("^web-0$")}

	data, err := yaml.Marshal(f)
	require.NoError(t, err)

	var got filter
	require.NoError(t, yaml.UnmarshalStrict(data, &got))
	assertFilter(t, f, got)
}

func TestSerde_YAMLv3(t *testing.T) {
	const doc = `
name: web
match: '^web-\d+$'
exclude: null
paths:
  - '^/api/v\d+/'
  - '\.json$'
labels:
  tier: '^(frontend|backend)$'
`
	var got filter
	require.NoError(t, yamlv3.Unmarshal([]byte(doc), &got))
	assertFilter(t, exampleFilter(), got)

	data, err := yamlv3.Marshal(got)
	require.NoError(t, err)

	var again filter
	require.NoError(t, yamlv3.Unmarshal(data, &again))
	assertFilter(t, got, again)
}

type endpoint struct {
	Status serde.Pattern     `yaml:"status"`
	Host   serde.Pattern     `yaml:"host"`
	Flags  serde.PatternList `yaml:"flags"`
	Codes  serde.PatternMap  `yaml:"codes"`
}

func TestSerde_YAMLUnquotedScalars(t *testing.T) {
	const doc = `
status: 200
host: 1.10
flags: [yes, 'no', 3]
codes:
  ok: 2\d\d
  404: 4\d\d
`
	testCases := []struct {
		name      string
		unmarshal func([]byte, interface{}) error
	}{
		{name: "yaml.v2", unmarshal: yaml.Unmarshal},
		{name: "yaml.v3", unmarshal: yamlv3.Unmarshal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got endpoint
			require.NoError(t, tc.unmarshal([]byte(doc), &got))
			assert.Equal(t, "200", got.Status.Get().String())
			assert.Equal(t, "1.10", got.Host.Get().String())
			assert.True(t, got.Host.Get().MatchString("1x10"))
			require.Len(t, got.Flags.Value, 3)
			assert.Equal(t, "yes", got.Flags.Value[0].String())
			assert.Equal(t, "no", got.Flags.Value[1].String())
			assert.Equal(t, "3", got.Flags.Value[2].String())
			require.Len(t, got.Codes.Value, 2)
			assert.Equal(t, `2\d\d`, got.Codes.Value["ok"].String())
			assert.Equal(t, `4\d\d`, got.Codes.Value["404"].String())
		})
	}
}

func TestSerde_Gob(t *testing.T) {
	f := exampleFilter()

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(f.Paths))

	var got serde.PatternList
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	require.Len(t, got.Value, 2)
	assert.Equal(t, `^/api/v\d+/`, got.Value[0].String())
	assert.Equal(t, `\.json$`, got.Value[1].String())
}

func TestSerde_EmptyContainers(t *testing.T) {
	data, err := json.Marshal(serde.PatternList{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var list serde.PatternList
	require.NoError(t, json.Unmarshal(data, &list))
	assert.NotNil(t, list.Value)
	assert.Empty(t, list.Value)

	data, err = json.Marshal(serde.PatternMap{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSerde_NilPattern(t *testing.T) {
	_, err := json.Marshal(serde.Pattern{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, codec.ErrNilPattern))
}

// coregexList is a caller-defined shape for a different engine.
type coregexList struct{}

func (coregexList) Codec() codec.Codec[[]*coregex.Regex] {
	return codec.Sequence(codec.Scalar[*coregex.Regex](engine.Coregex{}))
}

func TestSerde_CustomShape(t *testing.T) {
	var list serde.Serde[[]*coregex.Regex, coregexList]
	require.NoError(t, json.Unmarshal([]byte(`["[0-9]+", "abc"]`), &list))
	require.Len(t, list.Get(), 2)
	assert.True(t, list.Get()[0].MatchString("x42"))

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Equal(t, `["[0-9]+","abc"]`, string(data))
}
