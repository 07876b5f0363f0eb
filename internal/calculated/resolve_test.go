// File: internal/calculated/resolve_test.go
package calculated

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/scientist-cli/internal/question"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

// questionTree is a hand-built parse of
// "What is the <requested> of the vector?".
func questionTree(requested string) *sentence.Node {
	return &sentence.Node{Text: "is", CoarseTag: "VERB", FineTag: "ROOT", Nodes: []*sentence.Node{
		{Text: "What", CoarseTag: "PRON", FineTag: "attr"},
		{Text: requested, CoarseTag: "NOUN", FineTag: "nsubj", Nodes: []*sentence.Node{
			{Text: "the", CoarseTag: "DET", FineTag: "det"},
			{Text: "of", CoarseTag: "ADP", FineTag: "prep", Nodes: []*sentence.Node{
				{Text: "vector", CoarseTag: "NOUN", FineTag: "pobj"},
			}},
		}},
	}}
}

var (
	givenLookup     = question.Descriptor{Coarse: strp("NOUN"), Fine: strp("pobj")}
	requestedLookup = question.Descriptor{Coarse: strp("NOUN"), Fine: strp("nsubj"), CCoarse: strp("ADP")}
)

func TestResolveLookup(t *testing.T) {
	r := NewResolver(nil)

	t.Run("should take the first matching word", func(t *testing.T) {
		given, ok := r.ResolveGiven("What is the angle of the vector?", questionTree("angle"), givenLookup)
		assert.True(t, ok)
		assert.Equal(t, "vector", given)

		requested, ok := r.ResolveRequested("What is the angle of the vector?", questionTree("angle"), requestedLookup)
		assert.True(t, ok)
		assert.Equal(t, "angle", requested)
	})

	t.Run("should fail softly when nothing matches", func(t *testing.T) {
		_, ok := r.ResolveGiven("?", questionTree("angle"), question.Descriptor{Coarse: strp("VERB"), Fine: strp("pobj")})
		assert.False(t, ok)

		_, ok = r.ResolveRequested("?", questionTree("angle"), question.Descriptor{Coarse: strp("NOUN"), Fine: strp("nsubj"), CCoarse: strp("VERB")})
		assert.False(t, ok)

		_, ok = r.ResolveGiven("?", nil, givenLookup)
		assert.False(t, ok)
	})

	t.Run("should ignore ccoarse for the given object", func(t *testing.T) {
		d := question.Descriptor{Coarse: strp("NOUN"), Fine: strp("pobj"), CCoarse: strp("VERB")}
		given, ok := r.ResolveGiven("?", questionTree("angle"), d)
		assert.True(t, ok)
		assert.Equal(t, "vector", given)
	})
}

func TestResolveRegexGroup(t *testing.T) {
	r := NewResolver(regexp.MustCompile(`what is the (angle|magnitude|x|y) of the (vector)`))

	given, ok := r.ResolveGiven("What is the ANGLE of the Vector?", nil, question.Descriptor{RegexGroup: intp(1)})
	assert.True(t, ok)
	assert.Equal(t, "vector", given)

	requested, ok := r.ResolveRequested("What is the angle of the vector?", nil, question.Descriptor{RegexGroup: intp(0)})
	assert.True(t, ok)
	assert.Equal(t, "angle", requested)

	_, ok = r.ResolveGiven("How far is it?", nil, question.Descriptor{RegexGroup: intp(1)})
	assert.False(t, ok, "no match is not an error")

	_, ok = r.ResolveGiven("What is the angle of the vector?", nil, question.Descriptor{RegexGroup: intp(5)})
	assert.False(t, ok, "missing group is not an error")

	single := NewResolver(regexp.MustCompile(`the (vector)`))
	given, ok = single.ResolveGiven("Find the vector.", nil, question.Descriptor{RegexGroup: intp(0)})
	assert.True(t, ok)
	assert.Equal(t, "vector", given)
}

func TestDisambiguateMagnitude(t *testing.T) {
	tests := map[string]ValueKind{
		"What is the magnitude of the horizontal component of the vector?": ValueX,
		"What is the magnitude of the vertical component of the vector?":   ValueY,
		"What is the magnitude of the vector?":                             ValueMagnitude,
		"The horizontal component is 3. What is the magnitude?":            ValueMagnitude,
		"Find the Magnitude of its Vertical Component.":                    ValueY,
	}
	for q, want := range tests {
		assert.Equal(t, want, DisambiguateMagnitude(q), q)
	}
}

func TestResolveRequestedDisambiguates(t *testing.T) {
	r := NewResolver(regexp.MustCompile(`the (magnitude)`))
	q := "What is the magnitude of the horizontal component of the vector?"

	got, ok := r.ResolveRequested(q, questionTree("magnitude"), requestedLookup)
	assert.True(t, ok)
	assert.Equal(t, "x", got)

	got, ok = r.ResolveRequested(q, nil, question.Descriptor{RegexGroup: intp(0)})
	assert.True(t, ok)
	assert.Equal(t, "x", got)
}
