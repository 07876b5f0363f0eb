// File: internal/trend/trend.go
package trend

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/calculated"
	"github.com/xkilldash9x/scientist-cli/internal/physics"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

// DefaultSamples is how many evenly spaced points of the interval are evaluated.
const DefaultSamples = 10

// Answers returned by the analyzer.
const (
	Increases = "increases"
	Decreases = "decreases"
	Constant  = "stays the same"
)

var (
	trendRegex    = regexp.MustCompile(`(?i)^as\b.+\b(increases|decreases)\b.+`)
	intervalRegex = regexp.MustCompile(`from (\d+(?:\.\d+)?)\s?\w* to (\d+(?:\.\d+)?)\s?\w*`)

	// ErrNoInterval marks a trend question without a "from A to B" range.
	ErrNoInterval = errors.New("trend question has no interval")
)

// VectorFactory builds the vector described by question with the varying
// attribute set to value. Angles are passed in radians.
type VectorFactory func(question string, varying physics.Attribute, value float64) (physics.Vector, error)

// Request is a parsed trend question.
type Request struct {
	Varying  physics.Attribute
	Observed physics.Attribute
	From, To float64
}

// Analyzer answers "As X increases from A to B, what happens to Y?" questions
// by sampling Y over the interval.
type Analyzer struct {
	factory VectorFactory
	samples int
	logger  *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithFactory replaces the vector factory.
func WithFactory(f VectorFactory) Option {
	return func(a *Analyzer) { a.factory = f }
}

// WithSamples sets the number of sample points; values below 2 are ignored.
func WithSamples(n int) Option {
	return func(a *Analyzer) {
		if n >= 2 {
			a.samples = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAnalyzer builds an analyzer that, by default, builds vectors from the
// values stated in the question.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{factory: QuestionVector, samples: DefaultSamples, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.Named("trend")
	return a
}

// Name identifies the analyzer in dispatch listings.
func (a *Analyzer) Name() string { return "trend" }

// Parse recognises a trend question. ok is false for any other question; err
// is set when the question looks like a trend question but is incomplete.
func (a *Analyzer) Parse(q string, root sentence.Element) (req Request, ok bool, err error) {
	if !trendRegex.MatchString(q) || root == nil {
		return Request{}, false, nil
	}

	m := intervalRegex.FindStringSubmatch(q)
	if m == nil {
		return Request{}, false, ErrNoInterval
	}
	from, _ := strconv.ParseFloat(m[1], 64)
	to, _ := strconv.ParseFloat(m[2], 64)

	varying, ok := varyingAttribute(root)
	if !ok {
		return Request{}, false, nil
	}
	observed, ok := observedAttribute(q, root)
	if !ok {
		return Request{}, false, nil
	}
	return Request{Varying: varying, Observed: observed, From: from, To: to}, true, nil
}

// Answer parses q and reports whether the observed quantity increases or
// decreases over the interval.
func (a *Analyzer) Answer(q string, root sentence.Element) (string, bool, error) {
	req, ok, err := a.Parse(q, root)
	if err != nil || !ok {
		return "", false, err
	}
	answer, err := a.Evaluate(q, req)
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// Evaluate samples req over its interval.
func (a *Analyzer) Evaluate(q string, req Request) (string, error) {
	results := make([]float64, 0, a.samples)
	step := (req.To - req.From) / float64(a.samples-1)
	for i := 0; i < a.samples; i++ {
		x := req.From + step*float64(i)
		if req.Varying == physics.AttrTheta {
			x = physics.Radians(x)
		}
		v, err := a.factory(q, req.Varying, x)
		if err != nil {
			return "", fmt.Errorf("failed to build vector at %s=%g: %w", req.Varying, x, err)
		}
		y, _ := v.Get(req.Observed)
		results = append(results, y)
	}

	first, last := results[0], results[len(results)-1]
	a.logger.Debug("Trend sampled.",
		zap.String("varying", string(req.Varying)),
		zap.String("observed", string(req.Observed)),
		zap.Float64("first", first),
		zap.Float64("last", last))

	switch diff := last - first; {
	case math.Abs(diff) < 1e-9:
		return Constant, nil
	case diff > 0:
		return Increases, nil
	}
	return Decreases, nil
}

// QuestionVector is the default factory: it extracts the values stated in the
// question and pairs the varying attribute with the first stated attribute
// that, together with it, determines a vector.
func QuestionVector(q string, varying physics.Attribute, value float64) (physics.Vector, error) {
	values := calculated.Extract(q)
	stated := map[physics.Attribute]float64{}
	if ids := values.IDs(); len(ids) > 0 {
		var err error
		if stated, err = values.Floats(ids[0]); err != nil {
			return physics.Vector{}, err
		}
	}

	for _, other := range []physics.Attribute{physics.AttrR, physics.AttrTheta, physics.AttrX, physics.AttrY} {
		if other == varying {
			continue
		}
		ov, ok := stated[other]
		if !ok {
			continue
		}
		v, err := physics.FromAttributes(map[physics.Attribute]float64{varying: value, other: ov})
		if err == nil {
			return v, nil
		}
	}
	return physics.Vector{}, fmt.Errorf("no stated value pairs with %s: %w", varying, physics.ErrUnderdetermined)
}

// varyingAttribute reads the quantity being changed: the root's first child,
// or the nominal subject inside it.
func varyingAttribute(root sentence.Element) (physics.Attribute, bool) {
	children := root.Children()
	if len(children) == 0 {
		return "", false
	}
	if attr, ok := wordAttribute(children[0].Word(), ""); ok {
		return attr, true
	}
	for _, e := range children[0].FindElements(sentence.Query{Fine: sentence.FineNominalSubject}) {
		if attr, ok := wordAttribute(e.Word(), ""); ok {
			return attr, true
		}
	}
	return "", false
}

func observedAttribute(q string, root sentence.Element) (physics.Attribute, bool) {
	found := root.FindElements(sentence.Query{Fine: sentence.FineAppositionalModifier})
	if len(found) == 0 {
		return "", false
	}
	return wordAttribute(found[0].Word(), q)
}

func wordAttribute(word, q string) (physics.Attribute, bool) {
	word = strings.ToLower(word)
	var kind calculated.ValueKind
	if word == "magnitude" {
		kind = calculated.DisambiguateMagnitude(q)
	} else {
		k, ok := calculated.ParseValueKind(word)
		if !ok {
			return "", false
		}
		kind = k
	}
	return kind.Attribute()
}
