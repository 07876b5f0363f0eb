// File: internal/calculated/model.go
package calculated

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/question"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

// Model answers questions that ask for one value calculated from the values
// given in the question, e.g. the angle of a vector given its components.
//
// A Model is built once from a template and keeps no per-question state, so a
// single instance can serve concurrent callers.
type Model struct {
	gate     question.Gate
	template *question.Template
	resolver Resolver
	logger   *zap.Logger
}

// Load reads the named template from dir and builds a model from it.
func Load(dir, name string, logger *zap.Logger) (*Model, error) {
	tpl, err := question.LoadTemplate(dir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load calculated value model: %w", err)
	}
	return New(tpl, logger), nil
}

// New builds a model from an already validated template.
func New(tpl *question.Template, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		gate:     question.NewBase(tpl),
		template: tpl,
		resolver: NewResolver(tpl.Pattern()),
		logger:   logger.Named("calculated").With(zap.String("model", tpl.Name)),
	}
}

// Name is the template name.
func (m *Model) Name() string { return m.template.Name }

// Template exposes the template the model was built from.
func (m *Model) Template() *question.Template { return m.template }

// Classify resolves the given object and requested value of q.
func (m *Model) Classify(q string, root sentence.Element) (Classification, bool) {
	if !m.gate.Matches(q, root) {
		return Classification{}, false
	}

	given, ok := m.resolver.ResolveGiven(q, root, *m.template.GivenObject)
	if !ok {
		m.logger.Debug("No given object found.")
		return Classification{}, false
	}
	requested, ok := m.resolver.ResolveRequested(q, root, *m.template.RequestedValue)
	if !ok {
		m.logger.Debug("No requested value found.", zap.String("given_object", given))
		return Classification{}, false
	}

	kind := ValueKind(strings.ToLower(requested))
	if k, ok := ParseValueKind(string(kind)); ok {
		kind = k
	}
	cls := Classification{
		GivenObject:    ObjectKind(strings.ToLower(given)),
		RequestedValue: kind,
	}
	m.logger.Debug("Question classified.",
		zap.String("given_object", string(cls.GivenObject)),
		zap.String("requested_value", string(cls.RequestedValue)))
	return cls, true
}

// Matches reports whether the model claims q.
func (m *Model) Matches(q string, root sentence.Element) bool {
	_, ok := m.Classify(q, root)
	return ok
}

// SolveClassified extracts the given values of q and answers cls.
func (m *Model) SolveClassified(q string, cls Classification) (string, bool, error) {
	if !cls.Complete() {
		return "", false, nil
	}
	values := Extract(q)
	m.logger.Debug("Values extracted.", zap.Any("values", values.Map()))

	answer, ok, err := SolveValues(cls, values)
	if err != nil {
		return "", false, fmt.Errorf("model %s: %w", m.Name(), err)
	}
	return answer, ok, nil
}

// Solve classifies q and answers it. ok is false when the model cannot answer.
func (m *Model) Solve(q string, root sentence.Element) (string, bool, error) {
	cls, ok := m.Classify(q, root)
	if !ok {
		return "", false, nil
	}
	return m.SolveClassified(q, cls)
}

// Answer satisfies the dispatcher contract.
func (m *Model) Answer(q string, root sentence.Element) (string, bool, error) {
	return m.Solve(q, root)
}
