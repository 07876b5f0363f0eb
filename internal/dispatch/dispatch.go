// File: internal/dispatch/dispatch.go
package dispatch

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scientist-cli/internal/calculated"
	"github.com/xkilldash9x/scientist-cli/internal/sentence"
)

var (
	// ErrUnanswered is returned when no answerer claims a question.
	ErrUnanswered = errors.New("no model could answer the question")
	// ErrNoTemplates is returned when a dispatcher would start with no models.
	ErrNoTemplates = errors.New("no question templates configured")
)

// Answerer is one question model. ok is false when the model does not apply,
// which is not an error.
type Answerer interface {
	Name() string
	Answer(question string, root sentence.Element) (answer string, ok bool, err error)
}

// Result is the outcome of dispatching one question.
type Result struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer,omitempty" yaml:"answer,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty"`
	Err      error  `json:"-" yaml:"-"`
}

// Dispatcher offers each question to its answerers in order.
type Dispatcher struct {
	answerers []Answerer
	logger    *zap.Logger
}

// New builds a dispatcher over answerers, tried in the given order.
func New(logger *zap.Logger, answerers ...Answerer) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{answerers: answerers, logger: logger.Named("dispatch")}
}

// Answerers lists the registered answerers.
func (d *Dispatcher) Answerers() []Answerer {
	return append([]Answerer(nil), d.answerers...)
}

// Answer returns the first answer any answerer gives. An answerer that fails
// stops the search; the error names the answerer.
func (d *Dispatcher) Answer(question string, root sentence.Element) (Result, error) {
	res := Result{Question: question}
	for _, a := range d.answerers {
		answer, ok, err := a.Answer(question, root)
		if err != nil {
			d.logger.Warn("Answerer failed.", zap.String("answerer", a.Name()), zap.Error(err))
			return res, fmt.Errorf("answerer %s: %w", a.Name(), err)
		}
		if !ok {
			continue
		}
		d.logger.Debug("Question answered.", zap.String("answerer", a.Name()), zap.String("answer", answer))
		res.Answer, res.Model = answer, a.Name()
		return res, nil
	}
	return res, ErrUnanswered
}

// LoadModels builds one calculated-value model per template name.
func LoadModels(dir string, names []string, logger *zap.Logger) ([]Answerer, error) {
	if len(names) == 0 {
		return nil, ErrNoTemplates
	}
	out := make([]Answerer, 0, len(names))
	for _, name := range names {
		m, err := calculated.Load(dir, name, logger)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
