// Package model provides the estimator state machinery, the coefficient
// hand-off contract, and gob persistence shared by the binning, encoding,
// and scoring packages.
package model

import (
	"sync"

	"github.com/YuminosukeSato/scorego/pkg/errors"
)

// StateManager manages the fitted state of a component in a thread-safe
// manner. Scorecards are built once and then applied concurrently, so their
// state is guarded here rather than by BaseEstimator. The fields are public
// so the state survives gob encoding.
type StateManager struct {
	Fitted bool
	mu     sync.RWMutex

	// NFeatures and NRows record the build-time shape: the number of
	// dictionary features and the number of rows the coefficients were
	// fitted on (0 when unknown, e.g. externally fitted models).
	NFeatures int
	NRows     int
}

// NewStateManager creates a StateManager in the unfitted state.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the component has been built.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the component as built.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
}

// Reset clears the fitted state and the recorded dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NFeatures = 0
	s.NRows = 0
}

// SetDimensions records the build-time shape.
func (s *StateManager) SetDimensions(nFeatures, nRows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NFeatures = nFeatures
	s.NRows = nRows
}

// GetDimensions returns the recorded build-time shape.
func (s *StateManager) GetDimensions() (nFeatures, nRows int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NRows
}

// RequireFitted returns a NotFittedError naming the component and the
// method that was called too early, or nil when the component is built.
func (s *StateManager) RequireFitted(component, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(component, method)
	}
	return nil
}
