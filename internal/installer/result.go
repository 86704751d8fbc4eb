package installer

import "encoding/json"

// State is a phase of the installation state machine.
type State int

const (
	StateValidating State = iota
	StateMandatorySetup
	StateOptionalFeatures
	StateFinalizing
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateMandatorySetup:
		return "mandatory-setup"
	case StateOptionalFeatures:
		return "optional-features"
	case StateFinalizing:
		return "finalizing"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StepStatus is the outcome of one step.
type StepStatus string

const (
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepWarning StepStatus = "warning"
	StepFailed  StepStatus = "failed"
)

// StepReport describes one executed step.
type StepReport struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Detail string     `json:"detail,omitempty"`
}

// FeatureStatus is the outcome of one optional feature.
type FeatureStatus string

const (
	FeatureDeclined  FeatureStatus = "declined"
	FeatureInstalled FeatureStatus = "installed"
	FeatureFailed    FeatureStatus = "failed"
)

// FeatureReport describes one optional feature.
type FeatureReport struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Selected bool          `json:"selected"`
	Status   FeatureStatus `json:"status"`
	Files    []string      `json:"files,omitempty"`
	Err      error         `json:"-"`
}

// MarshalJSON includes the error message.
func (r FeatureReport) MarshalJSON() ([]byte, error) {
	type plain FeatureReport
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Result is the terminal report of a run.
type Result struct {
	State    State           `json:"state"`
	Steps    []StepReport    `json:"steps"`
	Features []FeatureReport `json:"features"`
	Warnings []string        `json:"warnings"`
	Err      error           `json:"-"`
}

// MarshalJSON includes the abort cause.
func (r *Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		*plain
		Error string `json:"error,omitempty"`
	}{plain: (*plain)(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

// Step returns the report of the named step.
func (r *Result) Step(name string) (StepReport, bool) {
	for _, s := range r.Steps {
		if s.Name == name {
			return s, true
		}
	}
	return StepReport{}, false
}

// Feature returns the report of the feature with key.
func (r *Result) Feature(key string) (FeatureReport, bool) {
	for _, f := range r.Features {
		if f.Key == key {
			return f, true
		}
	}
	return FeatureReport{}, false
}

// Installed returns the keys of the installed features.
func (r *Result) Installed() []string {
	var keys []string
	for _, f := range r.Features {
		if f.Status == FeatureInstalled {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

func (r *Result) addStep(name string, status StepStatus, detail string) {
	r.Steps = append(r.Steps, StepReport{Name: name, Status: status, Detail: detail})
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
