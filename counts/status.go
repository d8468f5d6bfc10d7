package counts

// OpClass identifies a class of tracked operations. LoadOrStore is the
// derived union class: it is busy whenever Load or Store is busy and is
// never updated independently.
type OpClass string

const (
	Load        OpClass = "load"
	Store       OpClass = "store"
	Compute     OpClass = "compute"
	LoadOrStore OpClass = "load_or_store"
)

// Stage names a phase of a simulation run. StageFinished is terminal.
type Stage string

const (
	StageA        Stage = "A"
	StageB        Stage = "B"
	StageC        Stage = "C"
	StageD        Stage = "D"
	StageE        Stage = "E"
	StageF        Stage = "F"
	StageFinished Stage = "Finished"
)

// ValidStage reports whether s is one of the known run stages.
func ValidStage(s Stage) bool {
	switch s {
	case StageA, StageB, StageC, StageD, StageE, StageF, StageFinished:
		return true
	}
	return false
}

// Status records which side of the busy/idle boundary a class is on and
// the cycle at which the current interval started. The zero value is
// idle since cycle 0, the initial state of every class.
type Status struct {
	Busy  bool   `json:"busy"`
	Since uint64 `json:"since"`
}

// idleSince and busySince build the two variants of Status.
func idleSince(cycle uint64) Status { return Status{Since: cycle} }
func busySince(cycle uint64) Status { return Status{Busy: true, Since: cycle} }

// StatusSet holds the current Status of every class. The Computes entry
// exists for report parity but never leaves its initial idle state:
// compute operations are counted without busy/idle tracking.
type StatusSet struct {
	Loads        Status `json:"loads"`
	Stores       Status `json:"stores"`
	Computes     Status `json:"computes"`
	LoadOrStores Status `json:"load_or_stores"`
}

func (s *StatusSet) of(class OpClass) *Status {
	switch class {
	case Load:
		return &s.Loads
	case Store:
		return &s.Stores
	case Compute:
		return &s.Computes
	default:
		return &s.LoadOrStores
	}
}
