package counts

// EventKind discriminates the entries of the event log. MemStart and
// MemEnd carry the operation class they refer to; the others do not.
type EventKind string

const (
	EventMemStart    EventKind = "mem_start"
	EventMemEnd      EventKind = "mem_end"
	EventStageStart  EventKind = "stage_start"
	EventStageEnd    EventKind = "stage_end"
	EventNpuStart    EventKind = "npu_start"
	EventPimStart    EventKind = "pim_start"
	EventNpuFinished EventKind = "npu_finished"
	EventPimFinished EventKind = "pim_finished"
)

// Event is one immutable entry of the event log: something happened at a
// cycle, during a stage. Class is set only for MemStart/MemEnd events.
// Events are appended in call order and never mutated or removed.
type Event struct {
	Cycle uint64    `json:"cycle"`
	Stage Stage     `json:"stage"`
	Kind  EventKind `json:"kind"`
	Class OpClass   `json:"class,omitempty"`
}
