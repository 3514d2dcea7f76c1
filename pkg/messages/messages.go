package messages

import "log/slog"

// Message is a single user-visible message. The set of implementations is
// closed: only types in this package satisfy it.
type Message interface {
	// Level is the severity the message is reported at.
	Level() slog.Level
	isMessage()
}

// Fielder is implemented by messages that carry structured data worth
// attaching to a log record in addition to the rendered text.
type Fielder interface {
	Fields() []any
}

type debugLevel struct{}

func (debugLevel) Level() slog.Level { return slog.LevelDebug }
func (debugLevel) isMessage()        {}

type infoLevel struct{}

func (infoLevel) Level() slog.Level { return slog.LevelInfo }
func (infoLevel) isMessage()        {}

type warnLevel struct{}

func (warnLevel) Level() slog.Level { return slog.LevelWarn }
func (warnLevel) isMessage()        {}

type errorLevel struct{}

func (errorLevel) Level() slog.Level { return slog.LevelError }
func (errorLevel) isMessage()        {}

// --- Runtime configuration ---

// RuntimeConfigLoaded reports that handler states were restored from storage.
type RuntimeConfigLoaded struct {
	infoLevel
	States map[string]bool
}

func (m RuntimeConfigLoaded) Fields() []any { return []any{"config", m.States} }

// StorageParseFailed reports that the persisted document could not be parsed
// and code defaults are used instead.
type StorageParseFailed struct {
	warnLevel
	Err error
}

func (m StorageParseFailed) Fields() []any { return []any{"error", m.Err} }

// StorageReadOnly reports that the resolved state could not be written back
// because storage refuses writes. The controller keeps running from memory.
type StorageReadOnly struct {
	warnLevel
	Err error
}

func (m StorageReadOnly) Fields() []any { return []any{"error", m.Err} }

// RuntimeConfigFromCode reports that handler states were seeded from the
// registry defaults because storage held nothing.
type RuntimeConfigFromCode struct {
	infoLevel
	States map[string]bool
}

func (m RuntimeConfigFromCode) Fields() []any { return []any{"config", m.States} }

// ChangeBeforeInit is reported when a state change is attempted before the
// runtime configuration exists.
type ChangeBeforeInit struct{ warnLevel }

// HandlersBeforeInit is reported when the active set is requested before the
// runtime configuration exists.
type HandlersBeforeInit struct{ warnLevel }

// UnknownHandlerChange is reported when a state write targets an ID that is
// not registered.
type UnknownHandlerChange struct {
	warnLevel
	ID string
}

func (m UnknownHandlerChange) Fields() []any { return []any{"handler", m.ID} }

// --- Worker lifecycle ---

// WorkerAlreadyStarted is reported when Start is called on a running worker.
type WorkerAlreadyStarted struct{ infoLevel }

// NoActiveHandlers is reported when Start finds nothing enabled.
type NoActiveHandlers struct{ infoLevel }

// EnableHandlersHint tells the operator how to turn handlers back on.
type EnableHandlersHint struct{ infoLevel }

// WorkerStarted reports a successful worker start.
type WorkerStarted struct {
	infoLevel
	Count    int
	WorkerID string
}

func (m WorkerStarted) Fields() []any { return []any{"count", m.Count, "worker", m.WorkerID} }

// WorkerStartFailed reports that the engine refused to start.
type WorkerStartFailed struct {
	errorLevel
	Err error
}

func (m WorkerStartFailed) Fields() []any { return []any{"error", m.Err} }

// WorkerStopped reports that the running worker was stopped.
type WorkerStopped struct {
	infoLevel
	WorkerID string
}

func (m WorkerStopped) Fields() []any { return []any{"worker", m.WorkerID} }

// WorkerStopFailed reports an error returned while stopping the worker. The
// worker reference is released regardless.
type WorkerStopFailed struct {
	errorLevel
	Err error
}

func (m WorkerStopFailed) Fields() []any { return []any{"error", m.Err} }

// WorkerReinitializing marks the start of a stop/start cycle.
type WorkerReinitializing struct{ infoLevel }

// WorkerReinitialized reports that the worker is running after a cycle.
type WorkerReinitialized struct{ infoLevel }

// WorkerNotStartedAfterReinit reports that the worker is not running after a
// cycle, usually because nothing is enabled.
type WorkerNotStartedAfterReinit struct{ infoLevel }

// StateChangeBroadcast reports the state-changed notification fan-out.
type StateChangeBroadcast struct {
	debugLevel
	Subscribers int
}

func (m StateChangeBroadcast) Fields() []any { return []any{"subscribers", m.Subscribers} }

// WorkerRunningStatus reports whether the worker is running.
type WorkerRunningStatus struct {
	infoLevel
	Running bool
}

// --- Handler and group operations ---

// HandlerNotFound is reported when a console operation names an unknown handler.
type HandlerNotFound struct {
	warnLevel
	ID string
}

func (m HandlerNotFound) Fields() []any { return []any{"handler", m.ID} }

// HandlerEnabled reports that a handler was switched on.
type HandlerEnabled struct {
	infoLevel
	ID          string
	Description string
}

func (m HandlerEnabled) Fields() []any { return []any{"handler", m.ID} }

// HandlerDisabled reports that a handler was switched off.
type HandlerDisabled struct {
	infoLevel
	ID          string
	Description string
}

func (m HandlerDisabled) Fields() []any { return []any{"handler", m.ID} }

// ReinitComplete closes a single-handler toggle.
type ReinitComplete struct{ infoLevel }

// HandlerStatus describes one handler's current state.
type HandlerStatus struct {
	infoLevel
	ID          string
	Description string
	Enabled     bool
}

// HandlerListHeader heads the handler table.
type HandlerListHeader struct{ infoLevel }

// NoHandlersToShow replaces the handler table when the registry is empty.
type NoHandlersToShow struct{ infoLevel }

// GroupNotFound is reported when a console operation names an unknown group.
type GroupNotFound struct {
	warnLevel
	Group string
}

func (m GroupNotFound) Fields() []any { return []any{"group", m.Group} }

// EnablingGroup marks the start of a group enable.
type EnablingGroup struct {
	infoLevel
	Group string
}

// GroupEnabled reports a completed group enable.
type GroupEnabled struct {
	infoLevel
	Group string
}

// DisablingGroup marks the start of a group disable.
type DisablingGroup struct {
	infoLevel
	Group string
}

// GroupDisabled reports a completed group disable.
type GroupDisabled struct {
	infoLevel
	Group string
}

// EnablingAll marks the start of an enable-all.
type EnablingAll struct{ infoLevel }

// AllEnabled reports a completed enable-all.
type AllEnabled struct{ infoLevel }

// DisablingAll marks the start of a disable-all.
type DisablingAll struct{ infoLevel }

// AllDisabled reports a completed disable-all.
type AllDisabled struct{ infoLevel }

// --- Configuration snapshots ---

// CurrentConfig accompanies a snapshot of the in-memory states.
type CurrentConfig struct {
	infoLevel
	States map[string]bool
}

func (m CurrentConfig) Fields() []any { return []any{"config", m.States} }

// ConfigSaved reports that the in-memory states were written to storage.
type ConfigSaved struct {
	infoLevel
	States map[string]bool
}

func (m ConfigSaved) Fields() []any { return []any{"config", m.States} }

// LoadingConfig marks the start of a reload from storage.
type LoadingConfig struct{ infoLevel }

// ConfigLoaded reports a completed reload from storage.
type ConfigLoaded struct{ infoLevel }

// ResettingConfig marks the start of a reset to registry defaults.
type ResettingConfig struct{ infoLevel }

// ConfigReset reports a completed reset to registry defaults.
type ConfigReset struct {
	infoLevel
	States map[string]bool
}

func (m ConfigReset) Fields() []any { return []any{"config", m.States} }

// ApplyingConfig marks the start of a bulk state update.
type ApplyingConfig struct {
	infoLevel
	Count int
}

func (m ApplyingConfig) Fields() []any { return []any{"count", m.Count} }

// ConfigApplied reports a completed bulk state update.
type ConfigApplied struct{ infoLevel }

// --- Console ---

// ControllerReady tells the operator how to reach the help text.
type ControllerReady struct{ infoLevel }

// UnknownCommand is reported by the console for unrecognised input.
type UnknownCommand struct {
	warnLevel
	Command string
}

// MissingArgument is reported by the console when a command needs an argument.
type MissingArgument struct {
	warnLevel
	Command  string
	Argument string
}
