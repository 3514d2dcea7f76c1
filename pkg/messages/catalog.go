package messages

import "fmt"

// Catalog renders messages for one locale.
type Catalog interface {
	// Locale is the locale the catalog renders.
	Locale() Locale
	// Format renders m. It is defined for every Message.
	Format(m Message) string
	// Help returns the console usage text, one line per entry.
	Help() []string
}

// CatalogFor returns the catalog for l. The silent locale uses the default
// catalog; suppression is the reporter's job.
func CatalogFor(l Locale) Catalog {
	if l == English {
		return english{}
	}
	return korean{}
}

// StatusLabel is the fixed-width ON/OFF marker used in listings.
func StatusLabel(enabled bool) string {
	if enabled {
		return "ON "
	}
	return "OFF"
}

func onOff(enabled bool) string {
	if enabled {
		return "ON"
	}
	return "OFF"
}

const (
	controllerPrefix = "[mockswitch] "
	consolePrefix    = "[mockswitch console] "
)

type english struct{}

func (english) Locale() Locale { return English }

func (english) Format(m Message) string {
	switch m := m.(type) {
	case RuntimeConfigLoaded:
		return controllerPrefix + "Loaded runtime config from storage."
	case StorageParseFailed:
		return controllerPrefix + "Failed to parse stored config. Using code-level initial values."
	case StorageReadOnly:
		return controllerPrefix + "Storage is read-only. Handler states are kept in memory only."
	case RuntimeConfigFromCode:
		return controllerPrefix + "Initialized runtime config with code-level initial values."
	case ChangeBeforeInit:
		return controllerPrefix + "Cannot change settings before initialization."
	case HandlersBeforeInit:
		return controllerPrefix + "Cannot get handler list before initialization."
	case UnknownHandlerChange:
		return fmt.Sprintf(controllerPrefix+"Cannot change state of unknown handler ID '%s'.", m.ID)
	case WorkerAlreadyStarted:
		return controllerPrefix + "Worker is already started."
	case NoActiveHandlers:
		return controllerPrefix + "No active handlers. The mock worker will not be started."
	case EnableHandlersHint:
		return consolePrefix + "Enable handlers with 'enableHandler <id>' or 'enableAllHandlers'."
	case WorkerStarted:
		return fmt.Sprintf(controllerPrefix+"Worker started with %d active handlers.", m.Count)
	case WorkerStartFailed:
		return controllerPrefix + "Failed to start mock worker."
	case WorkerStopped:
		return controllerPrefix + "Worker has been stopped."
	case WorkerStopFailed:
		return controllerPrefix + "Worker did not stop cleanly."
	case WorkerReinitializing:
		return controllerPrefix + "Reinitializing worker..."
	case WorkerReinitialized:
		return controllerPrefix + "Worker reinitialized."
	case WorkerNotStartedAfterReinit:
		return controllerPrefix + "Worker not started after reinitialization (perhaps no active handlers)."
	case StateChangeBroadcast:
		return controllerPrefix + "Broadcasting state change."
	case WorkerRunningStatus:
		return fmt.Sprintf(consolePrefix+"Worker running status: %t", m.Running)
	case HandlerNotFound:
		return fmt.Sprintf(consolePrefix+"Handler ID '%s' not found.", m.ID)
	case HandlerEnabled:
		return fmt.Sprintf(consolePrefix+"Handler '%s' (ID: %s) enabled. Reinitializing...", m.Description, m.ID)
	case HandlerDisabled:
		return fmt.Sprintf(consolePrefix+"Handler '%s' (ID: %s) disabled. Reinitializing...", m.Description, m.ID)
	case ReinitComplete:
		return consolePrefix + "Reinitialization complete."
	case HandlerStatus:
		return fmt.Sprintf(consolePrefix+"Handler '%s' (ID: %s) status: %s", m.Description, m.ID, onOff(m.Enabled))
	case HandlerListHeader:
		return consolePrefix + "Available Handlers (ID | Status | Description)"
	case NoHandlersToShow:
		return "  (No handlers to display.)"
	case GroupNotFound:
		return fmt.Sprintf(consolePrefix+"Group '%s' not found.", m.Group)
	case EnablingGroup:
		return fmt.Sprintf(consolePrefix+"Enabling group %s...", m.Group)
	case GroupEnabled:
		return fmt.Sprintf(consolePrefix+"Group %s enabled.", m.Group)
	case DisablingGroup:
		return fmt.Sprintf(consolePrefix+"Disabling group %s...", m.Group)
	case GroupDisabled:
		return fmt.Sprintf(consolePrefix+"Group %s disabled.", m.Group)
	case EnablingAll:
		return consolePrefix + "Enabling all handlers..."
	case AllEnabled:
		return consolePrefix + "All handlers enabled and worker reinitialized."
	case DisablingAll:
		return consolePrefix + "Disabling all handlers..."
	case AllDisabled:
		return consolePrefix + "All handlers disabled and worker reinitialized."
	case CurrentConfig:
		return consolePrefix + "Current handler configuration (in memory):"
	case ConfigSaved:
		return consolePrefix + "Saved current handler configuration to storage."
	case LoadingConfig:
		return consolePrefix + "Reloading config from storage..."
	case ConfigLoaded:
		return consolePrefix + "Config reloaded. Check with 'listHandlers'."
	case ResettingConfig:
		return consolePrefix + "Resetting to initial code-level configuration..."
	case ConfigReset:
		return consolePrefix + "Reset to initial code-level configuration complete."
	case ApplyingConfig:
		return fmt.Sprintf(consolePrefix+"Applying %d handler states...", m.Count)
	case ConfigApplied:
		return consolePrefix + "Handler states applied and worker reinitialized."
	case ControllerReady:
		return controllerPrefix + "Type 'help' in the console to see available commands."
	case UnknownCommand:
		return fmt.Sprintf(consolePrefix+"Unknown command '%s'. Type 'help' for a list of commands.", m.Command)
	case MissingArgument:
		return fmt.Sprintf(consolePrefix+"'%s' needs a %s argument.", m.Command, m.Argument)
	}
	return fmt.Sprintf("%T", m)
}

func (english) Help() []string {
	return []string{
		"--- mockswitch Dev Mode Guide ---",
		"Control mock handlers by typing commands into this console.",
		"Examples:",
		"  listHandlers                 - List all handlers and their status",
		"  enableHandler <id>           - Enable a handler by its ID",
		"  disableHandler <id>          - Disable a handler by its ID",
		"  isHandlerEnabled <id>        - Show whether a handler is enabled",
		"  enableGroup <group>          - Enable handlers in a specific group",
		"  disableGroup <group>         - Disable handlers in a specific group",
		"  enableAllHandlers            - Enable all handlers",
		"  disableAllHandlers           - Disable all handlers",
		"  getCurrentConfig             - View current in-memory config",
		"  saveConfigToLocalStorage     - Save the current config to storage",
		"  loadConfigFromLocalStorage   - Load config from storage (overwrites current changes)",
		"  resetToInitialCodeConfig     - Reset to the initial code-level config",
		"  isWorkerRunning              - Show whether the mock worker is running",
		"The initial handler activation state is determined by the `groups` config at controller start.",
		"Runtime changes are saved to storage automatically and persist across sessions.",
	}
}

type korean struct{}

func (korean) Locale() Locale { return Korean }

func (korean) Format(m Message) string {
	switch m := m.(type) {
	case RuntimeConfigLoaded:
		return controllerPrefix + "저장소에서 런타임 설정을 로드했습니다."
	case StorageParseFailed:
		return controllerPrefix + "저장된 설정 파싱 실패. 코드 레벨 초기값을 사용합니다."
	case StorageReadOnly:
		return controllerPrefix + "저장소가 읽기 전용입니다. 핸들러 상태는 메모리에만 유지됩니다."
	case RuntimeConfigFromCode:
		return controllerPrefix + "코드 레벨 초기값으로 런타임 설정을 초기화했습니다."
	case ChangeBeforeInit:
		return controllerPrefix + "아직 초기화되지 않아 설정을 변경할 수 없습니다."
	case HandlersBeforeInit:
		return controllerPrefix + "아직 초기화되지 않아 핸들러 목록을 가져올 수 없습니다."
	case UnknownHandlerChange:
		return fmt.Sprintf(controllerPrefix+"알 수 없는 핸들러 ID '%s'의 상태를 변경할 수 없습니다.", m.ID)
	case WorkerAlreadyStarted:
		return controllerPrefix + "워커가 이미 시작된 상태입니다."
	case NoActiveHandlers:
		return controllerPrefix + "활성화된 핸들러가 없습니다. 목 워커를 시작하지 않습니다."
	case EnableHandlersHint:
		return consolePrefix + "'enableHandler <id>' 또는 'enableAllHandlers'로 핸들러를 활성화할 수 있습니다."
	case WorkerStarted:
		return fmt.Sprintf(controllerPrefix+"워커 시작됨 (%d개 핸들러 활성화).", m.Count)
	case WorkerStartFailed:
		return controllerPrefix + "목 워커 시작 실패."
	case WorkerStopped:
		return controllerPrefix + "워커가 중지되었습니다."
	case WorkerStopFailed:
		return controllerPrefix + "워커가 정상적으로 중지되지 않았습니다."
	case WorkerReinitializing:
		return controllerPrefix + "워커 재초기화 중..."
	case WorkerReinitialized:
		return controllerPrefix + "워커 재초기화 완료."
	case WorkerNotStartedAfterReinit:
		return controllerPrefix + "재초기화 후 워커가 시작되지 않음 (활성화된 핸들러가 없을 수 있음)."
	case StateChangeBroadcast:
		return controllerPrefix + "상태 변경을 알립니다."
	case WorkerRunningStatus:
		return fmt.Sprintf(consolePrefix+"워커 실행 상태: %t", m.Running)
	case HandlerNotFound:
		return fmt.Sprintf(consolePrefix+"핸들러 ID '%s'를 찾을 수 없습니다.", m.ID)
	case HandlerEnabled:
		return fmt.Sprintf(consolePrefix+"핸들러 '%s' (ID: %s) 활성화됨. 재초기화 중...", m.Description, m.ID)
	case HandlerDisabled:
		return fmt.Sprintf(consolePrefix+"핸들러 '%s' (ID: %s) 비활성화됨. 재초기화 중...", m.Description, m.ID)
	case ReinitComplete:
		return consolePrefix + "재초기화 완료."
	case HandlerStatus:
		return fmt.Sprintf(consolePrefix+"핸들러 '%s' (ID: %s) 상태: %s", m.Description, m.ID, onOff(m.Enabled))
	case HandlerListHeader:
		return consolePrefix + "사용 가능한 핸들러 목록 (ID | 상태 | 설명)"
	case NoHandlersToShow:
		return "  (표시할 핸들러가 없습니다.)"
	case GroupNotFound:
		return fmt.Sprintf(consolePrefix+"그룹 '%s'를 찾을 수 없습니다.", m.Group)
	case EnablingGroup:
		return fmt.Sprintf(consolePrefix+"%s 그룹 활성화 중...", m.Group)
	case GroupEnabled:
		return fmt.Sprintf(consolePrefix+"%s 그룹 활성화 완료.", m.Group)
	case DisablingGroup:
		return fmt.Sprintf(consolePrefix+"%s 그룹 비활성화 중...", m.Group)
	case GroupDisabled:
		return fmt.Sprintf(consolePrefix+"%s 그룹 비활성화 완료.", m.Group)
	case EnablingAll:
		return consolePrefix + "모든 핸들러 활성화 중..."
	case AllEnabled:
		return consolePrefix + "모든 핸들러 활성화 및 워커 재초기화 완료."
	case DisablingAll:
		return consolePrefix + "모든 핸들러 비활성화 중..."
	case AllDisabled:
		return consolePrefix + "모든 핸들러 비활성화 및 워커 재초기화 완료."
	case CurrentConfig:
		return consolePrefix + "현재 적용된 핸들러 설정 (메모리 기준):"
	case ConfigSaved:
		return consolePrefix + "현재 핸들러 설정을 저장소에 저장했습니다."
	case LoadingConfig:
		return consolePrefix + "저장소에서 설정 재로드 중..."
	case ConfigLoaded:
		return consolePrefix + "설정 재로드 완료. 'listHandlers'로 확인하세요."
	case ResettingConfig:
		return consolePrefix + "코드 레벨 초기 설정으로 리셋 중..."
	case ConfigReset:
		return consolePrefix + "코드 레벨 초기 설정으로 리셋 완료."
	case ApplyingConfig:
		return fmt.Sprintf(consolePrefix+"핸들러 상태 %d개 적용 중...", m.Count)
	case ConfigApplied:
		return consolePrefix + "핸들러 상태 적용 및 워커 재초기화 완료."
	case ControllerReady:
		return controllerPrefix + "콘솔에서 'help'를 입력하여 사용 가능한 명령어를 확인하세요."
	case UnknownCommand:
		return fmt.Sprintf(consolePrefix+"알 수 없는 명령어 '%s'. 'help'로 명령어 목록을 확인하세요.", m.Command)
	case MissingArgument:
		return fmt.Sprintf(consolePrefix+"'%s' 명령어에는 %s 인자가 필요합니다.", m.Command, m.Argument)
	}
	return fmt.Sprintf("%T", m)
}

func (korean) Help() []string {
	return []string{
		"--- mockswitch 개발 모드 안내 ---",
		"이 콘솔에 명령어를 입력하여 모킹 핸들러를 제어할 수 있습니다.",
		"사용 예시:",
		"  listHandlers                 - 모든 핸들러와 현재 상태 보기",
		"  enableHandler <id>           - 특정 ID의 핸들러 활성화",
		"  disableHandler <id>          - 특정 ID의 핸들러 비활성화",
		"  isHandlerEnabled <id>        - 특정 ID의 핸들러 상태 보기",
		"  enableGroup <그룹>           - 특정 그룹의 핸들러 활성화",
		"  disableGroup <그룹>          - 특정 그룹의 핸들러 비활성화",
		"  enableAllHandlers            - 모든 핸들러 활성화",
		"  disableAllHandlers           - 모든 핸들러 비활성화",
		"  getCurrentConfig             - 현재 메모리 설정 보기",
		"  saveConfigToLocalStorage     - 현재 설정을 저장소에 저장",
		"  loadConfigFromLocalStorage   - 저장소에서 설정 로드 (주의: 현재 변경사항 덮어씀)",
		"  resetToInitialCodeConfig     - 코드 레벨 초기 설정으로 리셋",
		"  isWorkerRunning              - 목 워커 실행 여부 보기",
		"초기 핸들러 활성화 상태는 컨트롤러 시작 시 `groups` 설정에 의해 결정됩니다.",
		"런타임 변경 사항은 자동으로 저장소에 저장되어 세션 간 유지됩니다.",
	}
}
