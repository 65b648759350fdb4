package logger

import "sync"

var (
	registryMu sync.RWMutex
	registry   = map[string]*Logger{}
)

// Register stores a named logger, replacing any previous entry.
func Register(name string, l *Logger) {
	registryMu.Lock()
	registry[name] = l
	registryMu.Unlock()
}

// Get retrieves a named logger. If the name is not registered it returns
// the global logger tagged with the requested component name.
func Get(name string) *Logger {
	registryMu.RLock()
	l, ok := registry[name]
	registryMu.RUnlock()
	if ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers component loggers derived from the global
// logger, typically called once after SetGlobalLogger.
func RegisterDefaults(names ...string) {
	for _, name := range names {
		Register(name, GetGlobalLogger().WithComponent(name))
	}
}
