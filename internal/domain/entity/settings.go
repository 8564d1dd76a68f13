package entity

// Claves sincronizadas por el canal de difusión public:settings.
const (
	SettingSalesmen        = "salesmen"
	SettingSlowMovingDays  = "slowMovingDays"
	SettingAutoLockEnabled = "autoLockEnabled"
	SettingAutoLockTimeout = "autoLockTimeout"
)

// Settings configuración compartida entre sesiones del mismo canal.
type Settings struct {
	SlowMovingDays  int  `json:"slowMovingDays"`
	AutoLockEnabled bool `json:"autoLockEnabled"`
	AutoLockTimeout int  `json:"autoLockTimeout"` // minutos
}

// DefaultSettings valores iniciales antes de cualquier sincronización.
func DefaultSettings() Settings {
	return Settings{SlowMovingDays: 30, AutoLockEnabled: false, AutoLockTimeout: 5}
}
