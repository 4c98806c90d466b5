package ports

// WorkspaceProvider supplies the single active project root.
// Root returns "" when no workspace is open.
type WorkspaceProvider interface {
	Root() string
}

// SettingsSource provides the listing script templates. Templates may contain
// the ${workspaceFolder} placeholder.
type SettingsSource interface {
	ConfigureScriptPath() string
	CustomConfigureScriptPath() string
}
