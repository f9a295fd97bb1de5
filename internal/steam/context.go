// Package steam discovers a local Steam installation: its root, libraries,
// installed games, and per-user save namespace.
package steam

// GameInstall describes one discovered Steam app.
type GameInstall struct {
	AppID      string
	Name       string
	InstallDir string // <library>/steamapps/common/<installdir>
	Library    string
}

// UserData describes the selected userdata namespace for save discovery.
type UserData struct {
	Base        string // <steam_root>/userdata
	SelectedID3 string
	AllID3s     []string
}

// Context is the session-scoped Steam discovery result the coordinator
// holds and passes by reference to detectors, refreshed explicitly rather
// than cached behind a process global.
type Context struct {
	Root      string
	Libraries []string
	Installs  []GameInstall
	UserData  UserData
	Warnings  []string
}

// Refresh re-runs the full discovery pipeline and returns a new Context.
// It never errors for "nothing found": an empty Root means no Steam
// installation was located, and callers decide how to report that (the
// CLI's `steam` commands print a message and exit successfully).
func Refresh() Context {
	var warnings []string

	root := FindSteamRoot()
	if root == "" {
		return Context{Warnings: append(warnings, "no Steam installation found")}
	}

	libs, didScan, libWarnings := discoverLibraries(root)
	warnings = append(warnings, libWarnings...)
	if !didScan {
		return Context{Root: root, Warnings: warnings}
	}

	installs, installWarnings := discoverInstalls(libs)
	warnings = append(warnings, installWarnings...)

	ud, udWarnings := findUserData(root)
	warnings = append(warnings, udWarnings...)

	return Context{
		Root:      root,
		Libraries: libs,
		Installs:  installs,
		UserData:  ud,
		Warnings:  warnings,
	}
}
