//go:build windows

package steam

import (
	"os"

	"golang.org/x/sys/windows/registry"
)

// FindSteamRoot reads the string value SteamPath at HKCU\Software\Valve\Steam
// then HKLM\Software\Valve\Steam, read-only.
func FindSteamRoot() string {
	if p := readSteamPath(registry.CURRENT_USER); p != "" {
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			return canonicalizePathBestEffort(p)
		}
	}
	if p := readSteamPath(registry.LOCAL_MACHINE); p != "" {
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			return canonicalizePathBestEffort(p)
		}
	}
	return ""
}

func readSteamPath(hive registry.Key) string {
	k, err := registry.OpenKey(hive, `Software\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	v, _, err := k.GetStringValue("SteamPath")
	if err != nil {
		return ""
	}
	return v
}
