package config

// DefaultBrowsers returns the process names treated as web browsers.
// Names are compared case-insensitively against the foreground process.
func DefaultBrowsers() []string {
	return []string{
		// Windows executables
		"chrome.exe",
		"msedge.exe",
		"firefox.exe",
		"brave.exe",
		"opera.exe",
		"vivaldi.exe",

		// Linux process names
		"chrome",
		"chromium",
		"chromium-browser",
		"firefox",
		"firefox-esr",
		"msedge",
		"brave",

		// macOS application names
		"Google Chrome",
		"Microsoft Edge",
		"Safari",
	}
}
