package helper

import (
	"os"
	"path/filepath"
)

// EnvConfigDir overrides the directory searched for configuration files
const EnvConfigDir = "WATSON_CONFIG_DIR"

// GetCfgPath returns the path to the configuration file.
//
// Priority:
// 1. If filename is an absolute path, return it directly.
// 2. Check $WATSON_CONFIG_DIR/{filename}
// 3. Check ./{filename} and ./configs/{filename}
// 4. Check ~/.watson/{filename}
// 5. Otherwise, fallback to /etc/watson/{filename}
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}

	if filepath.IsAbs(filename) {
		return filename
	}

	for _, dir := range searchDirs() {
		if p := existing(filepath.Join(dir, filename)); p != "" {
			return p
		}
	}

	return filepath.Join("/etc/watson", filename)
}

func searchDirs() []string {
	var dirs []string
	if d := os.Getenv(EnvConfigDir); d != "" {
		dirs = append(dirs, d)
	}
	if wd, err := os.Getwd(); err == nil && wd != "" {
		dirs = append(dirs, wd, filepath.Join(wd, "configs"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".watson"))
	}
	return dirs
}

func existing(candidate string) string {
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return ""
	}
	return abs
}
