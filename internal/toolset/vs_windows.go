//go:build windows

package toolset

import (
	vssetup "github.com/heaths/go-vssetup"
)

// defaultVisualStudio reports the newest complete Visual Studio installation,
// the one the default generator is going to pick up.
func defaultVisualStudio() (string, bool) {
	instances, err := vssetup.Instances(false)
	if err != nil || len(instances) == 0 {
		return "", false
	}

	name := ""
	best := ""
	for _, instance := range instances {
		version, err := instance.InstallationVersion()
		if err != nil || vsVersionLess(version, best) {
			continue
		}
		path, err := instance.InstallationPath()
		if err != nil {
			continue
		}
		best = version
		name = path + " (" + version + ")"
	}
	return name, name != ""
}
