//go:build !linux

package watcher

// Without statfs magic numbers there is no cheap classification; fsnotify
// handles the common local case and polling remains available via the env
// override.
func detectFilesystemType(string) FilesystemType {
	return FSTypeUnknown
}
