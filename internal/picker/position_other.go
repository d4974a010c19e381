//go:build !linux

package picker

// positionWindow is a stub for non-Linux platforms; the window manager
// places the picker.
// TODO: center and raise the window with SetWindowPos on Windows.
func positionWindow(windowTitle string, width, height int) {}
