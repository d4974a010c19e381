//go:build linux

package picker

import (
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// positionWindow centers the picker horizontally in the upper part of the
// screen, keeps it above other windows and gives it keyboard focus.
func positionWindow(windowTitle string, width, height int) {
	// Give the window time to appear
	time.Sleep(100 * time.Millisecond)

	windowID := findWindow(windowTitle)
	if windowID == "" {
		return
	}

	if screenWidth, screenHeight := getScreenSize(); screenWidth > 0 && screenHeight > 0 {
		x := (screenWidth - width) / 2
		y := screenHeight / 5
		exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y)).Run()
	}

	// Try to set always-on-top using wmctrl, fall back to xprop
	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above").Run(); err != nil {
		exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}

	// The hotkey fired while another app had focus; take it over
	exec.Command("xdotool", "windowactivate", "--sync", windowID).Run()
}

// findWindow returns the X11 id of the newest window with the given title.
func findWindow(title string) string {
	output, err := exec.Command("xdotool", "search", "--name", "^"+title+"$").Output()
	if err != nil {
		return ""
	}
	ids := strings.Fields(string(output))
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// getScreenSize returns the screen dimensions using xdotool.
func getScreenSize() (width, height int) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}

	parts := strings.Fields(string(output))
	if len(parts) != 2 {
		return 0, 0
	}

	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}
