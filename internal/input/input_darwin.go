//go:build darwin

package input

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

// postUnits отправляет одну группу UTF-16 (символ или суррогатную пару).
static void postUnits(const UniChar *units, int n) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);

    CGEventKeyboardSetUnicodeString(keyDown, n, units);
    CGEventKeyboardSetUnicodeString(keyUp, n, units);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
}
*/
import "C"

import (
	"unicode/utf16"
)

type darwinTyper struct{}

func newTyper() (Typer, error) {
	return &darwinTyper{}, nil
}

func (t *darwinTyper) Type(text string) error {
	for _, r := range text {
		units := utf16.Encode([]rune{r})
		buf := make([]C.UniChar, len(units))
		for i, u := range units {
			buf[i] = C.UniChar(u)
		}
		C.postUnits(&buf[0], C.int(len(buf)))
	}
	return nil
}
