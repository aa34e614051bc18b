//go:build darwin && cgo

package ax

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework Carbon

#include <ApplicationServices/ApplicationServices.h>
#include <Carbon/Carbon.h>
#include <libproc.h>
#include <stdlib.h>
#include <string.h>
#include <sys/param.h>

// axFindPid returns the pid of the first running process with the given
// executable name, or -1 when none matches.
static pid_t axFindPid(const char *name) {
	pid_t pids[4096];
	int bytes = proc_listallpids(pids, (int)sizeof(pids));
	int count = bytes / (int)sizeof(pid_t);
	for (int i = 0; i < count; i++) {
		char pname[2 * MAXCOMLEN];
		if (proc_name(pids[i], pname, sizeof(pname)) <= 0) {
			continue;
		}
		if (strcmp(pname, name) == 0) {
			return pids[i];
		}
	}
	return -1;
}

// axFrontProcess brings the process with the given pid to the foreground.
static int axFrontProcess(pid_t pid) {
	ProcessSerialNumber psn;
	if (GetProcessForPID(pid, &psn) != noErr) {
		return -1;
	}
	if (SetFrontProcess(&psn) != noErr) {
		return -1;
	}
	return 0;
}
*/
import "C"

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"unicode"
	"unsafe"

	"github.com/overtone-labs/stagehand/internal/core/domain"
	"github.com/overtone-labs/stagehand/internal/core/ports/driven"
)

// Ensure the backend satisfies the driven ports.
var (
	_ driven.Accessibility = (*Backend)(nil)
	_ driven.Element       = (*element)(nil)
)

// Backend drives a host application through the macOS accessibility API.
type Backend struct {
	mu   sync.Mutex
	host domain.HostSettings
	pid  C.pid_t
	app  C.AXUIElementRef
}

// New creates a backend for the given host. The connection to the host
// process is established lazily on first use.
func New(host domain.HostSettings) *Backend {
	return &Backend{host: host, pid: -1}
}

// connect resolves the host process and its application element.
// A stale connection is re-resolved when the process has exited.
func (b *Backend) connect() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cname := C.CString(b.host.AppName)
	defer C.free(unsafe.Pointer(cname))

	pid := C.axFindPid(cname)
	if pid <= 0 {
		return fmt.Errorf("%w: %s is not running", domain.ErrBackendUnavailable, b.host.AppName)
	}
	if pid == b.pid && b.app != nil {
		return nil
	}

	if b.app != nil {
		C.CFRelease(C.CFTypeRef(b.app))
	}
	b.pid = pid
	b.app = C.AXUIElementCreateApplication(pid)
	if b.app == nil {
		return fmt.Errorf("%w: cannot attach to %s", domain.ErrBackendUnavailable, b.host.AppName)
	}
	return nil
}

// Activate brings the host application to the foreground.
func (b *Backend) Activate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.connect(); err != nil {
		return err
	}
	if C.axFrontProcess(b.pid) != 0 {
		return fmt.Errorf("%w: cannot activate %s", domain.ErrBackendUnavailable, b.host.AppName)
	}
	return nil
}

// OpenProject asks the host to open the given project path via
// Launch Services. Fire-and-forget.
func (b *Backend) OpenProject(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "open", "-b", b.host.BundleID, path)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("open %s: %w (%s)", path, err, out)
	}
	return nil
}

// InvokeMenu presses the menu item at the given path.
func (b *Backend) InvokeMenu(ctx context.Context, path ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(path) == 0 {
		return fmt.Errorf("%w: empty menu path", domain.ErrMenuActionUnavailable)
	}
	if err := b.connect(); err != nil {
		return err
	}

	item, err := b.menuItem(path)
	if err != nil {
		return err
	}
	defer C.CFRelease(C.CFTypeRef(item))

	if C.AXUIElementPerformAction(item, cfstr("AXPress")) != C.kAXErrorSuccess {
		return fmt.Errorf("%w: pressing %q failed", domain.ErrMenuActionUnavailable, path[len(path)-1])
	}
	return nil
}

// menuItem walks the host's menu bar down the given title path. The
// returned element is retained; the caller releases it.
func (b *Backend) menuItem(path []string) (C.AXUIElementRef, error) {
	node, err := copyElementAttr(b.app, "AXMenuBar")
	if err != nil {
		return nil, fmt.Errorf("%w: no menu bar", domain.ErrMenuActionUnavailable)
	}

	for _, title := range path {
		next, found := findChildByTitle(node, title)
		C.CFRelease(C.CFTypeRef(node))
		if !found {
			return nil, fmt.Errorf("%w: no menu item %q", domain.ErrMenuActionUnavailable, title)
		}
		node = next
	}
	return node, nil
}

// findChildByTitle searches the children of node (descending through
// interposed AXMenu containers) for an element with the given title.
// The returned element is retained.
func findChildByTitle(node C.AXUIElementRef, title string) (C.AXUIElementRef, bool) {
	children := copyChildren(node)
	defer releaseAll(children)

	for _, child := range children {
		if role, ok := copyStringAttr(child, "AXRole"); ok && role == "AXMenu" {
			// Menus interpose an AXMenu between item and subitems.
			if match, found := findChildByTitle(child, title); found {
				return match, true
			}
			continue
		}
		if t, ok := copyStringAttr(child, "AXTitle"); ok && t == title {
			C.CFRetain(C.CFTypeRef(child))
			return child, true
		}
	}
	return nil, false
}

// Windows snapshots the host's current top-level windows.
func (b *Backend) Windows(ctx context.Context) ([]driven.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := b.connect(); err != nil {
		return nil, err
	}

	var value C.CFTypeRef
	if C.AXUIElementCopyAttributeValue(b.app, cfstr("AXWindows"), &value) != C.kAXErrorSuccess {
		return nil, nil
	}
	defer C.CFRelease(value)

	return wrapArray(C.CFArrayRef(value)), nil
}

// Buttons snapshots the buttons in the subtree of scope.
func (b *Backend) Buttons(ctx context.Context, scope driven.Element) ([]driven.Element, error) {
	return b.descendantsWithRole(ctx, scope, "AXButton")
}

// TextFields snapshots the text fields in the subtree of scope.
func (b *Backend) TextFields(ctx context.Context, scope driven.Element) ([]driven.Element, error) {
	return b.descendantsWithRole(ctx, scope, "AXTextField")
}

func (b *Backend) descendantsWithRole(ctx context.Context, scope driven.Element, role string) ([]driven.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	el, ok := scope.(*element)
	if !ok {
		return nil, fmt.Errorf("%w: foreign element handle", domain.ErrBackendUnavailable)
	}

	var out []driven.Element
	collectRole(el.ref, role, &out)
	return out, nil
}

// collectRole walks the subtree of node appending elements of the
// wanted role. The accessibility hierarchy is shallow inside dialogs,
// so an unbounded recursive walk is acceptable.
func collectRole(node C.AXUIElementRef, role string, out *[]driven.Element) {
	children := copyChildren(node)
	defer releaseAll(children)

	for _, child := range children {
		if r, ok := copyStringAttr(child, "AXRole"); ok && r == role {
			*out = append(*out, wrap(child))
		}
		collectRole(child, role, out)
	}
}

// SendKey sends a single key event (down then up) to the system.
func (b *Backend) SendKey(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code, shift, err := keyFor(key)
	if err != nil {
		return err
	}
	var flags C.CGEventFlags
	if shift {
		flags = C.kCGEventFlagMaskShift
	}
	postKey(code, flags)
	return nil
}

// SendKeyChord sends a key with the given modifiers held.
func (b *Backend) SendKeyChord(ctx context.Context, key string, mods []domain.Modifier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	code, shift, err := keyFor(key)
	if err != nil {
		return err
	}
	flags := eventFlags(mods)
	if shift {
		flags |= C.kCGEventFlagMaskShift
	}
	postKey(code, flags)
	return nil
}

// Click clicks the left mouse button at a screen coordinate.
func (b *Backend) Click(ctx context.Context, p domain.Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pt := C.CGPointMake(C.double(p.X), C.double(p.Y))

	move := C.CGEventCreateMouseEvent(nil, C.kCGEventMouseMoved, pt, C.kCGMouseButtonLeft)
	down := C.CGEventCreateMouseEvent(nil, C.kCGEventLeftMouseDown, pt, C.kCGMouseButtonLeft)
	up := C.CGEventCreateMouseEvent(nil, C.kCGEventLeftMouseUp, pt, C.kCGMouseButtonLeft)

	C.CGEventPost(C.kCGHIDEventTap, move)
	C.CGEventPost(C.kCGHIDEventTap, down)
	C.CGEventPost(C.kCGHIDEventTap, up)

	C.CFRelease(C.CFTypeRef(move))
	C.CFRelease(C.CFTypeRef(down))
	C.CFRelease(C.CFTypeRef(up))
	return nil
}

// postKey posts a key-down and key-up pair with the given flags.
func postKey(code C.CGKeyCode, flags C.CGEventFlags) {
	down := C.CGEventCreateKeyboardEvent(nil, code, true)
	up := C.CGEventCreateKeyboardEvent(nil, code, false)
	C.CGEventSetFlags(down, flags)
	C.CGEventSetFlags(up, flags)
	C.CGEventPost(C.kCGHIDEventTap, down)
	C.CGEventPost(C.kCGHIDEventTap, up)
	C.CFRelease(C.CFTypeRef(down))
	C.CFRelease(C.CFTypeRef(up))
}

// eventFlags converts modifiers to CGEvent flags.
func eventFlags(mods []domain.Modifier) C.CGEventFlags {
	var flags C.CGEventFlags
	for _, m := range mods {
		switch m {
		case domain.ModCommand:
			flags |= C.kCGEventFlagMaskCommand
		case domain.ModShift:
			flags |= C.kCGEventFlagMaskShift
		case domain.ModOption:
			flags |= C.kCGEventFlagMaskAlternate
		case domain.ModControl:
			flags |= C.kCGEventFlagMaskControl
		}
	}
	return flags
}

// element wraps one retained AXUIElementRef.
type element struct {
	ref C.AXUIElementRef
}

// wrap retains ref and returns an element releasing it on finalization.
func wrap(ref C.AXUIElementRef) *element {
	C.CFRetain(C.CFTypeRef(ref))
	el := &element{ref: ref}
	runtime.SetFinalizer(el, func(e *element) {
		C.CFRelease(C.CFTypeRef(e.ref))
	})
	return el
}

// Attr reads one attribute from the live element.
func (e *element) Attr(name domain.AttrName) (domain.AttrValue, bool) {
	switch name {
	case domain.AttrRole:
		return stringValue(e.ref, "AXRole")
	case domain.AttrTitle:
		return stringValue(e.ref, "AXTitle")
	case domain.AttrDescription:
		return stringValue(e.ref, "AXDescription")
	case domain.AttrVal:
		return stringValue(e.ref, "AXValue")
	case domain.AttrPosition:
		return pointValue(e.ref, "AXPosition")
	}
	return domain.AttrValue{}, false
}

// Press performs the element's press action.
func (e *element) Press(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if C.AXUIElementPerformAction(e.ref, cfstr("AXPress")) != C.kAXErrorSuccess {
		return fmt.Errorf("%w: press dispatch failed", domain.ErrBackendUnavailable)
	}
	return nil
}

// stringValue reads a string attribute into the tagged union.
func stringValue(ref C.AXUIElementRef, attr string) (domain.AttrValue, bool) {
	s, ok := copyStringAttr(ref, attr)
	if !ok {
		return domain.AttrValue{}, false
	}
	return domain.StringAttr(s), true
}

// pointValue reads a CGPoint attribute into the tagged union.
func pointValue(ref C.AXUIElementRef, attr string) (domain.AttrValue, bool) {
	var value C.CFTypeRef
	if C.AXUIElementCopyAttributeValue(ref, cfstr(attr), &value) != C.kAXErrorSuccess {
		return domain.AttrValue{}, false
	}
	defer C.CFRelease(value)

	var pt C.CGPoint
	if C.AXValueGetValue(C.AXValueRef(value), C.kAXValueCGPointType, unsafe.Pointer(&pt)) == 0 {
		return domain.AttrValue{}, false
	}
	return domain.PointAttr(float64(pt.x), float64(pt.y)), true
}

// copyStringAttr copies a string attribute. Absent attributes and
// non-string values report ok=false.
func copyStringAttr(ref C.AXUIElementRef, attr string) (string, bool) {
	var value C.CFTypeRef
	if C.AXUIElementCopyAttributeValue(ref, cfstr(attr), &value) != C.kAXErrorSuccess {
		return "", false
	}
	defer C.CFRelease(value)

	if C.CFGetTypeID(value) != C.CFStringGetTypeID() {
		return "", false
	}
	return goString(C.CFStringRef(value)), true
}

// copyElementAttr copies an element-valued attribute. The returned
// element is retained; the caller releases it.
func copyElementAttr(ref C.AXUIElementRef, attr string) (C.AXUIElementRef, error) {
	var value C.CFTypeRef
	if C.AXUIElementCopyAttributeValue(ref, cfstr(attr), &value) != C.kAXErrorSuccess {
		return nil, fmt.Errorf("no %s attribute", attr)
	}
	return C.AXUIElementRef(value), nil
}

// copyChildren copies the retained child elements of node. The caller
// releases them.
func copyChildren(node C.AXUIElementRef) []C.AXUIElementRef {
	var value C.CFTypeRef
	if C.AXUIElementCopyAttributeValue(node, cfstr("AXChildren"), &value) != C.kAXErrorSuccess {
		return nil
	}
	defer C.CFRelease(value)

	arr := C.CFArrayRef(value)
	n := int(C.CFArrayGetCount(arr))
	children := make([]C.AXUIElementRef, 0, n)
	for i := 0; i < n; i++ {
		child := C.AXUIElementRef(C.CFArrayGetValueAtIndex(arr, C.CFIndex(i)))
		C.CFRetain(C.CFTypeRef(child))
		children = append(children, child)
	}
	return children
}

// wrapArray wraps every element of a CFArray of AXUIElementRef.
func wrapArray(arr C.CFArrayRef) []driven.Element {
	n := int(C.CFArrayGetCount(arr))
	out := make([]driven.Element, 0, n)
	for i := 0; i < n; i++ {
		ref := C.AXUIElementRef(C.CFArrayGetValueAtIndex(arr, C.CFIndex(i)))
		out = append(out, wrap(ref))
	}
	return out
}

func releaseAll(refs []C.AXUIElementRef) {
	for _, ref := range refs {
		C.CFRelease(C.CFTypeRef(ref))
	}
}

// cfstr converts a Go string to a CFString. The result follows the
// create rule; callers passing it straight to a copy call leak one
// small constant string per call, which is acceptable for the handful
// of attribute names used here.
func cfstr(s string) C.CFStringRef {
	cs := C.CString(s)
	defer C.free(unsafe.Pointer(cs))
	return C.CFStringCreateWithCString(C.kCFAllocatorDefault, cs, C.kCFStringEncodingUTF8)
}

// goString converts a CFString to a Go string.
func goString(ref C.CFStringRef) string {
	if ptr := C.CFStringGetCStringPtr(ref, C.kCFStringEncodingUTF8); ptr != nil {
		return C.GoString(ptr)
	}
	length := C.CFStringGetLength(ref)
	size := C.CFStringGetMaximumSizeForEncoding(length, C.kCFStringEncodingUTF8) + 1
	buf := make([]byte, int(size))
	if C.CFStringGetCString(ref, (*C.char)(unsafe.Pointer(&buf[0])), size, C.kCFStringEncodingUTF8) == 0 {
		return ""
	}
	return string(buf[:cStringLen(buf)])
}

func cStringLen(buf []byte) int {
	for i, b := range buf {
		if b == 0 {
			return i
		}
	}
	return len(buf)
}

// ANSI keyboard layout codes for the characters the flow types.
var keyCodes = map[rune]C.CGKeyCode{
	'a': 0, 's': 1, 'd': 2, 'f': 3, 'h': 4, 'g': 5, 'z': 6, 'x': 7,
	'c': 8, 'v': 9, 'b': 11, 'q': 12, 'w': 13, 'e': 14, 'r': 15,
	'y': 16, 't': 17, '1': 18, '2': 19, '3': 20, '4': 21, '6': 22,
	'5': 23, '=': 24, '9': 25, '7': 26, '-': 27, '8': 28, '0': 29,
	']': 30, 'o': 31, 'u': 32, '[': 33, 'i': 34, 'p': 35, 'l': 37,
	'j': 38, '\'': 39, 'k': 40, ';': 41, '\\': 42, ',': 43, '/': 44,
	'n': 45, 'm': 46, '.': 47, ' ': 49, '`': 50,
}

// shiftedKeys maps shifted characters to their unshifted key.
var shiftedKeys = map[rune]rune{
	'_': '-', '~': '`', ':': ';', '?': '/', '"': '\'', '<': ',',
	'>': '.', '{': '[', '}': ']', '|': '\\', '+': '=', '!': '1',
	'@': '2', '#': '3', '$': '4', '%': '5', '^': '6', '&': '7',
	'*': '8', '(': '9', ')': '0',
}

// Named key codes.
const (
	codeReturn    C.CGKeyCode = 36
	codeTab       C.CGKeyCode = 48
	codeBackspace C.CGKeyCode = 51
	codeEscape    C.CGKeyCode = 53
)

// keyFor resolves a key name to a virtual key code and whether shift
// must be held. Key names are either a single character or one of the
// named keys ("backspace", "tab", "escape", "\n").
func keyFor(key string) (C.CGKeyCode, bool, error) {
	switch key {
	case "\n", "return":
		return codeReturn, false, nil
	case "tab":
		return codeTab, false, nil
	case "backspace", "delete":
		return codeBackspace, false, nil
	case "escape":
		return codeEscape, false, nil
	}

	runes := []rune(key)
	if len(runes) != 1 {
		return 0, false, fmt.Errorf("unknown key %q", key)
	}

	r := runes[0]
	shift := false
	if unicode.IsUpper(r) {
		r = unicode.ToLower(r)
		shift = true
	} else if base, ok := shiftedKeys[r]; ok {
		r = base
		shift = true
	}

	code, ok := keyCodes[r]
	if !ok {
		return 0, false, fmt.Errorf("no key code for %q", key)
	}
	return code, shift, nil
}
