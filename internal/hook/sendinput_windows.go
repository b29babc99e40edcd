//go:build windows

package hook

import (
	"unsafe"

	"JigsawWM/internal/vk"
)

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type mouseInput struct {
	Dx, Dy      int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors Win32's tagged INPUT union. Only the keyboard and mouse
// members are populated by this package (hardware input is never
// synthesized), so the union is represented as the larger of the two plus
// a leading type discriminant, matching how INPUT is laid out in winuser.h.
type input struct {
	Type uint32
	_    uint32 // padding to align the union on amd64
	data [32]byte
}

func newKeyboardInput(code uint16, keyUp bool) input {
	var in input
	in.Type = inputKeyboard
	kb := (*keybdInput)(unsafe.Pointer(&in.data[0]))
	kb.WVk = code
	kb.DwExtraInfo = InjectSentinel
	if keyUp {
		kb.DwFlags = kEyeventfKeyUp
	}
	return in
}

func newMouseButtonInput(flag uint32, data uint32) input {
	var in input
	in.Type = inputMouse
	m := (*mouseInput)(unsafe.Pointer(&in.data[0]))
	m.DwFlags = flag
	m.MouseData = data
	m.DwExtraInfo = InjectSentinel
	return in
}

func sendInputs(ins []input) {
	if len(ins) == 0 {
		return
	}
	procSendInput.Call(
		uintptr(len(ins)),
		uintptr(unsafe.Pointer(&ins[0])),
		unsafe.Sizeof(ins[0]),
	)
}

// SendKey synthesizes a single key edge (down when pressed, up otherwise)
// through SendInput, tagged with InjectSentinel so the hook recognizes and
// passes through its own output. SendKeyTap sends a full down+up pulse.
func SendKey(v vk.Vk, pressed bool) {
	sendInputs([]input{newKeyboardInput(uint16(v), !pressed)})
}

// SendKeyTap synthesizes a full down+up pulse for v.
func SendKeyTap(v vk.Vk) {
	sendInputs([]input{
		newKeyboardInput(uint16(v), false),
		newKeyboardInput(uint16(v), true),
	})
}

// SendMouseClick synthesizes a left mouse button down+up.
func SendMouseClick() {
	sendInputs([]input{
		newMouseButtonInput(mouseeventfLeftDown, 0),
		newMouseButtonInput(mouseeventfLeftUp, 0),
	})
}
