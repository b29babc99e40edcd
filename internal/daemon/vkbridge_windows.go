//go:build windows

package daemon

import "JigsawWM/internal/vk"

// vkFromCode narrows a raw Win32 virtual-key/button code (or this
// vk package's synthetic wheel codes carried by hook.MouseEvent) into vk.Vk.
func vkFromCode(code uint32) vk.Vk {
	return vk.Vk(code)
}
