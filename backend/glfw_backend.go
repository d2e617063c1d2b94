package backend

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GLFWBackend implements Backend on top of go-gl/glfw. It owns window
// creation and input polling only; it requests GLFW's NoAPI client so the
// GPU back-end (an external collaborator) can attach its own surface.
type GLFWBackend struct {
	Title string

	window  *glfw.Window
	charBuf []rune

	// KeyPressed, if set, receives event-driven key presses translated
	// through glfwKeyTable (menu/console input); movement keys are read
	// every frame via ProcessInputEvents instead.
	KeyPressed func(Key)
}

func NewGLFWBackend(title string) *GLFWBackend {
	return &GLFWBackend{Title: title}
}

func (b *GLFWBackend) Initialize(requestedWidth, requestedHeight int, flags InitFlags) (int, int, error) {
	if err := glfw.Init(); err != nil {
		return 0, 0, fmt.Errorf("backend: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if flags&FlagStencilBuffer != 0 {
		glfw.WindowHint(glfw.StencilBits, 8)
	}
	if flags&FlagMultiSample != 0 {
		glfw.WindowHint(glfw.Samples, 4)
	}

	win, err := glfw.CreateWindow(requestedWidth, requestedHeight, b.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return 0, 0, fmt.Errorf("backend: create window: %w", err)
	}
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		b.charBuf = append(b.charBuf, char)
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press || b.KeyPressed == nil {
			return
		}
		if translated, ok := TranslateGLFWKey(int(key)); ok {
			b.KeyPressed(translated)
		}
	})

	b.window = win
	w, h := win.GetSize()
	return w, h, nil
}

func (b *GLFWBackend) Finalize() {
	if b.window != nil {
		b.window.Destroy()
	}
	glfw.Terminate()
}

func (b *GLFWBackend) SwapBuffers() {
	// Draw submission belongs to the GPU back-end; this seam only owns the
	// window and input, so there is no GL context to swap here. Present
	// timing is still observable through Sync for mode-toggle callers.
}

func (b *GLFWBackend) Sync() {
	glfw.PollEvents()
}

func (b *GLFWBackend) CurrentTime() float64 {
	return glfw.GetTime()
}

func (b *GLFWBackend) ShouldClose() bool {
	return b.window.ShouldClose()
}

func (b *GLFWBackend) ProcessInputEvents(state *InputState) {
	b.charBuf = nil
	glfw.PollEvents()

	for key, glfwKey := range keyToGLFW {
		action := b.window.GetKey(glfwKey)
		state.JustPressed[key] = false
		state.JustReleased[key] = false
		switch action {
		case glfw.Press:
			if !state.Pressed[key] {
				state.JustPressed[key] = true
			}
			state.Pressed[key] = true
		case glfw.Release:
			if state.Pressed[key] {
				state.JustReleased[key] = true
			}
			state.Pressed[key] = false
		}
	}

	mx, my := b.window.GetCursorPos()
	if state.MouseCaptured {
		state.MouseDeltaX = mx - state.MouseX
		state.MouseDeltaY = my - state.MouseY
	} else {
		state.MouseDeltaX = 0
		state.MouseDeltaY = 0
	}
	state.MouseX = mx
	state.MouseY = my
	state.WindowWidth, state.WindowHeight = b.window.GetSize()

	for btn, glfwBtn := range mouseButtonToGLFW {
		action := b.window.GetMouseButton(glfwBtn)
		state.MouseButtonPressed[btn] = action == glfw.Press
	}

	if state.MouseCaptured {
		b.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		b.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (b *GLFWBackend) ToggleFullscreen() {
	monitor := glfw.GetPrimaryMonitor()
	if monitor == nil {
		return
	}
	if b.window.GetMonitor() != nil {
		b.window.SetMonitor(nil, 0, 0, 800, 600, 0)
		return
	}
	mode := monitor.GetVideoMode()
	b.window.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
}

func (b *GLFWBackend) HideCursor() {
	b.window.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
}

func (b *GLFWBackend) RestoreCursor() {
	b.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
}

func (b *GLFWBackend) WarpCursor(x, y int) {
	b.window.SetCursorPos(float64(x), float64(y))
}

var keyToGLFW = map[Key]glfw.Key{
	KeyA: glfw.KeyA, KeyB: glfw.KeyB, KeyC: glfw.KeyC, KeyD: glfw.KeyD,
	KeyE: glfw.KeyE, KeyF: glfw.KeyF, KeyG: glfw.KeyG, KeyH: glfw.KeyH,
	KeyI: glfw.KeyI, KeyJ: glfw.KeyJ, KeyK: glfw.KeyK, KeyL: glfw.KeyL,
	KeyM: glfw.KeyM, KeyN: glfw.KeyN, KeyO: glfw.KeyO, KeyP: glfw.KeyP,
	KeyQ: glfw.KeyQ, KeyR: glfw.KeyR, KeyS: glfw.KeyS, KeyT: glfw.KeyT,
	KeyU: glfw.KeyU, KeyV: glfw.KeyV, KeyW: glfw.KeyW, KeyX: glfw.KeyX,
	KeyY: glfw.KeyY, KeyZ: glfw.KeyZ,
	Key0: glfw.Key0, Key1: glfw.Key1, Key2: glfw.Key2, Key3: glfw.Key3,
	Key4: glfw.Key4, Key5: glfw.Key5, Key6: glfw.Key6, Key7: glfw.Key7,
	Key8: glfw.Key8, Key9: glfw.Key9,
	KeyF1: glfw.KeyF1, KeyF2: glfw.KeyF2, KeyF3: glfw.KeyF3, KeyF4: glfw.KeyF4,
	KeyF5: glfw.KeyF5, KeyF6: glfw.KeyF6, KeyF7: glfw.KeyF7, KeyF8: glfw.KeyF8,
	KeyF9: glfw.KeyF9, KeyF10: glfw.KeyF10, KeyF11: glfw.KeyF11, KeyF12: glfw.KeyF12,
	KeyEscape:       glfw.KeyEscape,
	KeyPlus:         glfw.KeyEqual,
	KeyMinus:        glfw.KeyMinus,
	KeyComma:        glfw.KeyComma,
	KeyPeriod:       glfw.KeyPeriod,
	KeyLeftBracket:  glfw.KeyLeftBracket,
	KeyRightBracket: glfw.KeyRightBracket,
	KeyBackslash:    glfw.KeyBackslash,
	KeySlash:        glfw.KeySlash,
	KeySpace:        glfw.KeySpace,
	KeyInsert:       glfw.KeyInsert,
	KeyDelete:       glfw.KeyDelete,
	KeyBackspace:    glfw.KeyBackspace,
	KeyEnter:        glfw.KeyEnter,
	KeyTab:          glfw.KeyTab,
	KeyLeft:         glfw.KeyLeft,
	KeyRight:        glfw.KeyRight,
	KeyUp:           glfw.KeyUp,
	KeyDown:         glfw.KeyDown,
	KeyLeftShift:    glfw.KeyLeftShift,
	KeyLeftControl:  glfw.KeyLeftControl,
	KeyLeftAlt:      glfw.KeyLeftAlt,
}

var mouseButtonToGLFW = map[MouseButton]glfw.MouseButton{
	MouseButtonLeft:   glfw.MouseButtonLeft,
	MouseButtonMiddle: glfw.MouseButtonMiddle,
	MouseButtonRight:  glfw.MouseButtonRight,
}
