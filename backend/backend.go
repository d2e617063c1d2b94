// Package backend defines the thin seam the culling core uses to reach the
// windowing/input system, and a glfw-backed implementation of it. Draw
// submission, shader selection, and texture decoding are not part of this
// seam: they belong to the GPU back-end, which this package treats as an
// external collaborator.
package backend

// Key is the engine's platform-independent keycode. Values are stable across
// back-ends; a back-end's translation table maps its own keycodes onto these.
type Key int

const (
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyEscape
	KeyPlus
	KeyMinus
	KeyComma
	KeyPeriod
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySlash
	KeySpace
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	keyCount
)

// MouseButton follows the fixed {Left=1, Middle=2, Right=3} numbering.
type MouseButton int

const (
	MouseButtonLeft   MouseButton = 1
	MouseButtonMiddle MouseButton = 2
	MouseButtonRight  MouseButton = 3
)

// InitFlags requests optional framebuffer capabilities at window creation.
type InitFlags uint32

const (
	FlagStencilBuffer InitFlags = 1 << iota
	FlagMultiSample
)

// InputState is the per-frame snapshot the back-end fills in during
// ProcessInputEvents; the culling core and demo layer read it, never write it.
type InputState struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseButtonPressed [4]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int
}

// Backend is the back-end seam: window/context lifecycle, timing, and input
// polling. The culling core never draws through it; a renderer built on top
// of the window this package creates is an external collaborator.
type Backend interface {
	// Initialize creates the window, returning the actual framebuffer size
	// (which may differ from the request on some platforms). GLFWBackend
	// creates no GL context: it requests GLFW's NoAPI client.
	Initialize(requestedWidth, requestedHeight int, flags InitFlags) (actualWidth, actualHeight int, err error)
	Finalize()

	SwapBuffers()
	Sync()
	CurrentTime() float64

	ProcessInputEvents(state *InputState)
	ToggleFullscreen()
	HideCursor()
	RestoreCursor()
	WarpCursor(x, y int)

	// ShouldClose reports whether the platform has requested termination
	// (window close button, Alt+F4).
	ShouldClose() bool
}
