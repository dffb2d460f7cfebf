package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	log "github.com/sirupsen/logrus"

	"github.com/richinsley/goglresource/graphics"
)

// Window is a GLFW window with an OpenGL 4.1 core context.
type Window struct {
	window *glfw.Window
}

// New creates a window and returns it with no context current. Must be
// called from the main thread after InitGraphics.
func New(width, height int, visible bool, title string) (*Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, err
	}
	win.SetKeyCallback(keyCallback)
	// CreateWindow leaves the new context current on the main thread; the
	// GL thread needs it instead.
	glfw.DetachCurrentContext()

	log.WithFields(log.Fields{"width": width, "height": height, "visible": visible}).Debug("GLFW window created")
	return &Window{window: win}, nil
}

func keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// MakeCurrent makes the context current for the calling goroutine. GLFW
// reports failures here by panicking, so the error is always nil.
func (w *Window) MakeCurrent() error {
	w.window.MakeContextCurrent()
	return nil
}

// DetachCurrent makes no context current on the calling thread.
func (w *Window) DetachCurrent() {
	glfw.DetachCurrentContext()
}

// Shutdown destroys the window. Must be called from the main thread.
func (w *Window) Shutdown() {
	w.window.Destroy()
}

func (w *Window) ShouldClose() bool {
	return w.window.ShouldClose()
}

func (w *Window) EndFrame() {
	w.window.SwapBuffers()
	glfw.PollEvents()
}

// WaitEvents processes window events on the main thread, waiting at most
// timeout seconds for one to arrive.
func (w *Window) WaitEvents(timeout float64) {
	glfw.WaitEventsTimeout(timeout)
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.window.GetFramebufferSize()
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Debug("GLFW initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Debug("GLFW terminated")
}

var _ graphics.Surface = (*Window)(nil)
