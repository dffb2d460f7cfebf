//go:build linux

package headless

import (
	"fmt"
	"unsafe"

	log "github.com/sirupsen/logrus"

	"github.com/richinsley/goglresource/graphics"
)

/*
#cgo LDFLAGS: -lEGL
#include <EGL/egl.h>
#include <EGL/eglext.h>

// Go doesn't have a great way to call function pointers from C,
// so we'll create simple wrappers for the extension functions.
static PFNEGLQUERYDEVICESEXTPROC eglQueryDevicesEXT_ptr = NULL;
static PFNEGLGETPLATFORMDISPLAYEXTPROC eglGetPlatformDisplayEXT_ptr = NULL;

static void initialize_egl_extension_pointers() {
    eglQueryDevicesEXT_ptr = (PFNEGLQUERYDEVICESEXTPROC) eglGetProcAddress("eglQueryDevicesEXT");
    eglGetPlatformDisplayEXT_ptr = (PFNEGLGETPLATFORMDISPLAYEXTPROC) eglGetProcAddress("eglGetPlatformDisplayEXT");
}

static EGLDisplay get_platform_display(EGLenum platform, void *native_display, const EGLint *attrib_list) {
    if (eglGetPlatformDisplayEXT_ptr) {
        return eglGetPlatformDisplayEXT_ptr(platform, native_display, attrib_list);
    }
    return EGL_NO_DISPLAY;
}

static EGLBoolean query_devices(EGLint max_devices, EGLDeviceEXT *devices, EGLint *num_devices) {
    if (eglQueryDevicesEXT_ptr) {
        return eglQueryDevicesEXT_ptr(max_devices, devices, num_devices);
    }
    return EGL_FALSE;
}
*/
import "C"

// Surface is an EGL pbuffer with a desktop OpenGL 4.1 core context.
type Surface struct {
	display C.EGLDisplay
	context C.EGLContext
	surface C.EGLSurface

	width, height int
}

// getEGLDisplay tries the robust device enumeration method first,
// falling back to the default display.
func getEGLDisplay() (C.EGLDisplay, error) {
	C.initialize_egl_extension_pointers()

	var numDevices C.EGLint
	if C.query_devices(0, nil, &numDevices) == C.EGL_FALSE || numDevices == 0 {
		log.Warn("EGL_EXT_device_query not supported or no devices found, falling back to EGL_DEFAULT_DISPLAY")
		display := C.eglGetDisplay(C.EGLNativeDisplayType(C.EGL_DEFAULT_DISPLAY))
		if display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
			return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("fallback to eglGetDisplay(EGL_DEFAULT_DISPLAY) failed")
		}
		return display, nil
	}

	log.WithField("devices", int(numDevices)).Debug("Found EGL devices")
	devices := make([]C.EGLDeviceEXT, numDevices)
	if C.query_devices(numDevices, &devices[0], &numDevices) == C.EGL_FALSE {
		return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("failed to query EGL devices")
	}

	// In an NVIDIA Docker container, the first usable device is the GPU.
	for i := 0; i < int(numDevices); i++ {
		display := C.get_platform_display(C.EGL_PLATFORM_DEVICE_EXT, unsafe.Pointer(devices[i]), nil)
		if display != C.EGLDisplay(C.EGL_NO_DISPLAY) {
			log.WithField("device", i).Debug("Got EGL display")
			return display, nil
		}
	}

	return C.EGLDisplay(C.EGL_NO_DISPLAY), fmt.Errorf("could not get a valid EGL display from any available device")
}

// New creates a width×height pbuffer surface. The context is not made
// current; the GL thread does that through MakeCurrent.
func New(width, height int) (graphics.Surface, error) {
	s := &Surface{
		display: C.EGLDisplay(C.EGL_NO_DISPLAY),
		context: C.EGLContext(C.EGL_NO_CONTEXT),
		surface: C.EGLSurface(C.EGL_NO_SURFACE),
		width:   width,
		height:  height,
	}

	var err error
	s.display, err = getEGLDisplay()
	if err != nil {
		return nil, fmt.Errorf("failed to get EGL display: %w", err)
	}

	var major, minor C.EGLint
	if C.eglInitialize(s.display, &major, &minor) == C.EGL_FALSE {
		return nil, fmt.Errorf("failed to initialize EGL")
	}
	log.WithField("version", fmt.Sprintf("%d.%d", major, minor)).Debug("EGL initialized")

	if C.eglBindAPI(C.EGL_OPENGL_API) == C.EGL_FALSE {
		s.Shutdown()
		return nil, fmt.Errorf("EGL display does not support desktop OpenGL")
	}

	configAttribs := []C.EGLint{
		C.EGL_SURFACE_TYPE, C.EGL_PBUFFER_BIT,
		C.EGL_RED_SIZE, 8,
		C.EGL_GREEN_SIZE, 8,
		C.EGL_BLUE_SIZE, 8,
		C.EGL_ALPHA_SIZE, 8,
		C.EGL_DEPTH_SIZE, 24,
		C.EGL_RENDERABLE_TYPE, C.EGL_OPENGL_BIT,
		C.EGL_NONE,
	}

	var config C.EGLConfig
	var numConfig C.EGLint
	if C.eglChooseConfig(s.display, &configAttribs[0], &config, 1, &numConfig) == C.EGL_FALSE || numConfig == 0 {
		s.Shutdown()
		return nil, fmt.Errorf("failed to choose EGL config")
	}

	pbufferAttribs := []C.EGLint{
		C.EGL_WIDTH, C.EGLint(width),
		C.EGL_HEIGHT, C.EGLint(height),
		C.EGL_NONE,
	}
	s.surface = C.eglCreatePbufferSurface(s.display, config, &pbufferAttribs[0])
	if s.surface == C.EGLSurface(C.EGL_NO_SURFACE) {
		s.Shutdown()
		return nil, fmt.Errorf("failed to create Pbuffer surface")
	}

	contextAttribs := []C.EGLint{
		C.EGL_CONTEXT_MAJOR_VERSION, 4,
		C.EGL_CONTEXT_MINOR_VERSION, 1,
		C.EGL_CONTEXT_OPENGL_PROFILE_MASK, C.EGL_CONTEXT_OPENGL_CORE_PROFILE_BIT,
		C.EGL_NONE,
	}
	s.context = C.eglCreateContext(s.display, config, C.EGLContext(C.EGL_NO_CONTEXT), &contextAttribs[0])
	if s.context == C.EGLContext(C.EGL_NO_CONTEXT) {
		s.Shutdown()
		return nil, fmt.Errorf("failed to create EGL context")
	}

	return s, nil
}

func (s *Surface) MakeCurrent() error {
	if C.eglMakeCurrent(s.display, s.surface, s.surface, s.context) == C.EGL_FALSE {
		return fmt.Errorf("eglMakeCurrent failed: 0x%04X", int(C.eglGetError()))
	}
	return nil
}

func (s *Surface) DetachCurrent() {
	C.eglMakeCurrent(s.display, C.EGLSurface(C.EGL_NO_SURFACE), C.EGLSurface(C.EGL_NO_SURFACE), C.EGLContext(C.EGL_NO_CONTEXT))
}

func (s *Surface) Shutdown() {
	if s.display == C.EGLDisplay(C.EGL_NO_DISPLAY) {
		return
	}
	s.DetachCurrent()
	if s.context != C.EGLContext(C.EGL_NO_CONTEXT) {
		C.eglDestroyContext(s.display, s.context)
	}
	if s.surface != C.EGLSurface(C.EGL_NO_SURFACE) {
		C.eglDestroySurface(s.display, s.surface)
	}
	C.eglTerminate(s.display)
	s.display = C.EGLDisplay(C.EGL_NO_DISPLAY)
}

func (s *Surface) EndFrame() {
	C.eglSwapBuffers(s.display, s.surface)
}

func (s *Surface) GetFramebufferSize() (int, int) {
	return s.width, s.height
}
