//go:build dc1394

package dc1394

/*
#cgo LDFLAGS: -ldc1394
#include <dc1394/dc1394.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"unsafe"

	"github.com/go1394/iidc"
)

// IIDC fixed modes are numbered contiguously from 64; each format group
// starts at a fixed offset within that range.
var groupBase = [3]C.dc1394video_mode_t{
	C.DC1394_VIDEO_MODE_160x120_YUV444,
	C.DC1394_VIDEO_MODE_800x600_YUV422,
	C.DC1394_VIDEO_MODE_1280x960_YUV422,
}

func videoMode(group, mode int) (C.dc1394video_mode_t, bool) {
	if group < 0 || group >= len(groupBase) || mode < 0 {
		return 0, false
	}
	m := groupBase[group] + C.dc1394video_mode_t(mode)
	if group+1 < len(groupBase) && m >= groupBase[group+1] {
		return 0, false
	}
	if m > C.DC1394_VIDEO_MODE_1600x1200_MONO16 {
		return 0, false
	}
	return m, true
}

func splitMode(m C.dc1394video_mode_t) (group, mode int) {
	for g := len(groupBase) - 1; g >= 0; g-- {
		if m >= groupBase[g] {
			return g, int(m - groupBase[g])
		}
	}
	return 0, 0
}

func rateSelector(rate int) C.dc1394framerate_t {
	return C.DC1394_FRAMERATE_1_875 + C.dc1394framerate_t(rate)
}

func status(err C.dc1394error_t) iidc.Status {
	switch err {
	case C.DC1394_SUCCESS:
		return iidc.StatusSuccess
	case C.DC1394_FUNCTION_NOT_SUPPORTED:
		return iidc.StatusUnsupported
	case C.DC1394_NOT_A_CAMERA, C.DC1394_CAMERA_NOT_INITIALIZED:
		return iidc.StatusNotInitialized
	case C.DC1394_INVALID_VIDEO_MODE, C.DC1394_INVALID_FRAMERATE:
		return iidc.StatusInvalidVideoSettings
	case C.DC1394_NO_BANDWIDTH, C.DC1394_NO_ISO_CHANNEL, C.DC1394_MEMORY_ALLOCATION_FAILURE:
		return iidc.StatusInsufficientResources
	case C.DC1394_CAPTURE_IS_RUNNING:
		return iidc.StatusBusy
	case C.DC1394_INVALID_ARGUMENT_VALUE, C.DC1394_REQ_VALUE_OUTSIDE_RANGE:
		return iidc.StatusParamOutOfRange
	}
	return iidc.StatusError
}

// Backend drives real cameras through libdc1394. It implements
// iidc.Backend with one selected camera at a time, matching the semantics
// the session layer expects.
type Backend struct {
	ctx       *C.dc1394_t
	list      *C.dc1394camera_list_t
	camera    *C.dc1394camera_t
	sel       int
	// pendingGroup holds the last SetFormat value until SetMode combines
	// the pair into a dc1394 mode selector.
	pendingGroup int
	acquiring    bool
	frame     *C.dc1394video_frame_t
	buf       []byte
	width     int
	height    int
}

// New opens the dc1394 context and enumerates the bus.
func New() (*Backend, error) {
	ctx := C.dc1394_new()
	if ctx == nil {
		return nil, fmt.Errorf("dc1394_new failed")
	}
	b := &Backend{ctx: ctx, sel: -1}
	if err := C.dc1394_camera_enumerate(ctx, &b.list); err != C.DC1394_SUCCESS {
		C.dc1394_free(ctx)
		return nil, fmt.Errorf("dc1394_camera_enumerate failed: %s", C.GoString(C.dc1394_error_get_string(err)))
	}
	return b, nil
}

func (b *Backend) Count() (int, error) {
	return int(b.list.num), nil
}

func (b *Backend) ids() []C.dc1394camera_id_t {
	return (*[1 << 20]C.dc1394camera_id_t)(unsafe.Pointer(b.list.ids))[:b.list.num]
}

func (b *Backend) Description(index int) (string, error) {
	if index < 0 || index >= int(b.list.num) {
		return "", fmt.Errorf("no camera at index %d", index)
	}
	id := b.ids()[index]
	cam := C.dc1394_camera_new(b.ctx, id.guid)
	if cam == nil {
		return fmt.Sprintf("camera %016x", uint64(id.guid)), nil
	}
	defer C.dc1394_camera_free(cam)
	return fmt.Sprintf("%s %s (%016x)", C.GoString(cam.vendor), C.GoString(cam.model), uint64(id.guid)), nil
}

func (b *Backend) Select(index int) error {
	if index < 0 || index >= int(b.list.num) {
		return fmt.Errorf("no camera at index %d", index)
	}
	b.release()
	b.sel = index
	return nil
}

func (b *Backend) Init() error {
	if b.sel < 0 {
		return fmt.Errorf("no camera selected")
	}
	cam := C.dc1394_camera_new(b.ctx, b.ids()[b.sel].guid)
	if cam == nil {
		return fmt.Errorf("dc1394_camera_new failed for index %d", b.sel)
	}
	b.camera = cam
	return nil
}

func (b *Backend) IsAcquiring() bool { return b.acquiring }

func (b *Backend) StartAcquisition() iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	if err := C.dc1394_capture_setup(b.camera, 4, C.DC1394_CAPTURE_FLAGS_DEFAULT); err != C.DC1394_SUCCESS {
		return status(err)
	}
	if err := C.dc1394_video_set_transmission(b.camera, C.DC1394_ON); err != C.DC1394_SUCCESS {
		C.dc1394_capture_stop(b.camera)
		return status(err)
	}
	b.acquiring = true
	return iidc.StatusSuccess
}

func (b *Backend) StopAcquisition() iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	b.requeue()
	errT := C.dc1394_video_set_transmission(b.camera, C.DC1394_OFF)
	errC := C.dc1394_capture_stop(b.camera)
	b.acquiring = false
	if errT != C.DC1394_SUCCESS {
		return status(errT)
	}
	return status(errC)
}

func (b *Backend) HasMode(group, mode int) bool {
	if b.camera == nil {
		return false
	}
	m, ok := videoMode(group, mode)
	if !ok {
		return false
	}
	var modes C.dc1394video_modes_t
	if C.dc1394_video_get_supported_modes(b.camera, &modes) != C.DC1394_SUCCESS {
		return false
	}
	for i := 0; i < int(modes.num); i++ {
		if modes.modes[i] == m {
			return true
		}
	}
	return false
}

func (b *Backend) HasRate(group, mode, rate int) bool {
	if b.camera == nil || rate < 0 || rate > 7 {
		return false
	}
	m, ok := videoMode(group, mode)
	if !ok {
		return false
	}
	var rates C.dc1394framerates_t
	if C.dc1394_video_get_supported_framerates(b.camera, m, &rates) != C.DC1394_SUCCESS {
		return false
	}
	want := rateSelector(rate)
	for i := 0; i < int(rates.num); i++ {
		if rates.framerates[i] == want {
			return true
		}
	}
	return false
}

func (b *Backend) currentMode() C.dc1394video_mode_t {
	var m C.dc1394video_mode_t
	if b.camera == nil || C.dc1394_video_get_mode(b.camera, &m) != C.DC1394_SUCCESS {
		return 0
	}
	return m
}

func (b *Backend) Format() int {
	g, _ := splitMode(b.currentMode())
	return g
}

func (b *Backend) Mode() int {
	_, m := splitMode(b.currentMode())
	return m
}

func (b *Backend) Rate() int {
	var r C.dc1394framerate_t
	if b.camera == nil || C.dc1394_video_get_framerate(b.camera, &r) != C.DC1394_SUCCESS {
		return 0
	}
	return int(r - C.DC1394_FRAMERATE_1_875)
}

// SetFormat stores nothing on its own: libdc1394 addresses modes as a
// single selector, so the group takes effect when SetMode combines the
// pair. Validation still happens here.
func (b *Backend) SetFormat(group int) iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	if group < 0 || group >= len(groupBase) {
		return iidc.StatusParamOutOfRange
	}
	b.pendingGroup = group
	return iidc.StatusSuccess
}

func (b *Backend) SetMode(mode int) iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	m, ok := videoMode(b.pendingGroup, mode)
	if !ok {
		return iidc.StatusParamOutOfRange
	}
	return status(C.dc1394_video_set_mode(b.camera, m))
}

func (b *Backend) SetRate(rate int) iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	if rate < 0 || rate > 7 {
		return iidc.StatusParamOutOfRange
	}
	return status(C.dc1394_video_set_framerate(b.camera, rateSelector(rate)))
}

func (b *Backend) AcquireFrame() iidc.Status {
	if b.camera == nil {
		return iidc.StatusNotInitialized
	}
	b.requeue()
	var frame *C.dc1394video_frame_t
	if err := C.dc1394_capture_dequeue(b.camera, C.DC1394_CAPTURE_POLICY_WAIT, &frame); err != C.DC1394_SUCCESS {
		return status(err)
	}
	if frame == nil {
		return iidc.StatusFrameTimeout
	}
	b.frame = frame
	b.width = int(frame.size[0])
	b.height = int(frame.size[1])
	b.buf = (*[1 << 30]byte)(unsafe.Pointer(frame.image))[:frame.image_bytes]
	return iidc.StatusSuccess
}

func (b *Backend) RawBuffer() []byte { return b.buf }

func (b *Backend) Dimensions() (int, int) { return b.width, b.height }

func (b *Backend) ConvertRGB(buf []byte) iidc.Status {
	if b.frame == nil {
		return iidc.StatusNotInitialized
	}
	if len(buf) != b.width*b.height*3 {
		return iidc.StatusParamOutOfRange
	}
	err := C.dc1394_convert_to_RGB8(
		b.frame.image,
		(*C.uint8_t)(unsafe.Pointer(&buf[0])),
		C.uint32_t(b.width),
		C.uint32_t(b.height),
		b.frame.yuv_byte_order,
		b.frame.color_coding,
		C.uint32_t(b.frame.data_depth),
	)
	return status(err)
}

// requeue hands the previously dequeued frame back to the driver's ring.
func (b *Backend) requeue() {
	if b.frame != nil {
		C.dc1394_capture_enqueue(b.camera, b.frame)
		b.frame = nil
		b.buf = nil
	}
}

// release frees the per-camera handle when selection changes.
func (b *Backend) release() {
	if b.camera != nil {
		b.requeue()
		C.dc1394_camera_free(b.camera)
		b.camera = nil
		b.acquiring = false
	}
}

// Close releases all libdc1394 resources. The backend is unusable after.
func (b *Backend) Close() {
	b.release()
	if b.list != nil {
		C.dc1394_camera_free_list(b.list)
		b.list = nil
	}
	if b.ctx != nil {
		C.dc1394_free(b.ctx)
		b.ctx = nil
	}
}
