// Package formats holds the static IIDC video mode catalog and the fixed
// frame rate ladder, plus the resolver that turns loosely specified user
// strings into catalog entries.
package formats

// Descriptor names one fixed IIDC video mode. Name is unique within the
// catalog, as is the (Group, Mode) pair.
type Descriptor struct {
	Name   string
	Group  int // IIDC format group (0-2)
	Mode   int // mode within the group
	Width  int
	Height int
}

func (d Descriptor) String() string { return d.Name }

// catalog mirrors the IIDC v1.31 mode tables for format groups 0 through 2.
// Scalable (format 7) modes are vendor-defined and not catalogued.
var catalog = []Descriptor{
	{"160x120 YUV 4:4:4", 0, 0, 160, 120},
	{"320x240 YUV 4:2:2", 0, 1, 320, 240},
	{"640x480 YUV 4:1:1", 0, 2, 640, 480},
	{"640x480 YUV 4:2:2", 0, 3, 640, 480},
	{"640x480 RGB 24-bit", 0, 4, 640, 480},
	{"640x480 Mono 8-bit", 0, 5, 640, 480},
	{"640x480 Mono 16-bit", 0, 6, 640, 480},
	{"800x600 YUV 4:2:2", 1, 0, 800, 600},
	{"800x600 RGB 24-bit", 1, 1, 800, 600},
	{"800x600 Mono 8-bit", 1, 2, 800, 600},
	{"1024x768 YUV 4:2:2", 1, 3, 1024, 768},
	{"1024x768 RGB 24-bit", 1, 4, 1024, 768},
	{"1024x768 Mono 8-bit", 1, 5, 1024, 768},
	{"800x600 Mono 16-bit", 1, 6, 800, 600},
	{"1024x768 Mono 16-bit", 1, 7, 1024, 768},
	{"1280x960 YUV 4:2:2", 2, 0, 1280, 960},
	{"1280x960 RGB 24-bit", 2, 1, 1280, 960},
	{"1280x960 Mono 8-bit", 2, 2, 1280, 960},
	{"1600x1200 YUV 4:2:2", 2, 3, 1600, 1200},
	{"1600x1200 RGB 24-bit", 2, 4, 1600, 1200},
	{"1600x1200 Mono 8-bit", 2, 5, 1600, 1200},
	{"1280x960 Mono 16-bit", 2, 6, 1280, 960},
	{"1600x1200 Mono 16-bit", 2, 7, 1600, 1200},
}

var (
	byName = make(map[string]Descriptor, len(catalog))
	byMode = make(map[[2]int]Descriptor, len(catalog))
)

func init() {
	for _, d := range catalog {
		byName[d.Name] = d
		byMode[[2]int{d.Group, d.Mode}] = d
	}
}

// Lookup returns the descriptor with the given exact name.
func Lookup(name string) (Descriptor, bool) {
	d, ok := byName[name]
	return d, ok
}

// LookupMode returns the descriptor for a format group and mode pair.
func LookupMode(group, mode int) (Descriptor, bool) {
	d, ok := byMode[[2]int{group, mode}]
	return d, ok
}

// All returns every catalogued descriptor in group/mode order.
func All() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// Rate is one step of the IIDC frame rate ladder. Index is the driver's
// native selector.
type Rate struct {
	Index int
	FPS   float64
}

var rateLadder = []Rate{
	{0, 1.875},
	{1, 3.75},
	{2, 7.5},
	{3, 15},
	{4, 30},
	{5, 60},
	{6, 120},
	{7, 240},
}

// Rates returns the frame rate ladder in ascending order.
func Rates() []Rate {
	out := make([]Rate, len(rateLadder))
	copy(out, rateLadder)
	return out
}

// RateByIndex returns the ladder entry for a driver rate selector.
func RateByIndex(index int) (Rate, bool) {
	if index < 0 || index >= len(rateLadder) {
		return Rate{}, false
	}
	return rateLadder[index], true
}

// RateIndex returns the driver selector for an exact frames-per-second
// value on the ladder.
func RateIndex(fps float64) (int, bool) {
	for _, r := range rateLadder {
		if r.FPS == fps {
			return r.Index, true
		}
	}
	return 0, false
}
