package arduino

// Library identifies a core library bundled with the AVR platform.
type Library string

// Bundled libraries with known include layouts.
const (
	Wire   Library = "Wire"
	SPI    Library = "SPI"
	EEPROM Library = "EEPROM"
)

const (
	avrDir      = "/hardware/arduino/avr"
	coreDir     = avrDir + "/cores/arduino"
	variantsDir = avrDir + "/variants/"
)

// LibrarySpec lists the include suffixes of a library relative to the
// platform directory.
type LibrarySpec struct {
	Library Library
	Paths   []string
}

var libraries = []LibrarySpec{
	{Library: Wire, Paths: []string{"libraries/Wire/src", "libraries/Wire/src/utility"}},
	{Library: SPI, Paths: []string{"libraries/SPI/src"}},
	{Library: EEPROM, Paths: []string{"libraries/EEPROM/src"}},
}

// Libraries returns every known library in table order.
func Libraries() []LibrarySpec {
	out := make([]LibrarySpec, 0, len(libraries))
	for _, l := range libraries {
		out = append(out, LibrarySpec{Library: l.Library, Paths: append([]string(nil), l.Paths...)})
	}
	return out
}

// LookupLibrary returns the spec for a library name.
func LookupLibrary(name string) (LibrarySpec, bool) {
	for _, l := range libraries {
		if string(l.Library) == name {
			return l, true
		}
	}
	return LibrarySpec{}, false
}

// CoreDir returns the core include directory of an installation root.
func CoreDir(root string) string {
	return root + coreDir
}

// IncludeDirs returns the include directories for a board and the requested
// core libraries: the core directory, the board variant, then each library's
// paths in request order. Duplicates are kept. Unknown boards add no variant
// and unknown libraries are skipped.
//
// Paths are built by concatenation so an empty root yields absolute
// "/hardware/..." paths, which the compiler reports on.
func IncludeDirs(root, board string, libs []string) []string {
	dirs := []string{CoreDir(root)}
	if spec, ok := Lookup(board); ok {
		dirs = append(dirs, root+variantsDir+spec.Variant)
	}
	for _, name := range libs {
		lib, ok := LookupLibrary(name)
		if !ok {
			continue
		}
		for _, p := range lib.Paths {
			dirs = append(dirs, root+avrDir+"/"+p)
		}
	}
	return dirs
}
