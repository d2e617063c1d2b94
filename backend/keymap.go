package backend

import "github.com/go-gl/glfw/v3.3/glfw"

// entryKind distinguishes the three translation-table entry shapes the
// original back-ends used to keep their keycode tables short: most keys need
// an explicit pair, but contiguous alphabetic/numeric/function-key ranges
// compress to one entry each.
type entryKind int

const (
	// exactPair maps a single platform keycode to a single Key.
	exactPair entryKind = iota
	// oneToOneRange maps [lo, hi] one-to-one onto the consecutive Key values
	// starting at target (e.g. glfw.KeyA..glfw.KeyZ onto KeyA..KeyZ).
	oneToOneRange
	// rangeWithOffset maps [lo, hi] to [lo+offset, hi+offset], used when a
	// contiguous platform range (e.g. F1..F12) lands on a contiguous but
	// differently-based engine range.
	rangeWithOffset
)

type tableEntry struct {
	kind   entryKind
	lo, hi int
	target Key // for exactPair and the base of a oneToOneRange/rangeWithOffset
}

// translationTable is an ordered list of entries; the first matching entry
// wins. Entries are evaluated in order, mirroring the original's linear scan
// over its translation tables terminated by a sentinel entry.
type translationTable []tableEntry

func (t translationTable) translate(platformCode int) (Key, bool) {
	for _, e := range t {
		switch e.kind {
		case exactPair:
			if platformCode == e.lo {
				return e.target, true
			}
		case oneToOneRange:
			if platformCode >= e.lo && platformCode <= e.hi {
				return e.target + Key(platformCode-e.lo), true
			}
		case rangeWithOffset:
			if platformCode >= e.lo && platformCode <= e.hi {
				return e.target + Key(platformCode-e.lo), true
			}
		}
	}
	return 0, false
}

func exact(platformCode int, k Key) tableEntry {
	return tableEntry{kind: exactPair, lo: platformCode, target: k}
}

func oneToOne(lo, hi int, firstKey Key) tableEntry {
	return tableEntry{kind: oneToOneRange, lo: lo, hi: hi, target: firstKey}
}

func rangeOffset(lo, hi int, firstKey Key) tableEntry {
	return tableEntry{kind: rangeWithOffset, lo: lo, hi: hi, target: firstKey}
}

// glfwKeyTable mirrors the teacher's GLFW_translation_table shape: ranges
// first for the common case (letters, digits, function keys), then the
// individual punctuation keys that don't fall on a contiguous run.
var glfwKeyTable = translationTable{
	oneToOne(int(glfw.KeyA), int(glfw.KeyZ), KeyA),
	oneToOne(int(glfw.Key0), int(glfw.Key9), Key0),
	rangeOffset(int(glfw.KeyF1), int(glfw.KeyF12), KeyF1),
	exact(int(glfw.KeyEqual), KeyPlus),
	exact(int(glfw.KeyMinus), KeyMinus),
	exact(int(glfw.KeyComma), KeyComma),
	exact(int(glfw.KeyPeriod), KeyPeriod),
	exact(int(glfw.KeyLeftBracket), KeyLeftBracket),
	exact(int(glfw.KeyRightBracket), KeyRightBracket),
	exact(int(glfw.KeyBackslash), KeyBackslash),
	exact(int(glfw.KeySlash), KeySlash),
	exact(int(glfw.KeySpace), KeySpace),
	exact(int(glfw.KeyEscape), KeyEscape),
}

// TranslateGLFWKey maps a raw glfw key code to the engine's Key enum via
// glfwKeyTable, for event-driven callers (menu/console input) that need a
// single translated keypress rather than the per-frame Pressed/JustPressed
// polling arrays ProcessInputEvents fills in.
func TranslateGLFWKey(glfwCode int) (Key, bool) {
	return glfwKeyTable.translate(glfwCode)
}
