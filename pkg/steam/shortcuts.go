package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lobinuxsoft/nonsteam/pkg/vdf"
)

// backupDirName holds timestamped copies of shortcuts.vdf taken before each
// save, beside the file itself.
const backupDirName = "backups_shortcuts"

// Shortcut is a view over one shortcut record. The underlying VDF object is
// kept intact, so fields this tool never reads survive a load/save cycle.
type Shortcut struct {
	obj *vdf.Object
}

// NewShortcut builds a shortcut record with Steam's default flags:
// visible, desktop config and overlay allowed, no VR. Exe and StartDir are
// stored quoted, which is how Steam persists them.
func NewShortcut(name, exe, startDir, launchOptions string, tags []string) Shortcut {
	obj := vdf.NewObject()
	obj.SetInt("appid", AppID(exe, name))
	obj.SetString("AppName", name)
	obj.SetString("Exe", QuotePath(exe))
	obj.SetString("StartDir", QuotePath(startDir))
	obj.SetString("icon", "")
	obj.SetString("ShortcutPath", "")
	obj.SetString("LaunchOptions", launchOptions)
	obj.SetInt("IsHidden", 0)
	obj.SetInt("AllowDesktopConfig", 1)
	obj.SetInt("AllowOverlay", 1)
	obj.SetInt("OpenVR", 0)
	obj.SetInt("Devkit", 0)
	obj.SetString("DevkitGameID", "")
	obj.SetInt("LastPlayTime", 0)

	tagsObj := vdf.NewObject()
	for i, tag := range tags {
		tagsObj.SetString(strconv.Itoa(i), tag)
	}
	obj.SetObject("tags", tagsObj)

	return Shortcut{obj: obj}
}

// AppID returns the shortcut's application id.
func (s Shortcut) AppID() uint32 { return s.obj.GetInt("appid") }

// Name returns the display name.
func (s Shortcut) Name() string { return s.obj.GetString("AppName") }

// Exe returns the executable path as persisted (quoted).
func (s Shortcut) Exe() string { return s.obj.GetString("Exe") }

// StartDir returns the working directory as persisted (quoted).
func (s Shortcut) StartDir() string { return s.obj.GetString("StartDir") }

// LaunchOptions returns the launch options.
func (s Shortcut) LaunchOptions() string { return s.obj.GetString("LaunchOptions") }

// Icon returns the local icon path, if any.
func (s Shortcut) Icon() string { return s.obj.GetString("icon") }

// SetIcon sets the local icon path.
func (s Shortcut) SetIcon(path string) { s.obj.SetString("icon", path) }

// Tags returns the collection tags in slot order.
func (s Shortcut) Tags() []string {
	tagsObj := s.obj.GetObject("tags")
	if tagsObj == nil {
		return nil
	}
	var tags []string
	for _, key := range tagsObj.Keys() {
		if v, ok := tagsObj.Get(key); ok && v.Kind == vdf.KindString {
			tags = append(tags, v.Str)
		}
	}
	return tags
}

// Object exposes the raw record for callers that need fields beyond the
// accessors.
func (s Shortcut) Object() *vdf.Object { return s.obj }

// matches reports whether two records describe the same game: equal appid,
// or equal Exe + AppName (the inputs the appid derives from).
func (s Shortcut) matches(other Shortcut) bool {
	if s.AppID() != 0 && s.AppID() == other.AppID() {
		return true
	}
	return s.Exe() == other.Exe() && s.Name() == other.Name()
}

// Shortcuts is the in-memory form of one shortcuts.vdf document. Mutations
// never touch the disk; Save is the only writing operation.
type Shortcuts struct {
	doc *vdf.Object
}

// NewShortcuts returns an empty shortcuts document.
func NewShortcuts() *Shortcuts {
	doc := vdf.NewObject()
	doc.SetObject("shortcuts", vdf.NewObject())
	return &Shortcuts{doc: doc}
}

// LoadShortcuts reads a shortcuts.vdf file. A missing file yields an empty
// document. A file that cannot be parsed is backed up beside itself with a
// timestamp suffix and an empty document is returned together with an error
// wrapping ErrShortcutsCorrupt, so the caller can warn and continue.
// One malformed file must never block adding a game.
func LoadShortcuts(path string) (*Shortcuts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewShortcuts(), nil
		}
		return nil, fmt.Errorf("failed to read shortcuts file: %w", err)
	}

	doc, perr := vdf.Parse(data)
	if perr != nil {
		backup := fmt.Sprintf("%s.bak.%s", path, time.Now().Format("20060102-150405"))
		if werr := os.WriteFile(backup, data, 0644); werr != nil {
			return NewShortcuts(), fmt.Errorf("%w: %v (backup failed: %v)", ErrShortcutsCorrupt, perr, werr)
		}
		return NewShortcuts(), fmt.Errorf("%w: %v (original backed up to %s)", ErrShortcutsCorrupt, perr, backup)
	}

	if doc.GetObject("shortcuts") == nil {
		doc.SetObject("shortcuts", vdf.NewObject())
	}
	return &Shortcuts{doc: doc}, nil
}

func (sf *Shortcuts) slots() *vdf.Object {
	return sf.doc.GetObject("shortcuts")
}

// Len returns the number of shortcut records.
func (sf *Shortcuts) Len() int {
	return sf.slots().Len()
}

// All returns every record in slot order.
func (sf *Shortcuts) All() []Shortcut {
	slots := sf.slots()
	out := make([]Shortcut, 0, slots.Len())
	for _, key := range slots.Keys() {
		if obj := slots.GetObject(key); obj != nil {
			out = append(out, Shortcut{obj: obj})
		}
	}
	return out
}

// Find returns the record with the given appid.
func (sf *Shortcuts) Find(appID uint32) (Shortcut, bool) {
	for _, sc := range sf.All() {
		if sc.AppID() == appID {
			return sc, true
		}
	}
	return Shortcut{}, false
}

// Upsert inserts a record, replacing in place any existing record for the
// same game. Adding the same exe+name twice therefore updates rather than
// duplicates. Returns true when an existing record was replaced.
func (sf *Shortcuts) Upsert(sc Shortcut) bool {
	slots := sf.slots()
	for _, key := range slots.Keys() {
		existing := slots.GetObject(key)
		if existing == nil {
			continue
		}
		if (Shortcut{obj: existing}).matches(sc) {
			slots.SetObject(key, sc.Object())
			return true
		}
	}
	slots.SetObject(strconv.Itoa(slots.Len()), sc.Object())
	return false
}

// Marshal serializes the document, renumbering slot keys so indices are
// contiguous from 0 in record order. For a well-formed input with no
// modifications this reproduces the original bytes.
func (sf *Shortcuts) Marshal() []byte {
	slots := sf.slots()
	renumbered := vdf.NewObject()
	i := 0
	for _, key := range slots.Keys() {
		if obj := slots.GetObject(key); obj != nil {
			renumbered.SetObject(strconv.Itoa(i), obj)
			i++
		}
	}
	sf.doc.SetObject("shortcuts", renumbered)
	return sf.doc.Marshal()
}

// Save writes the document atomically: the bytes go to a temp file in the
// same directory, which is then renamed over the target, so a crash mid-write
// never leaves a truncated shortcuts file. Any pre-existing file is first
// copied into a timestamped backup. No file locking is attempted; a
// concurrent write by Steam itself during the rename is an accepted race.
func (sf *Shortcuts) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	if prev, err := os.ReadFile(path); err == nil {
		backupShortcuts(dir, filepath.Base(path), prev)
	}

	tmp, err := os.CreateTemp(dir, ".shortcuts-*.vdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(sf.Marshal()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace shortcuts file: %w", err)
	}
	return nil
}

// backupShortcuts copies the previous file content into the backup
// directory. Best effort: a failed backup never blocks the save.
func backupShortcuts(dir, name string, data []byte) {
	backupDir := filepath.Join(dir, backupDirName)
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return
	}
	stamp := time.Now().Format("20060102-150405")
	os.WriteFile(filepath.Join(backupDir, fmt.Sprintf("%s.bak.%s", name, stamp)), data, 0644)
}

// QuotePath wraps a path in double quotes the way Steam stores Exe and
// StartDir values. Already-quoted paths pass through unchanged.
func QuotePath(path string) string {
	if strings.HasPrefix(path, "\"") && strings.HasSuffix(path, "\"") {
		return path
	}
	return "\"" + path + "\""
}

// UnquotePath removes surrounding double quotes from a persisted path.
func UnquotePath(path string) string {
	if strings.HasPrefix(path, "\"") && strings.HasSuffix(path, "\"") && len(path) >= 2 {
		return path[1 : len(path)-1]
	}
	return path
}
