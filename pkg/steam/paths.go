// Package steam locates a local Steam installation and manages the per-user
// files this tool touches: shortcuts.vdf and the grid artwork directory.
package steam

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrSteamNotFound means no plausible Steam installation was found.
	ErrSteamNotFound = errors.New("steam installation not found")
	// ErrUserNotFound means the requested Steam account does not exist locally.
	ErrUserNotFound = errors.New("steam user not found")
	// ErrShortcutsCorrupt means shortcuts.vdf could not be parsed and was
	// backed up before starting from an empty set.
	ErrShortcutsCorrupt = errors.New("shortcuts file corrupt")
)

// EnvSteamDir overrides Steam installation detection when set.
const EnvSteamDir = "NONSTEAM_STEAM_DIR"

// ArtworkType identifies one of the grid artwork slots Steam reads.
type ArtworkType int

const (
	// ArtworkPortrait is the 600x900 library capsule ({appid}p.png).
	ArtworkPortrait ArtworkType = iota
	// ArtworkWide is the 920x430 wide capsule ({appid}.png).
	ArtworkWide
	// ArtworkHero is the 1920x620 library banner ({appid}_hero.png).
	ArtworkHero
	// ArtworkLogo is the transparent logo overlay ({appid}_logo.png).
	ArtworkLogo
	// ArtworkIcon is the small square icon ({appid}_icon.png).
	ArtworkIcon
)

// String returns the artwork type name used in logs and summaries.
func (t ArtworkType) String() string {
	switch t {
	case ArtworkPortrait:
		return "grid"
	case ArtworkWide:
		return "wide_grid"
	case ArtworkHero:
		return "hero"
	case ArtworkLogo:
		return "logo"
	case ArtworkIcon:
		return "icon"
	default:
		return fmt.Sprintf("artwork(%d)", int(t))
	}
}

// Suffix returns the grid filename suffix for the artwork type.
func (t ArtworkType) Suffix() string {
	switch t {
	case ArtworkPortrait:
		return "p"
	case ArtworkHero:
		return "_hero"
	case ArtworkLogo:
		return "_logo"
	case ArtworkIcon:
		return "_icon"
	default:
		return ""
	}
}

// AllArtworkTypes lists every artwork slot in fetch order.
func AllArtworkTypes() []ArtworkType {
	return []ArtworkType{ArtworkPortrait, ArtworkWide, ArtworkHero, ArtworkLogo, ArtworkIcon}
}

// Paths resolves file locations inside a Steam installation.
type Paths struct {
	baseDir string
}

// NewPaths locates the Steam installation for the running OS. The EnvSteamDir
// environment variable takes priority over platform probing. A directory only
// qualifies if it contains a userdata subdirectory.
func NewPaths() (*Paths, error) {
	if dir := os.Getenv(EnvSteamDir); dir != "" {
		if !hasUserData(dir) {
			return nil, fmt.Errorf("%s=%s: %w", EnvSteamDir, dir, ErrSteamNotFound)
		}
		return &Paths{baseDir: dir}, nil
	}

	dir, err := getBaseDir()
	if err != nil {
		return nil, err
	}
	if !hasUserData(dir) {
		return nil, ErrSteamNotFound
	}
	return &Paths{baseDir: dir}, nil
}

// NewPathsAt creates Paths rooted at an explicit directory, applying the
// same plausibility check as detection.
func NewPathsAt(baseDir string) (*Paths, error) {
	if !hasUserData(baseDir) {
		return nil, fmt.Errorf("%s: %w", baseDir, ErrSteamNotFound)
	}
	return &Paths{baseDir: baseDir}, nil
}

// NewPathsWithBase creates Paths rooted at an explicit directory (for tests).
func NewPathsWithBase(baseDir string) *Paths {
	return &Paths{baseDir: baseDir}
}

func hasUserData(baseDir string) bool {
	info, err := os.Stat(filepath.Join(baseDir, "userdata"))
	return err == nil && info.IsDir()
}

// BaseDir returns the Steam installation root.
func (p *Paths) BaseDir() string {
	return p.baseDir
}

// UserDataDir returns the userdata directory holding per-account subtrees.
func (p *Paths) UserDataDir() string {
	return filepath.Join(p.baseDir, "userdata")
}

// UserDir returns the data directory for one account.
func (p *Paths) UserDir(userID string) string {
	return filepath.Join(p.UserDataDir(), userID)
}

// ConfigDir returns the per-account config directory.
func (p *Paths) ConfigDir(userID string) string {
	return filepath.Join(p.UserDir(userID), "config")
}

// ShortcutsPath returns the per-account shortcuts.vdf path.
func (p *Paths) ShortcutsPath(userID string) string {
	return filepath.Join(p.ConfigDir(userID), "shortcuts.vdf")
}

// GridDir returns the per-account custom artwork directory.
func (p *Paths) GridDir(userID string) string {
	return filepath.Join(p.ConfigDir(userID), "grid")
}

// LoginUsersPath returns the installation-wide loginusers.vdf path.
func (p *Paths) LoginUsersPath() string {
	return filepath.Join(p.baseDir, "config", "loginusers.vdf")
}

// LocalConfigPath returns the per-account localconfig.vdf path.
func (p *Paths) LocalConfigPath(userID string) string {
	return filepath.Join(p.ConfigDir(userID), "localconfig.vdf")
}

// HasShortcuts reports whether the account already has a shortcuts file.
func (p *Paths) HasShortcuts(userID string) bool {
	_, err := os.Stat(p.ShortcutsPath(userID))
	return err == nil
}

// EnsureGridDir creates the grid directory if it doesn't exist.
func (p *Paths) EnsureGridDir(userID string) error {
	return os.MkdirAll(p.GridDir(userID), 0755)
}

// ArtworkPath returns the grid file path for one artwork slot.
func (p *Paths) ArtworkPath(userID string, appID uint32, artType ArtworkType, ext string) string {
	return filepath.Join(p.GridDir(userID), ArtworkFilename(appID, artType, ext))
}

// ArtworkFilename builds the grid filename Steam expects for an artwork slot.
func ArtworkFilename(appID uint32, artType ArtworkType, ext string) string {
	if ext == "" {
		ext = "png"
	}
	return fmt.Sprintf("%d%s.%s", appID, artType.Suffix(), ext)
}

// RemoveArtwork deletes any existing grid files for one artwork slot,
// regardless of extension. Steam caches by filename, so stale files with a
// different extension would otherwise shadow the new artwork.
func (p *Paths) RemoveArtwork(userID string, appID uint32, artType ArtworkType) {
	base := fmt.Sprintf("%d%s", appID, artType.Suffix())
	for _, ext := range []string{"png", "jpg", "jpeg", "webp", "gif", "ico"} {
		os.Remove(filepath.Join(p.GridDir(userID), base+"."+ext))
	}
}
