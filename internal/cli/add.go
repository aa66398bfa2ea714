package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lobinuxsoft/nonsteam/internal/artwork"
	"github.com/lobinuxsoft/nonsteam/internal/config"
	"github.com/lobinuxsoft/nonsteam/internal/secrets"
	"github.com/lobinuxsoft/nonsteam/pkg/steam"
	"github.com/lobinuxsoft/nonsteam/pkg/steamgriddb"
)

type addOptions struct {
	exe           string
	name          string
	startDir      string
	launchOptions string
	user          string
	tags          []string
	apiKey        string
	noArtwork     bool
	noRestart     bool
}

func newAddCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &addOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the Steam library as a non-Steam shortcut",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.exe, "exe", "", "Path to the game executable")
	cmd.Flags().StringVar(&opts.name, "name", "", "Display name (defaults to the executable name)")
	cmd.Flags().StringVar(&opts.startDir, "start-dir", "", "Working directory (defaults to the executable's directory)")
	cmd.Flags().StringVar(&opts.launchOptions, "launch-options", "", "Launch options passed to the executable")
	cmd.Flags().StringVar(&opts.user, "user", "", "Steam account id to add the shortcut to")
	cmd.Flags().StringSliceVar(&opts.tags, "tags", nil, "Collection tags for the shortcut")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "SteamGridDB API key (overrides stored key)")
	cmd.Flags().BoolVar(&opts.noArtwork, "no-artwork", false, "Skip downloading artwork")
	cmd.Flags().BoolVar(&opts.noRestart, "no-restart", false, "Do not restart a running Steam client")
	return cmd
}

func runAdd(cmd *cobra.Command, rootOpts *rootOptions, opts *addOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	p := newPrompter(cmd.InOrStdin(), out)
	cfg := loadConfig()

	paths, err := resolvePaths(rootOpts, cfg)
	if err != nil {
		return err
	}
	log.Printf("[add] using Steam installation at %s", paths.BaseDir())

	exe := opts.exe
	if exe == "" {
		if exe, err = p.ask("Path to the game executable", ""); err != nil {
			return err
		}
	}
	if exe == "" {
		return errors.New("an executable path is required")
	}
	if abs, err := filepath.Abs(exe); err == nil {
		exe = abs
	}
	if _, err := os.Stat(exe); err != nil {
		fmt.Fprintf(errOut, "warning: %s does not exist, adding it anyway\n", exe)
	}

	name := opts.name
	if name == "" {
		defaultName := strings.TrimSuffix(filepath.Base(exe), filepath.Ext(exe))
		if name, err = p.ask("Display name", defaultName); err != nil {
			return err
		}
	}

	startDir := opts.startDir
	if startDir == "" {
		startDir = filepath.Dir(exe)
	}

	user, err := selectUser(paths, cfg, opts.user, p)
	if err != nil {
		return err
	}
	log.Printf("[add] target account %s (%s)", user.ID, user.PersonaName)

	shortcut := steam.NewShortcut(name, exe, startDir, opts.launchOptions, opts.tags)
	appID := shortcut.AppID()
	fmt.Fprintf(out, "Adding %q (appid %d) for %s\n", name, appID, user.PersonaName)

	var artworkResult *artwork.Result
	if !opts.noArtwork {
		artworkResult = fetchArtwork(ctx, p, errOut, cfg, opts, paths, user.ID, appID, name)
		if artworkResult != nil && artworkResult.IconPath != "" {
			shortcut.SetIcon(artworkResult.IconPath)
		}
	}

	shortcutsPath := paths.ShortcutsPath(user.ID)
	shortcuts, err := steam.LoadShortcuts(shortcutsPath)
	if err != nil {
		if !errors.Is(err, steam.ErrShortcutsCorrupt) {
			return err
		}
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}

	replaced := shortcuts.Upsert(shortcut)

	restarted := false
	if !opts.noRestart {
		ctrl := steam.NewController()
		restarted, err = ctrl.ShutdownIfRunning()
		if err != nil {
			fmt.Fprintf(errOut, "warning: %v, saving anyway\n", err)
		}
		if restarted {
			defer func() {
				if err := ctrl.Start(); err != nil {
					fmt.Fprintf(errOut, "warning: failed to start Steam again: %v\n", err)
				}
			}()
		}
	}

	if err := shortcuts.Save(shortcutsPath); err != nil {
		return fmt.Errorf("failed to save shortcuts: %w", err)
	}

	if replaced {
		fmt.Fprintf(out, "Updated existing shortcut in %s\n", shortcutsPath)
	} else {
		fmt.Fprintf(out, "Added shortcut to %s\n", shortcutsPath)
	}
	printArtworkSummary(out, artworkResult)
	if restarted {
		fmt.Fprintln(out, "Steam was restarted to pick up the change")
	} else if !opts.noRestart {
		fmt.Fprintln(out, "Restart Steam to see the new shortcut")
	}
	return nil
}

// fetchArtwork resolves the API key, finds the game on SteamGridDB and
// downloads all artwork kinds. It never fails the add: any problem turns
// into a skipped-artwork summary.
func fetchArtwork(ctx context.Context, p *prompter, errOut io.Writer, cfg *config.Manager, opts *addOptions, paths *steam.Paths, userID string, appID uint32, name string) *artwork.Result {
	key := opts.apiKey
	if key == "" {
		var err error
		if key, err = resolveAPIKey(p); err != nil {
			fmt.Fprintf(errOut, "warning: skipping artwork: %v\n", err)
			return nil
		}
	}

	client := steamgriddb.NewClient(key)
	results, err := client.Search(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, steamgriddb.ErrNotFound):
			fmt.Fprintf(errOut, "warning: no SteamGridDB entry for %q, skipping artwork\n", name)
		case errors.Is(err, steamgriddb.ErrUnauthorized):
			fmt.Fprintln(errOut, "warning: SteamGridDB rejected the API key, skipping artwork")
		default:
			fmt.Fprintf(errOut, "warning: SteamGridDB search failed: %v, skipping artwork\n", err)
		}
		return nil
	}
	game := results[0]
	log.Printf("[add] matched SteamGridDB game %q (id %d)", game.Name, game.ID)

	filters := &steamgriddb.ImageFilters{}
	if cfg != nil {
		filters.ShowNsfw = cfg.GetShowNsfw()
		filters.ShowHumor = cfg.GetShowHumor()
	}
	return artwork.NewFetcher(client, paths, filters).FetchAll(ctx, userID, appID, game.ID)
}

// resolveAPIKey finds the SteamGridDB key: environment, then keyring, then
// an interactive prompt whose answer is stored back best effort.
func resolveAPIKey(p *prompter) (string, error) {
	chain := secrets.DefaultChain()
	key, err := chain.Get()
	if err == nil {
		return key, nil
	}
	if !errors.Is(err, secrets.ErrNotFound) {
		return "", err
	}

	key, err = p.ask("SteamGridDB API key (https://www.steamgriddb.com/profile/preferences/api)", "")
	if err != nil || key == "" {
		return "", secrets.ErrNotFound
	}
	if err := chain.Set(key); err != nil {
		log.Printf("[add] could not store API key: %v", err)
	}
	return key, nil
}

func printArtworkSummary(out io.Writer, result *artwork.Result) {
	if result == nil {
		return
	}
	if len(result.Applied) > 0 {
		fmt.Fprintf(out, "Artwork applied: %s\n", strings.Join(result.Applied, ", "))
	}
	for _, skip := range result.Skipped {
		fmt.Fprintf(out, "Artwork skipped: %s (%s)\n", skip.Type, skip.Reason)
	}
}
