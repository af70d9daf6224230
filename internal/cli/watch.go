package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yaklabco/novelint/internal/configloader"
	"github.com/yaklabco/novelint/internal/logging"
	"github.com/yaklabco/novelint/pkg/config"
	"github.com/yaklabco/novelint/pkg/runner"
)

// defaultDebounce is how long watch waits for a burst of saves to settle.
const defaultDebounce = 300 * time.Millisecond

type watchFlags struct {
	lintFlags

	debounce time.Duration
}

// eventKind classifies a file system event for watch.
type eventKind int

const (
	eventIgnored eventKind = iota
	eventManuscript
	eventConfig
)

func newWatchCommand(info BuildInfo) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-lint manuscripts whenever they change",
		Long: `Lint the given paths, then watch them and lint again whenever a
manuscript or the novelint configuration changes. Directories are
watched recursively; hidden directories are skipped.

Press Ctrl-C to stop.

Examples:
  novelint watch                     # Watch the current directory
  novelint watch chapters/ --flat    # One line per diagnostic`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags, info)
		},
	}

	addRuleFlags(cmd, &flags.lintFlags)
	addOutputFlags(cmd, &flags.output)
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only lint files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip files matching these glob patterns")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to lint when walking directories")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", defaultDebounce, "wait this long after a change before linting")

	return cmd
}

// watchSession holds the state of a running watch.
type watchSession struct {
	cmd    *cobra.Command
	flags  *watchFlags
	info   BuildInfo
	args   []string
	cliCfg *config.Config

	sess    *session
	watcher *fsnotify.Watcher
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags, info BuildInfo) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cliCfg, err := flags.config(cmd)
	if err != nil {
		return err
	}

	sess, err := loadSession(cmd, cliCfg)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	ws := &watchSession{
		cmd:     cmd,
		flags:   flags,
		info:    info,
		args:    args,
		cliCfg:  cliCfg,
		sess:    sess,
		watcher: watcher,
	}

	dirs, err := watchDirs(sess.workDir, args, configDirs(sess.loaded))
	if err != nil {
		return usageErrorf(err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	logger.Debug("watching", logging.FieldPaths, dirs)

	ws.lint(ctx)
	logger.Info("watching for changes; press Ctrl-C to stop")

	return ws.loop(ctx)
}

func (ws *watchSession) loop(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	timer := time.NewTimer(ws.flags.debounce)
	timer.Stop()
	defer timer.Stop()

	changes := 0
	reload := false

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-ws.watcher.Events:
			if !ok {
				return nil
			}

			ws.addNewDir(ctx, event)

			switch ws.classify(event) {
			case eventConfig:
				reload = true
			case eventManuscript:
			default:
				continue
			}
			changes++
			timer.Reset(ws.flags.debounce)

		case err, ok := <-ws.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			if reload {
				ws.reload(ctx)
				reload = false
			}
			logger.Info("re-linting", "changes", changes)
			changes = 0
			ws.lint(ctx)
		}
	}
}

// lint runs one pass over the watched paths and reports it. Failures are
// logged; watch keeps going.
func (ws *watchSession) lint(ctx context.Context) {
	logger := logging.FromContext(ctx)

	rep, err := ws.sess.reporter(ws.cmd, &ws.flags.output, ws.info.Version)
	if err != nil {
		logger.Error("create reporter", logging.FieldError, err)
		return
	}

	opts := runner.OptionsFromConfig(ws.sess.config, ws.args)
	opts.WorkingDir = ws.sess.workDir
	opts.IncludeGlobs = ws.flags.include

	result, err := ws.sess.runner().Run(ctx, opts)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("lint run failed", logging.FieldError, err)
		}
		return
	}

	if _, err := rep.Report(ctx, result); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("report results", logging.FieldError, err)
	}
}

// reload re-resolves the configuration, keeping the old one on error.
func (ws *watchSession) reload(ctx context.Context) {
	sess, err := loadSession(ws.cmd, ws.cliCfg)
	if err != nil {
		logging.FromContext(ctx).Error("configuration not reloaded", logging.FieldError, err)
		return
	}
	ws.sess = sess
	logging.FromContext(ctx).Info("configuration reloaded")
}

// addNewDir starts watching directories created under a watched one.
func (ws *watchSession) addNewDir(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) || isHidden(filepath.Base(event.Name)) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := ws.watcher.Add(event.Name); err != nil {
		logging.FromContext(ctx).Warn("cannot watch new directory",
			logging.FieldPath, event.Name, logging.FieldError, err)
	}
}

func (ws *watchSession) classify(event fsnotify.Event) eventKind {
	return classifyEvent(event, ws.sess.config.Extensions, configFiles(ws.sess))
}

// classifyEvent decides whether event should trigger a new lint run.
func classifyEvent(event fsnotify.Event, extensions, configPaths []string) eventKind {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return eventIgnored
	}

	name := filepath.Clean(event.Name)
	if slices.Contains(configPaths, name) {
		return eventConfig
	}

	base := filepath.Base(name)
	if isHidden(base) {
		return eventIgnored
	}

	if len(extensions) == 0 {
		extensions = config.DefaultExtensions()
	}
	ext := strings.ToLower(filepath.Ext(base))
	if slices.ContainsFunc(extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return eventManuscript
	}
	return eventIgnored
}

// configFiles lists the config files whose edits reload the session,
// including a project config that does not exist yet.
func configFiles(sess *session) []string {
	files := []string{filepath.Join(sess.workDir, configloader.ProjectConfigFile)}
	for _, path := range sess.loaded.LoadedFrom {
		abs, err := filepath.Abs(path)
		if err == nil {
			files = append(files, abs)
		}
	}
	return files
}

func configDirs(loaded *configloader.LoadResult) []string {
	var dirs []string
	for _, path := range loaded.LoadedFrom {
		if abs, err := filepath.Abs(path); err == nil {
			dirs = append(dirs, filepath.Dir(abs))
		}
	}
	return dirs
}

// watchDirs returns the sorted directories to watch for paths: every
// non-hidden directory below a directory argument, and the parent of a
// file argument. extra directories are added as they are.
func watchDirs(workDir string, paths, extra []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	add := func(dir string) {
		seen[filepath.Clean(dir)] = struct{}{}
	}

	for _, p := range paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", runner.ErrNoPathMatch, p)
		}
		if !info.IsDir() {
			add(filepath.Dir(abs))
			continue
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			if path != abs && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	for _, dir := range extra {
		add(dir)
	}

	dirs := make([]string, 0, len(seen))
	for dir := range seen {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs, nil
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
