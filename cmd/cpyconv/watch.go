package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

type watchOptions struct {
	dir     string
	out     string
	pattern string
	format  string
	digest  bool
	settle  time.Duration
	once    bool
}

func runWatch(args []string, e *env) error {
	c := newCommon("watch")
	var o watchOptions
	c.flags.StringVar(&o.dir, "dir", "", "directory to watch for record files")
	c.flags.StringVar(&o.out, "out", "", "directory for decoded output (default <dir>/decoded)")
	c.flags.StringVar(&o.pattern, "pattern", "*", "file name pattern to decode")
	c.flags.StringVarP(&o.format, "format", "f", "json", "output format: json or cbor")
	c.flags.BoolVar(&o.digest, "digest", false, "add a BLAKE3 digest of each raw record")
	c.flags.DurationVar(&o.settle, "settle", 500*time.Millisecond, "wait this long after the last write before decoding")
	c.flags.BoolVar(&o.once, "once", false, "decode the files already present and exit")
	if err := c.parse(args, e); err != nil {
		return err
	}
	if !c.flags.Changed("format") && c.cfg.Format != "" {
		o.format = c.cfg.Format
	}
	if o.dir == "" {
		return fmt.Errorf("--dir is required")
	}
	if o.out == "" {
		o.out = filepath.Join(o.dir, "decoded")
	}
	if _, err := filepath.Match(o.pattern, ""); err != nil {
		return fmt.Errorf("bad --pattern: %w", err)
	}
	if _, err := newRecordWriter(o.format, io.Discard, false); err != nil {
		return err
	}

	j, err := c.setup(e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(o.out, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	existing, err := os.ReadDir(o.dir)
	if err != nil {
		return fmt.Errorf("read dir: %w", err)
	}
	names := make([]string, 0, len(existing))
	for _, de := range existing {
		if !de.IsDir() {
			names = append(names, de.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		watchFile(e, j, &o, filepath.Join(o.dir, name))
	}
	if o.once {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(o.dir); err != nil {
		return fmt.Errorf("watch %s: %w", o.dir, err)
	}
	j.log.Info("watching", zap.String("dir", o.dir), zap.String("out", o.out))

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	for {
		select {
		case <-e.ctx.Done():
			for _, t := range timers {
				t.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			path := event.Name
			if t, exists := timers[path]; exists {
				t.Stop()
			}
			timers[path] = time.AfterFunc(o.settle, func() {
				select {
				case ready <- path:
				case <-e.ctx.Done():
				}
			})
		case path := <-ready:
			delete(timers, path)
			watchFile(e, j, &o, path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			j.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// watchFile decodes one input file into the output directory. Failures
// are logged so one bad file does not stop the watch.
func watchFile(e *env, j *job, o *watchOptions, path string) {
	name := filepath.Base(path)
	if ok, _ := filepath.Match(o.pattern, name); !ok {
		return
	}
	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		return
	}

	out, err := decodeFile(e, j, o, path)
	if err != nil {
		j.log.Warn("decode failed", zap.String("file", path), zap.Error(err))
		return
	}
	j.log.Info("decoded file", zap.String("file", path), zap.String("output", out))
}

func decodeFile(e *env, j *job, o *watchOptions, path string) (string, error) {
	ext := ".jsonl"
	if o.format == "cbor" {
		ext = ".cbor"
	}
	base := filepath.Base(path)
	for _, c := range []string{".zst", ".zstd", ".lz4"} {
		base = strings.TrimSuffix(base, c)
	}
	outPath := filepath.Join(o.out, strings.TrimSuffix(base, filepath.Ext(base))+ext)

	r, err := openInput(path, nil)
	if err != nil {
		return "", err
	}
	defer r.Close()

	out, err := openOutput(outPath, nil)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w, err := newRecordWriter(o.format, out, o.digest)
	if err != nil {
		return "", err
	}
	_, err = decodeTo(e.ctx, j, r, w, 1)
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return "", err
	}
	return outPath, out.Close()
}
