// Package watcher reports changes to notes under a directory tree.
//
// Raw fsnotify events are filtered to note files and debounced, so a burst
// of saves from an editor arrives as one batch once the writer pauses.
//
// Usage:
//
//	w, err := watcher.New(watcher.Options{Extensions: []string{".md"}})
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	go func() { _ = w.Start(ctx, root) }()
//
//	for batch := range w.Events() {
//	    for _, ev := range batch {
//	        // re-link ev.Path
//	    }
//	}
package watcher
