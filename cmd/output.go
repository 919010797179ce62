package cmd

import (
	"fmt"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// Every command reports per-note results through these so icons and
// indentation stay consistent.
//
//   ✓  linked / healthy
//   ✗  error                     (written to stderr)
//   ⚠  warning
//   ○  skipped / no separator
//   ~  neutral info / would change

// printSection prints a top-level section header, e.g. "=== Link ===".
func printSection(title string) {
	fmt.Printf("\n=== %s ===\n", title)
}

// printBullet prints a grouped-section bullet, e.g. "● Needs linking:".
func printBullet(title string) {
	fmt.Printf("\n● %s\n", title)
}

// printLine writes "  <icon>  [name] msg", dropping the brackets when
// name is empty.
func printLine(f *os.File, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(f, "  %s  %s\n", icon, msg)
		return
	}
	fmt.Fprintf(f, "  %s  [%s] %s\n", icon, name, msg)
}

func printOK(name, msg string)   { printLine(os.Stdout, "✓", name, msg) }
func printErr(name, msg string)  { printLine(os.Stderr, "✗", name, msg) }
func printWarn(name, msg string) { printLine(os.Stdout, "⚠", name, msg) }
func printSkip(name, msg string) { printLine(os.Stdout, "○", name, msg) }
func printInfo(name, msg string) { printLine(os.Stdout, "~", name, msg) }
