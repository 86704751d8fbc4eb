package logging

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// Interactive reports whether user output goes to a terminal.
func Interactive() bool {
	out, _ := writers()
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Spin runs fn while a spinner labelled with label is shown. Without a
// terminal the label is printed as an info line instead.
func Spin(label string, fn func() error) error {
	if !Interactive() || Verbose {
		UserInfo("%s", label)
		return fn()
	}

	out, _ := writers()
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + label
	s.Start()
	err := fn()
	s.Stop()
	return err
}
