package common

import (
	"errors"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/andyrewlee/scrollbox/internal/logging"
)

// ErrNothingToCopy is returned for an empty selection.
var ErrNothingToCopy = errors.New("nothing selected")

// clipboardWrite is swapped in tests.
var clipboardWrite = clipboard.WriteAll

// CopyToClipboard writes the selected rows' text to the system clipboard.
// On macOS pbcopy is tried when the clipboard library fails.
func CopyToClipboard(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}
	err := clipboardWrite(text)
	if err == nil || runtime.GOOS != "darwin" {
		return err
	}
	logging.Debug("clipboard write failed (%v), trying pbcopy", err)
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(text)
	if perr := cmd.Run(); perr != nil {
		return errors.Join(err, perr)
	}
	return nil
}
