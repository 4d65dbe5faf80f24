// Package picker asks the user for an input file with the native open dialog.
package picker

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"
)

// ErrCancelled is returned when the user closes the dialog without
// choosing a file.
var ErrCancelled = errors.New("picker: no file selected")

// Title is the caption of the open dialog.
const Title = "Select an OpenEXR file"

// Dialog is the native file picker.
type Dialog struct{}

// Pick shows a modal open-file dialog filtered to EXR files and returns the
// chosen path.
func (Dialog) Pick() (string, error) {
	path, err := dialog.File().
		Title(Title).
		Filter("OpenEXR files", "exr").
		Filter("All files", "*").
		Load()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", ErrCancelled
	}
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	if path == "" {
		return "", ErrCancelled
	}
	return path, nil
}
