package engine

import "fmt"

// ModelLoadError reports that an engine could not be initialised, so no file
// can be transcribed with it.
type ModelLoadError struct {
	Backend string
	Model   string
	Err     error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("load %s model %q: %v", e.Backend, e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}
