package content

import "fmt"

// FrontMatterError reports a document whose front matter block failed to
// parse or validate.
type FrontMatterError struct {
	// Path is the offending document, relative to the content root.
	Path string
	Err  error
}

func (e *FrontMatterError) Error() string {
	return fmt.Sprintf("invalid front matter in %s: %v", e.Path, e.Err)
}

func (e *FrontMatterError) Unwrap() error {
	return e.Err
}
