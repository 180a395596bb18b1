package appfs

import (
	"io/fs"
	"testing"
)

// the base partials start with an underscore, which plain embed patterns skip
func TestFS_embedsUnderscoredTemplates(t *testing.T) {
	for _, path := range []string{
		"templates/email/_base.txt",
		"templates/email/_base.gohtml",
		"templates/email/new_submission.txt",
		"templates/email/new_submission.gohtml",
	} {
		if _, err := fs.Stat(FS, path); err != nil {
			t.Errorf("fs.Stat(%q): %v", path, err)
		}
	}
}
