package share

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/coachtools/playctl/internal/playbook"
)

// ErrShareSheetUnavailable signals that the platform share surface is
// absent or the user dismissed it. It is handled locally by falling back
// to a direct file write, never surfaced as a failure.
var ErrShareSheetUnavailable = errors.New("share: share sheet unavailable")

// Sharer is a platform share surface for the generated document.
type Sharer interface {
	Share(filename, content string) error
}

// NoSharer models a platform without a share sheet.
type NoSharer struct{}

func (NoSharer) Share(string, string) error { return ErrShareSheetUnavailable }

// DeriveFilename builds the redirector filename from the playbook name:
// whitespace runs collapse to single dashes.
func DeriveFilename(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "playbook.html"
	}
	return strings.Join(fields, "-") + ".html"
}

// ShareDocument distributes pb's redirector document: the platform sharer
// first, then a direct write under dir when the sheet is unavailable or
// dismissed. It returns the written path, or "" when the sharer took the
// document.
func (s *Service) ShareDocument(pb *playbook.Playbook, sharer Sharer, dir string) (string, error) {
	html, err := s.RedirectorHTML(pb)
	if err != nil {
		return "", err
	}
	filename := DeriveFilename(pb.Name)

	if sharer != nil {
		err := sharer.Share(filename, html)
		if err == nil {
			return "", nil
		}
		if !errors.Is(err, ErrShareSheetUnavailable) {
			return "", err
		}
		s.log.Debug().Msg("share sheet unavailable, falling back to download")
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", err
	}
	s.log.Info().Str("path", path).Msg("redirector document written")
	return path, nil
}
