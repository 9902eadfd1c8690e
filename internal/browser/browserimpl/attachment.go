package browserimpl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
)

// attachmentKind is the closed set of attachment categories the composer
// supports. Adding a category means adding a variant here and a case in
// attachMedia; anything outside the set fails fast instead of silently
// skipping the upload.
type attachmentKind int

const (
	attachmentImage attachmentKind = iota
	attachmentDocument
	attachmentUnsupported
)

func classifyAttachment(mimeType string) attachmentKind {
	switch {
	case mimeType == "application/pdf":
		return attachmentDocument
	case strings.HasPrefix(mimeType, "image/"):
		return attachmentImage
	default:
		return attachmentUnsupported
	}
}

// materialize writes the in-memory asset to a temp file so it can be handed
// to DOM.setFileInputFiles, which only accepts paths. The caller removes it
// once the upload has been dispatched.
func materialize(a *domain.BinaryAsset) (string, error) {
	f, err := os.CreateTemp("", "autopilot-*"+filepath.Ext(a.Name))
	if err != nil {
		return "", fmt.Errorf("create temp attachment: %w", err)
	}
	if _, err := f.Write(a.Bytes); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp attachment: %w", err)
	}
	return f.Name(), nil
}
