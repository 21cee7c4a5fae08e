package uploads

import (
	"fmt"
	"path/filepath"
	"strings"

	"clipvault/internal/catalog"
	"clipvault/internal/services"
	"clipvault/internal/storage"
)

// allowedExtensions is matched on the lowercased filename extension only;
// content sniffing is out of scope.
var allowedExtensions = map[string]struct{}{
	".mp4": {},
	".mov": {},
	".avi": {},
	".mkv": {},
}

// UploadRequest carries everything needed to admit one video into the
// catalog, regardless of which flow delivers the bytes.
type UploadRequest struct {
	FileName    string
	FileSize    int64
	ContentType string
	Type        catalog.VideoType
	PlayerIDs   []int64
}

func validationError(operation, msg string) error {
	return services.Wrap(services.ErrValidation, "uploads", operation, "",
		services.WithUserMessage(msg, nil))
}

// validateRequest checks the request against the given size ceiling and
// returns the normalized storage key.
func validateRequest(operation string, req UploadRequest, maxBytes int64) (string, error) {
	key := storage.NormalizeKey(req.FileName)
	if err := storage.ValidateKey(key); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(key))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", validationError(operation, "unsupported file type")
	}
	if req.FileSize <= 0 {
		return "", validationError(operation, "file size is required")
	}
	if maxBytes > 0 && req.FileSize > maxBytes {
		return "", validationError(operation,
			fmt.Sprintf("file size must be %dMB or less", maxBytes/(1024*1024)))
	}
	if !catalog.ValidVideoType(string(req.Type)) {
		return "", validationError(operation, "invalid video type")
	}
	if len(req.PlayerIDs) == 0 {
		return "", validationError(operation, "at least one player is required")
	}
	return key, nil
}
