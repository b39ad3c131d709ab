// internal/objects/blob.go
package objects

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/NahomAnteneh/gitlet/core"
	"github.com/NahomAnteneh/gitlet/utils"
)

// HashBlob returns the id a blob with the given content would have,
// without storing anything.
func HashBlob(content []byte) string {
	return utils.HashBytes("blob", content)
}

// CreateBlob stores a blob object and returns its id. Writing is
// idempotent: content already in the store is not rewritten, so two adds
// of identical content share one object.
func CreateBlob(repo *core.Repository, content []byte) (string, error) {
	hash := HashBlob(content)
	objectPath := filepath.Join(repo.BlobsDir, hash)
	if core.FileExists(objectPath) {
		return hash, nil
	}

	header := fmt.Sprintf("blob %d\x00", len(content))
	var buf bytes.Buffer
	buf.WriteString(header)
	buf.Write(content)

	compressed, err := compressZstd(buf.Bytes())
	if err != nil {
		return "", core.ObjectError("failed to compress blob", err)
	}

	if err := core.EnsureDirExists(repo.BlobsDir); err != nil {
		return "", err
	}
	if err := core.WriteFileAtomic(objectPath, compressed); err != nil {
		return "", core.ObjectError("failed to write blob file", err)
	}

	return hash, nil
}

// GetBlob retrieves a blob's content by its id.
func GetBlob(repo *core.Repository, hash string) ([]byte, error) {
	objectPath := filepath.Join(repo.BlobsDir, hash)
	compressed, err := os.ReadFile(objectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, core.ObjectError("failed to read blob file", err)
	}

	content, err := decompressZstd(compressed)
	if err != nil {
		return nil, core.ObjectError("failed to decompress blob", err)
	}

	headerEnd := bytes.IndexByte(content, '\x00')
	if headerEnd == -1 {
		return nil, core.ObjectError("invalid blob format: missing header", nil)
	}
	header := string(content[:headerEnd])
	payload := content[headerEnd+1:]
	if header != fmt.Sprintf("blob %d", len(payload)) {
		return nil, core.ObjectError(fmt.Sprintf("invalid blob header: %q", header), nil)
	}

	return payload, nil
}
