package snippet

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/ozenlabs/ozenembed/internal/utils"
)

// DataURLSoftLimit is the raw audio size above which data URL embeds start to
// hurt: browsers cap data URI length and notebook files balloon. Generation
// still proceeds past it; callers should warn.
const DataURLSoftLimit = 1536 * 1024

// DataURL encodes an audio file as a base64 data URL and reports the raw file
// size in bytes. The MIME type comes from the file extension.
func DataURL(audioPath string) (string, int64, error) {
	if !utils.FileExists(audioPath) {
		return "", 0, fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", 0, fmt.Errorf("read audio: %w", err)
	}

	contentType := utils.AudioContentType(audioPath)
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("data:%s;base64,%s", contentType, encoded), int64(len(data)), nil
}
