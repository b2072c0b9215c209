// Package media stores uploaded files and reads video metadata.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	apperrors "github.com/Taichi-iskw/vidshare/internal/errors"
)

// Kind selects where an upload is stored and how it is inspected
type Kind string

const (
	KindVideo     Kind = "video"
	KindThumbnail Kind = "thumbnail"
	KindAvatar    Kind = "avatar"
	KindCover     Kind = "cover"
)

// Object is a stored upload
type Object struct {
	// Ref is the URL the object is served from
	Ref string
	// DurationSeconds is set for videos
	DurationSeconds float64
}

// Store uploads local files and returns their reference
type Store interface {
	Put(ctx context.Context, kind Kind, localPath string) (*Object, error)
}

// ProbeFunc reads the duration in seconds of a media file
type ProbeFunc func(path string) (float64, error)

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration reads the container duration with ffprobe
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeExternal, "failed to probe media with ffprobe")
	}
	return parseProbe([]byte(out))
}

func parseProbe(out []byte) (float64, error) {
	var parsed probeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeExternal, "failed to parse ffprobe output")
	}
	if parsed.Format.Duration == "" {
		return 0, apperrors.New(apperrors.CodeInvalidArg, "media file has no duration")
	}
	seconds, err := strconv.ParseFloat(parsed.Format.Duration, 64)
	if err != nil || seconds < 0 {
		return 0, apperrors.Wrap(err, apperrors.CodeExternal, fmt.Sprintf("invalid duration %q", parsed.Format.Duration))
	}
	return seconds, nil
}

// disabledStore rejects every upload
type disabledStore struct{}

// Disabled returns a Store for deployments without object storage. Operations
// that upload media fail with an invalid-argument error.
func Disabled() Store {
	return disabledStore{}
}

func (disabledStore) Put(_ context.Context, kind Kind, _ string) (*Object, error) {
	return nil, apperrors.New(apperrors.CodeInvalidArg, fmt.Sprintf("cannot store %s: storage endpoint is not configured", kind))
}
