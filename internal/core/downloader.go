package core

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pap/internal/ports"
	"pap/internal/types"
)

type DownloadResult struct {
	Path   string
	Bytes  int64
	Digest types.Digest
}

// Downloader streams an artifact to the store while hashing it in the same
// pass, then checks the digest the registry declared for the file.
type Downloader struct {
	Streams ports.StreamOpener
	Store   ports.ArtifactStorePort
	FanOut  FanOut
}

func NewDownloader(streams ports.StreamOpener, store ports.ArtifactStorePort) Downloader {
	return Downloader{
		Streams: streams,
		Store:   store,
		FanOut:  NewFanOut(defaultChunkSize),
	}
}

// NewDigester returns a fresh hash for a registry digest algorithm name.
func NewDigester(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(strings.TrimSpace(algorithm)) {
	case "sha512":
		return sha512.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha1":
		return sha1.New(), nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported digest algorithm %q", algorithm))
	}
}

// DownloadAndVerify writes file to the store under its registry file name.
// The file is written in full before the digest is compared, and it is left
// in place when the digest does not match.
func (d Downloader) DownloadAndVerify(ctx context.Context, file types.FileDescriptor) (DownloadResult, error) {
	if d.Streams == nil || d.Store == nil {
		return DownloadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("downloader requires a stream source and an artifact store")
	}
	declared := file.Digest()
	if declared.IsZero() {
		return DownloadResult{}, types.NewKindError(types.ErrKindHashMismatch, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("registry declares no supported digest for %s", file.Filename)))
	}
	hasher, err := NewDigester(declared.Algorithm)
	if err != nil {
		return DownloadResult{}, err
	}

	body, err := d.Streams.Stream(ctx, file.URL)
	if err != nil {
		return DownloadResult{}, err
	}
	defer body.Close()

	out, path, err := d.Store.Create(file.Filename)
	if err != nil {
		return DownloadResult{}, err
	}
	written, copyErr := d.FanOut.Copy(ctx, body, out, hasher)
	closeErr := out.Close()
	if copyErr != nil {
		return DownloadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to download %s", file.Filename)).
			WithCause(copyErr)
	}
	if closeErr != nil {
		return DownloadResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to write %s", path)).
			WithCause(closeErr)
	}

	computed := hex.EncodeToString(hasher.Sum(nil))
	result := DownloadResult{
		Path:   path,
		Bytes:  written,
		Digest: types.Digest{Algorithm: declared.Algorithm, Value: computed},
	}
	if computed != declared.Value {
		return result, types.NewKindError(types.ErrKindHashMismatch, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("hashes do not match for %s: %s expected %s got %s",
				file.Filename, declared.Algorithm, declared.Value, computed)))
	}
	log.Ctx(ctx).Debug().
		Str("path", path).
		Int64("bytes", written).
		Str("algorithm", declared.Algorithm).
		Msg("artifact verified")
	return result, nil
}
