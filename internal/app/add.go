package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"pap/internal/core"
)

// Add resolves the request and downloads the selected artifact, verifying
// it against the registry digest. On a digest mismatch the written file is
// left in place and the mismatch error is returned.
func (s Service) Add(ctx context.Context, req AddRequest) (AddResult, error) {
	resolved, err := s.Resolve(ctx, req.ResolveRequest)
	if err != nil {
		return AddResult{}, err
	}
	downloader := core.NewDownloader(s.Registry, s.Store)
	download, err := downloader.DownloadAndVerify(ctx, resolved.Artifact)
	if err != nil {
		return AddResult{}, err
	}
	log.Ctx(ctx).Info().
		Str("path", download.Path).
		Int64("bytes", download.Bytes).
		Msg("installed")
	return AddResult{
		ResolveResult: resolved,
		Path:          download.Path,
		Bytes:         download.Bytes,
		Digest:        download.Digest,
	}, nil
}
