package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	// assetReferencesPath is the endpoint suffix for a video's asset references.
	assetReferencesPath = "asset-references"

	// assetTypeParam filters asset references by asset type.
	assetTypeParam = "assetType"

	// videoTypeParam filters videos by video type.
	videoTypeParam = "type"
)

// VideoDTO is video data as returned from the video service.
type VideoDTO struct {
	ContainerID    string `json:"containerId"`
	Description    string `json:"description"`
	ExpirationDate string `json:"expirationDate"`
	ID             string `json:"id"`
	PlaybackURL    string `json:"playbackUrl"`
	Title          string `json:"title"`
	Type           string `json:"type"`
}

// AssetReferenceDTO points a video at an advertisement or image asset.
type AssetReferenceDTO struct {
	AssetID   string `json:"assetId"`
	AssetType string `json:"assetType"`
	VideoID   string `json:"videoId"`
}

type videosEnvelope struct {
	Videos []VideoDTO `json:"videos"`
}

type videoAssetsEnvelope struct {
	VideoAssets []AssetReferenceDTO `json:"videoAssets"`
}

// VideoRepository fetches videos and their asset references from the video
// service.
type VideoRepository struct {
	client   *Client
	endpoint string
}

// NewVideoRepository returns a VideoRepository that fetches from the given
// list endpoint.
func NewVideoRepository(client *Client, endpoint string) *VideoRepository {
	return &VideoRepository{client: client, endpoint: endpoint}
}

// ListVideos lists all videos.
func (r *VideoRepository) ListVideos(ctx context.Context) ([]VideoDTO, error) {
	env, err := Get[videosEnvelope](ctx, r.client, r.endpoint, nil)
	if err != nil {
		return nil, err
	}
	return env.Videos, nil
}

// ListVideosByContainer lists videos for one container. An empty result is
// success, not an error.
func (r *VideoRepository) ListVideosByContainer(ctx context.Context, containerID int) ([]VideoDTO, error) {
	query := url.Values{}
	query.Set(containerIDParam, strconv.Itoa(containerID))

	env, err := Get[videosEnvelope](ctx, r.client, r.endpoint, query)
	if err != nil {
		return nil, err
	}
	return env.Videos, nil
}

// ListVideosByType lists all videos of the given type (CLIP, EPISODE, MOVIE).
func (r *VideoRepository) ListVideosByType(ctx context.Context, videoType string) ([]VideoDTO, error) {
	query := url.Values{}
	query.Set(videoTypeParam, videoType)

	env, err := Get[videosEnvelope](ctx, r.client, r.endpoint, query)
	if err != nil {
		return nil, err
	}
	return env.Videos, nil
}

// GetVideo fetches a single video by id. The single-video endpoint returns a
// bare object, not an envelope.
func (r *VideoRepository) GetVideo(ctx context.Context, videoID int) (VideoDTO, error) {
	return Get[VideoDTO](ctx, r.client, fmt.Sprintf("%s/%d", r.endpoint, videoID), nil)
}

// ListAssetReferences lists the asset references for one video.
func (r *VideoRepository) ListAssetReferences(ctx context.Context, videoID int) ([]AssetReferenceDTO, error) {
	endpoint := fmt.Sprintf("%s/%d/%s", r.endpoint, videoID, assetReferencesPath)

	env, err := Get[videoAssetsEnvelope](ctx, r.client, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return env.VideoAssets, nil
}

// ListAssetReferencesByType lists the asset references for one video filtered
// by asset type (AD or IMAGE).
func (r *VideoRepository) ListAssetReferencesByType(ctx context.Context, videoID int, assetType string) ([]AssetReferenceDTO, error) {
	endpoint := fmt.Sprintf("%s/%d/%s", r.endpoint, videoID, assetReferencesPath)
	query := url.Values{}
	query.Set(assetTypeParam, assetType)

	env, err := Get[videoAssetsEnvelope](ctx, r.client, endpoint, query)
	if err != nil {
		return nil, err
	}
	return env.VideoAssets, nil
}
