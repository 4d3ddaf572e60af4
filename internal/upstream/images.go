package upstream

import (
	"context"
	"net/url"
	"strconv"
)

// ImageDTO is image data as returned from the image service.
type ImageDTO struct {
	ContainerID string `json:"containerId"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
}

type imagesEnvelope struct {
	Images []ImageDTO `json:"images"`
}

// ImageRepository fetches images from the image service.
type ImageRepository struct {
	client   *Client
	endpoint string
}

// NewImageRepository returns an ImageRepository that fetches from the given
// list endpoint.
func NewImageRepository(client *Client, endpoint string) *ImageRepository {
	return &ImageRepository{client: client, endpoint: endpoint}
}

// ListImages lists all images.
func (r *ImageRepository) ListImages(ctx context.Context) ([]ImageDTO, error) {
	env, err := Get[imagesEnvelope](ctx, r.client, r.endpoint, nil)
	if err != nil {
		return nil, err
	}
	return env.Images, nil
}

// ListImagesByContainer lists images for one container. An empty result is
// success, not an error.
func (r *ImageRepository) ListImagesByContainer(ctx context.Context, containerID int) ([]ImageDTO, error) {
	query := url.Values{}
	query.Set(containerIDParam, strconv.Itoa(containerID))

	env, err := Get[imagesEnvelope](ctx, r.client, r.endpoint, query)
	if err != nil {
		return nil, err
	}
	return env.Images, nil
}
