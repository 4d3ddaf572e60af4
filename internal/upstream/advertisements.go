package upstream

import (
	"context"
	"net/url"
	"strconv"
)

// containerIDParam is the query parameter upstream list endpoints use for
// filtering by container.
const containerIDParam = "containerId"

// AdvertisementDTO is advertisement data as returned from the advertisement
// service. All identifiers are transmitted as numeric-looking strings.
type AdvertisementDTO struct {
	ContainerID string `json:"containerId"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
}

// advertisementsEnvelope is the single-field wrapper object the advertisement
// list endpoint wraps its payload in.
type advertisementsEnvelope struct {
	Advertisements []AdvertisementDTO `json:"advertisements"`
}

// AdvertisementRepository fetches advertisements from the advertisement service.
type AdvertisementRepository struct {
	client   *Client
	endpoint string
}

// NewAdvertisementRepository returns an AdvertisementRepository that fetches
// from the given list endpoint.
func NewAdvertisementRepository(client *Client, endpoint string) *AdvertisementRepository {
	return &AdvertisementRepository{client: client, endpoint: endpoint}
}

// ListAdvertisements lists all advertisements.
func (r *AdvertisementRepository) ListAdvertisements(ctx context.Context) ([]AdvertisementDTO, error) {
	env, err := Get[advertisementsEnvelope](ctx, r.client, r.endpoint, nil)
	if err != nil {
		return nil, err
	}
	return env.Advertisements, nil
}

// ListAdvertisementsByContainer lists advertisements for one container.
// An empty result is success, not an error.
func (r *AdvertisementRepository) ListAdvertisementsByContainer(ctx context.Context, containerID int) ([]AdvertisementDTO, error) {
	query := url.Values{}
	query.Set(containerIDParam, strconv.Itoa(containerID))

	env, err := Get[advertisementsEnvelope](ctx, r.client, r.endpoint, query)
	if err != nil {
		return nil, err
	}
	return env.Advertisements, nil
}
