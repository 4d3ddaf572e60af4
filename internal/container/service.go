package container

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"rocket-container/internal/platform/metrics"
	"rocket-container/internal/upstream"
)

// assetFetchConcurrency bounds how many per-video asset-reference fetches are
// in flight at once for a single request.
const assetFetchConcurrency = 8

// AdvertisementSource fetches raw advertisements from the advertisement
// service. Implemented by upstream.AdvertisementRepository.
type AdvertisementSource interface {
	ListAdvertisements(ctx context.Context) ([]upstream.AdvertisementDTO, error)
	ListAdvertisementsByContainer(ctx context.Context, containerID int) ([]upstream.AdvertisementDTO, error)
}

// ImageSource fetches raw images from the image service. Implemented by
// upstream.ImageRepository.
type ImageSource interface {
	ListImages(ctx context.Context) ([]upstream.ImageDTO, error)
	ListImagesByContainer(ctx context.Context, containerID int) ([]upstream.ImageDTO, error)
}

// VideoSource fetches raw videos and asset references from the video service.
// Implemented by upstream.VideoRepository.
type VideoSource interface {
	ListVideos(ctx context.Context) ([]upstream.VideoDTO, error)
	ListVideosByContainer(ctx context.Context, containerID int) ([]upstream.VideoDTO, error)
	GetVideo(ctx context.Context, videoID int) (upstream.VideoDTO, error)
	ListAssetReferences(ctx context.Context, videoID int) ([]upstream.AssetReferenceDTO, error)
}

// Service aggregates data from the three upstream services into containers by
// container id. Assembly is all-or-nothing: any upstream error (after the
// fetch client's own retries) aborts the whole operation, and a failed
// assembly never populates the cache.
type Service struct {
	ads     AdvertisementSource
	images  ImageSource
	videos  VideoSource
	cache   *Cache
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewService returns a Service that fetches from the given sources and
// memoizes assembled containers in cache. Metrics may be nil.
func NewService(ads AdvertisementSource, images ImageSource, videos VideoSource, cache *Cache, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{ads: ads, images: images, videos: videos, cache: cache, log: log, metrics: m}
}

// GetContainer returns the container with the given id, serving repeat
// lookups from the cache. On a miss the three upstream lists are fetched
// concurrently, filtered to the container id, and assembled; empty ad, image,
// or video lists are success, not failure.
func (s *Service) GetContainer(ctx context.Context, containerID int) (Container, error) {
	return s.cache.GetOrLoad(containerID, func() (Container, error) {
		return s.assembleContainer(ctx, containerID)
	})
}

// ListContainers fetches the entire unfiltered list from each upstream,
// groups each by container id, and assembles one container per id present in
// the video group. Videos define which containers exist, so ids present only
// in the ad or image groups are dropped. Ad and image buckets default to
// empty lists when absent. Every assembled container is put into the cache.
// The order of the returned slice is not guaranteed.
func (s *Service) ListContainers(ctx context.Context) ([]Container, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		adGroups    map[int][]Advertisement
		imageGroups map[int][]Image
		videoGroups map[int][]Video
	)

	g.Go(func() error {
		var err error
		adGroups, err = s.groupAdvertisements(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		imageGroups, err = s.groupImages(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		videoGroups, err = s.groupVideos(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	containers := make([]Container, 0, len(videoGroups))
	for containerID, videos := range videoGroups {
		containers = append(containers, newContainer(containerID, adGroups[containerID], imageGroups[containerID], videos))
		if s.metrics != nil {
			s.metrics.IncContainersAssembled()
		}
	}

	s.cache.PutMany(containers)
	s.log.Debug("assembled catalog", slog.Int("containers", len(containers)))

	return containers, nil
}

// ListAdvertisements returns the advertisements for one container.
func (s *Service) ListAdvertisements(ctx context.Context, containerID int) ([]Advertisement, error) {
	dtos, err := s.ads.ListAdvertisementsByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return mapAdvertisements(dtos)
}

// ListImages returns the images for one container.
func (s *Service) ListImages(ctx context.Context, containerID int) ([]Image, error) {
	dtos, err := s.images.ListImagesByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return mapImages(dtos)
}

// ListVideos returns the videos for one container, each with its asset
// references resolved.
func (s *Service) ListVideos(ctx context.Context, containerID int) ([]Video, error) {
	dtos, err := s.videos.ListVideosByContainer(ctx, containerID)
	if err != nil {
		return nil, err
	}
	return s.resolveVideos(ctx, dtos)
}

// GetVideo returns a single video with its asset references resolved.
func (s *Service) GetVideo(ctx context.Context, videoID int) (Video, error) {
	dto, err := s.videos.GetVideo(ctx, videoID)
	if err != nil {
		return Video{}, err
	}
	videos, err := s.resolveVideos(ctx, []upstream.VideoDTO{dto})
	if err != nil {
		return Video{}, err
	}
	return videos[0], nil
}

// assembleContainer fetches ads, images, and videos filtered to containerID
// concurrently and joins them into one Container. The three fetches are
// independent; all must complete successfully before assembly completes, and
// the first error aborts the whole assembly.
func (s *Service) assembleContainer(ctx context.Context, containerID int) (Container, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		ads    []Advertisement
		images []Image
		videos []Video
	)

	g.Go(func() error {
		var err error
		ads, err = s.ListAdvertisements(gctx, containerID)
		return err
	})
	g.Go(func() error {
		var err error
		images, err = s.ListImages(gctx, containerID)
		return err
	})
	g.Go(func() error {
		var err error
		videos, err = s.ListVideos(gctx, containerID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Container{}, err
	}

	if s.metrics != nil {
		s.metrics.IncContainersAssembled()
	}
	s.log.Debug("assembled container",
		slog.Int("container_id", containerID),
		slog.Int("ads", len(ads)),
		slog.Int("images", len(images)),
		slog.Int("videos", len(videos)))

	return newContainer(containerID, ads, images, videos), nil
}

// resolveVideos maps raw videos into domain form and attaches each video's
// asset references, fetched with bounded concurrency. The returned slice
// preserves the order of dtos.
func (s *Service) resolveVideos(ctx context.Context, dtos []upstream.VideoDTO) ([]Video, error) {
	videos := make([]Video, len(dtos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(assetFetchConcurrency)

	for i, dto := range dtos {
		g.Go(func() error {
			video, err := videoFromDTO(dto)
			if err != nil {
				return err
			}

			refs, err := s.videos.ListAssetReferences(gctx, video.ID)
			if err != nil {
				return err
			}
			assets := make([]AssetReference, 0, len(refs))
			for _, ref := range refs {
				asset, err := assetReferenceFromDTO(ref)
				if err != nil {
					return err
				}
				assets = append(assets, asset)
			}

			video.Assets = assets
			videos[i] = video
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return videos, nil
}

// groupAdvertisements fetches all advertisements and buckets them by the
// container id they belong to.
func (s *Service) groupAdvertisements(ctx context.Context) (map[int][]Advertisement, error) {
	dtos, err := s.ads.ListAdvertisements(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair[int, Advertisement], 0, len(dtos))
	for _, dto := range dtos {
		containerID, err := parseID(dto.ContainerID, "advertisement containerId")
		if err != nil {
			return nil, err
		}
		ad, err := advertisementFromDTO(dto)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair[int, Advertisement]{containerID, ad})
	}
	return group(pairs), nil
}

// groupImages fetches all images and buckets them by container id.
func (s *Service) groupImages(ctx context.Context) (map[int][]Image, error) {
	dtos, err := s.images.ListImages(ctx)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair[int, Image], 0, len(dtos))
	for _, dto := range dtos {
		containerID, err := parseID(dto.ContainerID, "image containerId")
		if err != nil {
			return nil, err
		}
		image, err := imageFromDTO(dto)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair[int, Image]{containerID, image})
	}
	return group(pairs), nil
}

// groupVideos fetches all videos, resolves their asset references, and
// buckets them by container id.
func (s *Service) groupVideos(ctx context.Context) (map[int][]Video, error) {
	dtos, err := s.videos.ListVideos(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := s.resolveVideos(ctx, dtos)
	if err != nil {
		return nil, err
	}

	pairs := make([]pair[int, Video], 0, len(videos))
	for i, video := range videos {
		containerID, err := parseID(dtos[i].ContainerID, "video containerId")
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, pair[int, Video]{containerID, video})
	}
	return group(pairs), nil
}

// mapAdvertisements converts raw advertisements to domain form, preserving
// upstream response order.
func mapAdvertisements(dtos []upstream.AdvertisementDTO) ([]Advertisement, error) {
	ads := make([]Advertisement, 0, len(dtos))
	for _, dto := range dtos {
		ad, err := advertisementFromDTO(dto)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, nil
}

// mapImages converts raw images to domain form, preserving upstream response
// order.
func mapImages(dtos []upstream.ImageDTO) ([]Image, error) {
	images := make([]Image, 0, len(dtos))
	for _, dto := range dtos {
		image, err := imageFromDTO(dto)
		if err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, nil
}
