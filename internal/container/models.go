package container

import (
	"fmt"
	"strconv"
	"strings"

	"rocket-container/internal/upstream"
)

// AssetType is the kind of asset an AssetReference points at.
type AssetType string

const (
	AssetTypeAd    AssetType = "AD"
	AssetTypeImage AssetType = "IMAGE"
)

// VideoType distinguishes short clips, TV length episodes, and full length
// movies.
type VideoType string

const (
	VideoTypeClip    VideoType = "CLIP"
	VideoTypeEpisode VideoType = "EPISODE"
	VideoTypeMovie   VideoType = "MOVIE"
)

// Advertisement is the internal form of an upstream advertisement: the id is
// a plain integer and the owning container id becomes the grouping key rather
// than a payload field.
type Advertisement struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Image is the internal form of an upstream image.
type Image struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AssetReference points at an Advertisement or Image record without owning
// it. It lives only nested inside a Video.
type AssetReference struct {
	AssetID   int       `json:"assetId"`
	AssetType AssetType `json:"assetType"`
}

// Video is the internal form of an upstream video, carrying the asset
// references resolved from the video service's asset-reference endpoint.
type Video struct {
	Assets         []AssetReference `json:"assets"`
	Description    string           `json:"description"`
	ExpirationDate string           `json:"expirationDate"`
	ID             int              `json:"id"`
	PlaybackURL    string           `json:"playbackUrl"`
	Title          string           `json:"title"`
	Type           VideoType        `json:"type"`
}

// Container is the aggregate of advertisements, images, and videos for one
// logical grouping (e.g. a show or series). Containers are immutable after
// construction and safe to hand to multiple callers by value.
type Container struct {
	Ads    []Advertisement `json:"ads"`
	ID     int             `json:"id"`
	Images []Image         `json:"images"`
	Title  string          `json:"title"`
	Videos []Video         `json:"videos"`
}

// newContainer builds a Container, deriving the title from the id and which
// lists are populated: "container-<id>" plus "_ads" and "_images" suffixes
// when those lists are non-empty, always ending in "_videos".
func newContainer(id int, ads []Advertisement, images []Image, videos []Video) Container {
	var title strings.Builder
	fmt.Fprintf(&title, "container-%d", id)
	if len(ads) > 0 {
		title.WriteString("_ads")
	}
	if len(images) > 0 {
		title.WriteString("_images")
	}
	title.WriteString("_videos")

	// Empty lists must serialize as [] rather than null.
	if ads == nil {
		ads = []Advertisement{}
	}
	if images == nil {
		images = []Image{}
	}
	if videos == nil {
		videos = []Video{}
	}

	return Container{
		Ads:    ads,
		ID:     id,
		Images: images,
		Title:  title.String(),
		Videos: videos,
	}
}

// parseID parses a numeric-looking string identifier. Upstream transmits all
// ids as strings; a value that does not parse is a permanent decode failure.
func parseID(s, field string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, upstream.NewPermanent(fmt.Sprintf("malformed %s %q", field, s), err)
	}
	return id, nil
}

// advertisementFromDTO maps a raw advertisement into its domain form.
func advertisementFromDTO(dto upstream.AdvertisementDTO) (Advertisement, error) {
	id, err := parseID(dto.ID, "advertisement id")
	if err != nil {
		return Advertisement{}, err
	}
	return Advertisement{ID: id, Name: dto.Name, URL: dto.URL}, nil
}

// imageFromDTO maps a raw image into its domain form.
func imageFromDTO(dto upstream.ImageDTO) (Image, error) {
	id, err := parseID(dto.ID, "image id")
	if err != nil {
		return Image{}, err
	}
	return Image{ID: id, Name: dto.Name, URL: dto.URL}, nil
}

// assetReferenceFromDTO maps a raw asset reference into its domain form.
func assetReferenceFromDTO(dto upstream.AssetReferenceDTO) (AssetReference, error) {
	id, err := parseID(dto.AssetID, "asset id")
	if err != nil {
		return AssetReference{}, err
	}
	switch AssetType(dto.AssetType) {
	case AssetTypeAd, AssetTypeImage:
	default:
		return AssetReference{}, upstream.NewPermanent(fmt.Sprintf("unknown asset type %q", dto.AssetType), nil)
	}
	return AssetReference{AssetID: id, AssetType: AssetType(dto.AssetType)}, nil
}

// videoFromDTO maps a raw video into its domain form. Asset references are
// attached separately by the service once resolved.
func videoFromDTO(dto upstream.VideoDTO) (Video, error) {
	id, err := parseID(dto.ID, "video id")
	if err != nil {
		return Video{}, err
	}
	switch VideoType(dto.Type) {
	case VideoTypeClip, VideoTypeEpisode, VideoTypeMovie:
	default:
		return Video{}, upstream.NewPermanent(fmt.Sprintf("unknown video type %q", dto.Type), nil)
	}
	return Video{
		Assets:         []AssetReference{},
		Description:    dto.Description,
		ExpirationDate: dto.ExpirationDate,
		ID:             id,
		PlaybackURL:    dto.PlaybackURL,
		Title:          dto.Title,
		Type:           VideoType(dto.Type),
	}, nil
}
