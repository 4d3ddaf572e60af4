package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdvertisementRepository_ListAdvertisementsByContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("containerId"); got != "5" {
			t.Errorf("expected containerId=5, got %q", got)
		}
		w.Write([]byte(`{"advertisements":[{"containerId":"5","id":"9","name":"A","url":"http://x"}]}`))
	}))
	defer srv.Close()

	repo := NewAdvertisementRepository(newTestClient(t), srv.URL)
	ads, err := repo.ListAdvertisementsByContainer(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListAdvertisementsByContainer: %v", err)
	}
	if len(ads) != 1 {
		t.Fatalf("expected 1 advertisement, got %d", len(ads))
	}
	want := AdvertisementDTO{ContainerID: "5", ID: "9", Name: "A", URL: "http://x"}
	if ads[0] != want {
		t.Errorf("expected %+v, got %+v", want, ads[0])
	}
}

func TestAdvertisementRepository_ListAdvertisements_empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("full listing should carry no query, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"advertisements":[]}`))
	}))
	defer srv.Close()

	repo := NewAdvertisementRepository(newTestClient(t), srv.URL)
	ads, err := repo.ListAdvertisements(context.Background())
	if err != nil {
		t.Fatalf("ListAdvertisements: %v", err)
	}
	if len(ads) != 0 {
		t.Errorf("expected empty list, got %d entries", len(ads))
	}
}

func TestImageRepository_ListImagesByContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":[{"containerId":"7","id":"20","name":"poster","url":"http://img"}]}`))
	}))
	defer srv.Close()

	repo := NewImageRepository(newTestClient(t), srv.URL)
	images, err := repo.ListImagesByContainer(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListImagesByContainer: %v", err)
	}
	if len(images) != 1 || images[0].ID != "20" {
		t.Errorf("unexpected images: %+v", images)
	}
}

func TestVideoRepository_GetVideo_bare_object(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/1301" {
			t.Errorf("expected path /1301, got %q", r.URL.Path)
		}
		w.Write([]byte(`{"containerId":"25","description":"d","expirationDate":"","id":"1301","playbackUrl":"/p.m3u8","title":"My Family","type":"CLIP"}`))
	}))
	defer srv.Close()

	repo := NewVideoRepository(newTestClient(t), srv.URL)
	video, err := repo.GetVideo(context.Background(), 1301)
	if err != nil {
		t.Fatalf("GetVideo: %v", err)
	}
	if video.ID != "1301" || video.Type != "CLIP" || video.ContainerID != "25" {
		t.Errorf("unexpected video: %+v", video)
	}
}

func TestVideoRepository_ListAssetReferences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/100/asset-references" {
			t.Errorf("expected path /100/asset-references, got %q", r.URL.Path)
		}
		w.Write([]byte(`{"videoAssets":[{"assetId":"120","assetType":"IMAGE","videoId":"100"}]}`))
	}))
	defer srv.Close()

	repo := NewVideoRepository(newTestClient(t), srv.URL)
	refs, err := repo.ListAssetReferences(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListAssetReferences: %v", err)
	}
	if len(refs) != 1 || refs[0].AssetID != "120" || refs[0].AssetType != "IMAGE" {
		t.Errorf("unexpected refs: %+v", refs)
	}
}

func TestVideoRepository_ListAssetReferencesByType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("assetType"); got != "AD" {
			t.Errorf("expected assetType=AD, got %q", got)
		}
		w.Write([]byte(`{"videoAssets":[]}`))
	}))
	defer srv.Close()

	repo := NewVideoRepository(newTestClient(t), srv.URL)
	refs, err := repo.ListAssetReferencesByType(context.Background(), 100, "AD")
	if err != nil {
		t.Fatalf("ListAssetReferencesByType: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("expected empty refs, got %+v", refs)
	}
}

func TestVideoRepository_ListVideosByType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "MOVIE" {
			t.Errorf("expected type=MOVIE, got %q", got)
		}
		w.Write([]byte(`{"videos":[]}`))
	}))
	defer srv.Close()

	repo := NewVideoRepository(newTestClient(t), srv.URL)
	if _, err := repo.ListVideosByType(context.Background(), "MOVIE"); err != nil {
		t.Fatalf("ListVideosByType: %v", err)
	}
}
