package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/simple-tourism/pkg/tourism"
)

// fakeAPI keeps objects in memory. Multipart methods come from the nil
// embedded API and are never reached for small bodies.
type fakeAPI struct {
	API

	mu      sync.Mutex
	objects map[string][]byte
	headErr error
	getErr  error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objects: make(map[string][]byte)}
}

func (f *fakeAPI) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	body, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(Config{Region: "us-east-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket name is required")
}

func TestStore_Key(t *testing.T) {
	assert.Equal(t, "attractions.json", NewWithClient(newFakeAPI(), "b", "").Key(tourism.CollectionAttractions))
	assert.Equal(t, "content/v1/beaches.json", NewWithClient(newFakeAPI(), "b", "/content/v1/").Key(tourism.CollectionBeaches))
}

func TestStore_Ping(t *testing.T) {
	api := newFakeAPI()
	store := NewWithClient(api, "tourism", "")

	assert.NoError(t, store.Ping(context.Background()))

	api.headErr = errors.New("forbidden")
	err := store.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tourism")
}

func TestStore_ReadCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("missing object is empty", func(t *testing.T) {
		got, err := NewWithClient(newFakeAPI(), "tourism", "").ReadCollection(ctx, tourism.CollectionBeaches)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("decodes documents in order", func(t *testing.T) {
		api := newFakeAPI()
		api.objects["seed/attractions.json"] = []byte(`[
			{"id": "2", "name": "Oslob", "rating": 4.6},
			{"id": "1", "name": "Kawasan Falls", "image": "https://img.example/k.jpg"}
		]`)

		got, err := NewWithClient(api, "tourism", "seed").ReadCollection(ctx, tourism.CollectionAttractions)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2", got[0].ID)
		assert.NotContains(t, got[0].Fields, "id")
		assert.Equal(t, 4.6, got[0].Fields["rating"])
		assert.Equal(t, "https://img.example/k.jpg", got[1].Fields["image"])
	})

	t.Run("malformed object", func(t *testing.T) {
		api := newFakeAPI()
		api.objects["attractions.json"] = []byte(`{"not": "an array"}`)

		_, err := NewWithClient(api, "tourism", "").ReadCollection(ctx, tourism.CollectionAttractions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("document without id", func(t *testing.T) {
		api := newFakeAPI()
		api.objects["attractions.json"] = []byte(`[{"name": "Nameless"}]`)

		_, err := NewWithClient(api, "tourism", "").ReadCollection(ctx, tourism.CollectionAttractions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no string id")
	})

	t.Run("transport error", func(t *testing.T) {
		api := newFakeAPI()
		api.getErr = errors.New("connection refused")

		_, err := NewWithClient(api, "tourism", "").ReadCollection(ctx, tourism.CollectionAttractions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestStore_WriteCollection(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	store := NewWithClient(api, "tourism", "seed")

	records := []tourism.Record{
		{ID: "d1", Fields: map[string]any{"name": "Moalboal", "location": "Moalboal, Cebu"}},
		{ID: "d2", Fields: map[string]any{"name": "Bantayan Island"}},
	}
	require.NoError(t, store.WriteCollection(ctx, tourism.CollectionDestinations, records))
	assert.Contains(t, api.objects, "seed/destinations.json")

	got, err := store.ReadCollection(ctx, tourism.CollectionDestinations)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	err = store.WriteCollection(ctx, tourism.CollectionDestinations, []tourism.Record{{Fields: map[string]any{"name": "x"}}})
	assert.Error(t, err)
}

func TestStore_ThroughGateway(t *testing.T) {
	ctx := context.Background()
	api := newFakeAPI()
	api.headErr = errors.New("no route to host")

	gateway, err := tourism.NewGateway(tourism.WithStore(NewWithClient(api, "tourism", "")))
	require.NoError(t, err)

	env := gateway.FetchCollection(ctx, tourism.CollectionAttractions)
	assert.False(t, env.Success)
	assert.Equal(t, "backend unavailable", env.Error)

	api.headErr = nil
	env = gateway.FetchCollection(ctx, tourism.CollectionAttractions)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
}

// TestStore_Integration runs against a real S3-compatible endpoint
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("TEST_S3_ENDPOINT")
	if endpoint == "" {
		t.Skip("TEST_S3_ENDPOINT not set")
	}

	store, err := New(Config{
		Region:          "us-east-1",
		Bucket:          envOr("TEST_S3_BUCKET", "tourism-test"),
		Prefix:          "integration",
		AccessKeyID:     envOr("TEST_S3_ACCESS_KEY_ID", "minioadmin"),
		SecretAccessKey: envOr("TEST_S3_SECRET_ACCESS_KEY", "minioadmin"),
		Endpoint:        endpoint,
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	records, err := tourism.ItemsToRecords(tourism.DefaultCatalog().Popular())
	require.NoError(t, err)
	require.NoError(t, store.WriteCollection(ctx, tourism.CollectionDestinations, records))

	got, err := store.ReadCollection(ctx, tourism.CollectionDestinations)
	require.NoError(t, err)
	assert.Len(t, got, len(records))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
