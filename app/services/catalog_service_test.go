package services_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/app/services"
)

// memProducts is an in-memory ProductStore.
type memProducts struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{products: map[string]models.Product{}}
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	m.products[p.ID.Hex()] = *p
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, repositories.ErrNotFound
	}
	return p, nil
}

func (m *memProducts) List(_ context.Context, category string) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Product{}
	for _, p := range m.products {
		if category == "" || strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memProducts) Update(_ context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	m.products[p.ID.Hex()] = *p
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// memDisk is an in-memory storage.Disk.
type memDisk struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[path] = append([]byte(nil), content...)
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, data)
}

func (d *memDisk) Get(path string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.files[path]
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return data, nil
}

func (d *memDisk) GetStream(path string) (io.ReadCloser, error) {
	data, err := d.Get(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (d *memDisk) Exists(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.files[path]
	return ok
}

func (d *memDisk) Missing(path string) bool { return !d.Exists(path) }

func (d *memDisk) Size(path string) (int64, error) {
	data, err := d.Get(path)
	return int64(len(data)), err
}

func (d *memDisk) URL(path string) string { return "/uploads/" + path }

func (d *memDisk) Delete(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *memDisk) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

func upload(name string) *services.ImageUpload {
	return &services.ImageUpload{Filename: name, Content: strings.NewReader("fake image bytes")}
}

func newCatalogFixture() (*services.CatalogService, *memProducts, *memDisk) {
	products := newMemProducts()
	disk := newMemDisk()
	return services.NewCatalogService(products, disk), products, disk
}

func TestCreateProductWithImage(t *testing.T) {
	svc, _, disk := newCatalogFixture()

	p, err := svc.Create(context.Background(), services.CreateProductInput{
		Name:     "Gobi Decoration 1",
		Price:    10000,
		Category: "decoration",
		Image:    upload("stage photo.jpg"),
	})
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(p.ImageURL, "/uploads/"), p.ImageURL)
	assert.NotContains(t, p.ImageURL, " ", "filename must be sanitized")
	assert.True(t, strings.HasSuffix(p.ImageURL, ".jpg"))
	assert.Equal(t, 1, disk.count())
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.Create(context.Background(), services.CreateProductInput{Name: "Freebie", Price: 0})
	assert.True(t, services.IsValidation(err), "expected validation error, got %v", err)
}

func TestListFiltersCategoryCaseInsensitively(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	for _, cat := range []string{"decoration", "catering"} {
		_, err := svc.Create(ctx, services.CreateProductInput{Name: "x " + cat, Price: 100, Category: cat})
		require.NoError(t, err)
	}

	decor, err := svc.List(ctx, "Decoration")
	require.NoError(t, err)
	assert.Len(t, decor, 1)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateReplacingImageDeletesOldFile(t *testing.T) {
	svc, _, disk := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.Create(ctx, services.CreateProductInput{
		Name: "Venue", Price: 80000, Category: "venue", Image: upload("old.jpg"),
	})
	require.NoError(t, err)
	oldPath := strings.TrimPrefix(p.ImageURL, "/uploads/")

	updated, err := svc.Update(ctx, p.ID.Hex(), services.UpdateProductInput{
		Name: "Venue", Price: 85000, Category: "venue", Image: upload("new.jpg"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, p.ImageURL, updated.ImageURL)
	assert.False(t, disk.Exists(oldPath), "old image should be cleaned up")
	assert.Equal(t, 1, disk.count())
}

func TestUpdateWithoutImageKeepsCurrentFile(t *testing.T) {
	svc, _, disk := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.Create(ctx, services.CreateProductInput{
		Name: "Venue", Price: 80000, Category: "venue", Image: upload("keep.jpg"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, p.ID.Hex(), services.UpdateProductInput{
		Name: "Venue Deluxe", Price: 90000, Category: "venue",
	})
	require.NoError(t, err)
	assert.Equal(t, p.ImageURL, updated.ImageURL)
	assert.Equal(t, 1, disk.count())
}

func TestDeleteProductRemovesImageIdempotently(t *testing.T) {
	svc, _, disk := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.Create(ctx, services.CreateProductInput{
		Name: "Venue", Price: 80000, Category: "venue", Image: upload("gone.jpg"),
	})
	require.NoError(t, err)

	// Remove the blob out-of-band first; delete must still succeed.
	require.NoError(t, disk.Delete(strings.TrimPrefix(p.ImageURL, "/uploads/")))
	require.NoError(t, svc.Delete(ctx, p.ID.Hex()))
	assert.Equal(t, 0, disk.count())

	assert.ErrorIs(t, svc.Delete(ctx, p.ID.Hex()), services.ErrNotFound)
}

func TestGetMissingProduct(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, services.ErrNotFound)
}
