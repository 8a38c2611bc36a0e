package service

import (
	"context"
	"testing"
	"time"

	"geocoding-cache/internal/models"
	"geocoding-cache/internal/nominatim"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCacheRepository is a mock implementation of the CacheRepository interface
type MockCacheRepository struct {
	mock.Mock
}

// GetEntry implements CacheRepository.
func (m *MockCacheRepository) GetEntry(ctx context.Context, key string) (*models.CacheEntry, error) {
	args := m.Called(ctx, key)
	entry, _ := args.Get(0).(*models.CacheEntry)
	return entry, args.Error(1)
}

// UpsertCoordinates implements CacheRepository.
func (m *MockCacheRepository) UpsertCoordinates(ctx context.Context, key string, coords models.Coordinates) error {
	args := m.Called(ctx, key, coords)
	return args.Error(0)
}

// MockAddressLookup is a mock implementation of the AddressLookup interface
type MockAddressLookup struct {
	mock.Mock
}

// Search implements AddressLookup.
func (m *MockAddressLookup) Search(ctx context.Context, query string, limit int) ([]nominatim.Place, error) {
	args := m.Called(ctx, query, limit)
	places, _ := args.Get(0).([]nominatim.Place)
	return places, args.Error(1)
}

func newResolveService(cache *MockCacheRepository, lookup *MockAddressLookup) *ResolveService {
	return NewResolveService(cache, lookup, zerolog.Nop())
}

func cachedEntry(key string, lat, lon float64) *models.CacheEntry {
	return &models.CacheEntry{Key: key, Latitude: lat, Longitude: lon, UpdatedAt: time.Now()}
}

func TestResolveService_GeocodeAddress_EmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{name: "empty string", address: ""},
		{name: "whitespace only", address: "   \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(MockCacheRepository)
			mockLookup := new(MockAddressLookup)
			svc := newResolveService(mockCache, mockLookup)

			coords := svc.GeocodeAddress(context.Background(), tt.address)

			assert.Nil(t, coords)
			mockCache.AssertNotCalled(t, "GetEntry")
			mockLookup.AssertNotCalled(t, "Search")
		})
	}
}

func TestResolveService_GeocodeAddress_CacheHitSkipsLookup(t *testing.T) {
	tests := []struct {
		name    string
		address string
	}{
		{name: "raw text key", address: "221B Baker Street"},
		{name: "entity key", address: "osm:way:12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(MockCacheRepository)
			mockLookup := new(MockAddressLookup)
			svc := newResolveService(mockCache, mockLookup)

			mockCache.On("GetEntry", mock.Anything, tt.address).
				Return(cachedEntry(tt.address, 51.5237, -0.1585), nil)

			coords := svc.GeocodeAddress(context.Background(), tt.address)

			assert.Equal(t, &models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}, coords)
			mockLookup.AssertNotCalled(t, "Search")
			mockCache.AssertNotCalled(t, "UpsertCoordinates")
			mockCache.AssertExpectations(t)
		})
	}
}

func TestResolveService_GeocodeAddress_MissWritesThreeKeys(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "221B Baker Street"
	coords := models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}

	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
	mockLookup.On("Search", mock.Anything, address, 1).Return([]nominatim.Place{
		{
			PlaceID:     100,
			OsmType:     "way",
			OsmID:       12345,
			Lat:         "51.5237",
			Lon:         "-0.1585",
			DisplayName: "221B, Baker Street, London",
		},
	}, nil)
	mockCache.On("UpsertCoordinates", mock.Anything, address, coords).Return(nil)
	mockCache.On("UpsertCoordinates", mock.Anything, "osm:way:12345", coords).Return(nil)
	mockCache.On("UpsertCoordinates", mock.Anything, "221B, Baker Street, London", coords).Return(nil)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockCache.AssertNumberOfCalls(t, "UpsertCoordinates", 3)
	mockCache.AssertExpectations(t)
	mockLookup.AssertExpectations(t)
}

func TestResolveService_GeocodeAddress_DisplayNameSameAsInput(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "221B, Baker Street, London"
	coords := models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}

	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
	mockLookup.On("Search", mock.Anything, address, 1).Return([]nominatim.Place{
		{OsmType: "way", OsmID: 12345, Lat: "51.5237", Lon: "-0.1585", DisplayName: address},
	}, nil)
	mockCache.On("UpsertCoordinates", mock.Anything, address, coords).Return(nil)
	mockCache.On("UpsertCoordinates", mock.Anything, "osm:way:12345", coords).Return(nil)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockCache.AssertNumberOfCalls(t, "UpsertCoordinates", 2)
	mockCache.AssertExpectations(t)
}

func TestResolveService_GeocodeAddress_ResultWithoutEntityReference(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "somewhere vague"
	coords := models.Coordinates{Latitude: 1.5, Longitude: 2.5}

	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
	mockLookup.On("Search", mock.Anything, address, 1).Return([]nominatim.Place{
		{Lat: "1.5", Lon: "2.5", DisplayName: "Somewhere, Vague"},
	}, nil)
	mockCache.On("UpsertCoordinates", mock.Anything, address, coords).Return(nil)
	mockCache.On("UpsertCoordinates", mock.Anything, "Somewhere, Vague", coords).Return(nil)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockCache.AssertNumberOfCalls(t, "UpsertCoordinates", 2)
	mockCache.AssertExpectations(t)
}

func TestResolveService_GeocodeAddress_TrimsLookupQueryOnly(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "  221B Baker Street  "
	coords := models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}

	// Cache is consulted and written with the literal untrimmed string; only
	// the outbound query is trimmed.
	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
	mockLookup.On("Search", mock.Anything, "221B Baker Street", 1).Return([]nominatim.Place{
		{Lat: "51.5237", Lon: "-0.1585", DisplayName: "221B, Baker Street, London"},
	}, nil)
	mockCache.On("UpsertCoordinates", mock.Anything, address, coords).Return(nil)
	mockCache.On("UpsertCoordinates", mock.Anything, "221B, Baker Street, London", coords).Return(nil)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockCache.AssertExpectations(t)
	mockLookup.AssertExpectations(t)
}

func TestResolveService_GeocodeAddress_Degradation(t *testing.T) {
	tests := []struct {
		name       string
		mockPlaces []nominatim.Place
		mockError  error
	}{
		{
			name:      "lookup transport error",
			mockError: assert.AnError,
		},
		{
			name:       "no lookup result",
			mockPlaces: []nominatim.Place{},
		},
		{
			name:       "unparsable coordinates",
			mockPlaces: []nominatim.Place{{Lat: "not-a-number", Lon: "-0.1585"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCache := new(MockCacheRepository)
			mockLookup := new(MockAddressLookup)
			svc := newResolveService(mockCache, mockLookup)

			address := "221B Baker Street"
			mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
			mockLookup.On("Search", mock.Anything, address, 1).Return(tt.mockPlaces, tt.mockError)

			coords := svc.GeocodeAddress(context.Background(), address)

			assert.Nil(t, coords)
			mockCache.AssertNotCalled(t, "UpsertCoordinates")
		})
	}
}

func TestResolveService_GeocodeAddress_CacheReadFaultIsMiss(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "221B Baker Street"
	coords := models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}

	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), assert.AnError)
	mockLookup.On("Search", mock.Anything, address, 1).Return([]nominatim.Place{
		{OsmType: "way", OsmID: 12345, Lat: "51.5237", Lon: "-0.1585", DisplayName: "221B, Baker Street, London"},
	}, nil)
	mockCache.On("UpsertCoordinates", mock.Anything, mock.Anything, coords).Return(nil)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockLookup.AssertExpectations(t)
}

func TestResolveService_GeocodeAddress_WriteFaultsDoNotAffectResult(t *testing.T) {
	mockCache := new(MockCacheRepository)
	mockLookup := new(MockAddressLookup)
	svc := newResolveService(mockCache, mockLookup)

	address := "221B Baker Street"
	coords := models.Coordinates{Latitude: 51.5237, Longitude: -0.1585}

	mockCache.On("GetEntry", mock.Anything, address).Return((*models.CacheEntry)(nil), nil)
	mockLookup.On("Search", mock.Anything, address, 1).Return([]nominatim.Place{
		{OsmType: "way", OsmID: 12345, Lat: "51.5237", Lon: "-0.1585", DisplayName: "221B, Baker Street, London"},
	}, nil)
	// Every write fails; the caller still gets coordinates and all three
	// writes are attempted.
	mockCache.On("UpsertCoordinates", mock.Anything, mock.Anything, coords).Return(assert.AnError)

	result := svc.GeocodeAddress(context.Background(), address)

	assert.Equal(t, &coords, result)
	mockCache.AssertNumberOfCalls(t, "UpsertCoordinates", 3)
}
