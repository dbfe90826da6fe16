package cache

import (
	"context"
	"testing"
	"time"

	"beautyadmin/admin-service/internal/app/admin/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisClientTestSuite тестовый suite для кеша справочников
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})
	s.cache = NewRedisClientFromConn(s.client)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) TestSetThenGet() {
	ctx := context.Background()

	// Arrange
	brands := []entity.Brand{{ID: 1, Name: "Glow Lab", Slug: "glow-lab"}}
	s.Require().NoError(s.cache.SetJSON(ctx, BrandsKey, brands, time.Hour))

	// Act
	var got []entity.Brand
	hit, err := s.cache.GetJSON(ctx, BrandsKey, &got)

	// Assert
	s.NoError(err)
	s.True(hit)
	s.Equal(brands, got)
}

func (s *RedisClientTestSuite) TestGet_Miss() {
	var got []entity.Category

	hit, err := s.cache.GetJSON(context.Background(), CategoriesKey, &got)

	s.NoError(err)
	s.False(hit)
	s.Nil(got)
}

func (s *RedisClientTestSuite) TestSet_Expires() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetJSON(ctx, CategoriesKey, []entity.Category{{ID: 1}}, time.Minute))

	s.miniRedis.FastForward(2 * time.Minute)

	var got []entity.Category
	hit, err := s.cache.GetJSON(ctx, CategoriesKey, &got)
	s.NoError(err)
	s.False(hit)
}

func (s *RedisClientTestSuite) TestDelete_RemovesKeys() {
	ctx := context.Background()
	s.Require().NoError(s.cache.SetJSON(ctx, CategoriesKey, []int{1}, time.Hour))
	s.Require().NoError(s.cache.SetJSON(ctx, BrandsKey, []int{2}, time.Hour))

	err := s.cache.Delete(ctx, CategoriesKey, BrandsKey)

	s.NoError(err)
	s.False(s.miniRedis.Exists(CategoriesKey))
	s.False(s.miniRedis.Exists(BrandsKey))
}

func (s *RedisClientTestSuite) TestGet_CorruptedValue() {
	s.Require().NoError(s.miniRedis.Set(CategoriesKey, "not-json"))

	var got []entity.Category
	hit, err := s.cache.GetJSON(context.Background(), CategoriesKey, &got)

	s.Error(err)
	s.False(hit)
}

func (s *RedisClientTestSuite) TestPing() {
	s.NoError(s.cache.Ping(context.Background()))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient("127.0.0.1:1", "", 0)

	assert.Error(t, err)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "categories", keyPrefix(CategoriesKey))
	assert.Equal(t, "plain", keyPrefix("plain"))
}
