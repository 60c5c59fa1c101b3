package redis

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type PublisherSuite struct {
	suite.Suite
	mini   *miniredis.Miniredis
	client *redis.Client
	ctx    context.Context
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.ctx = context.Background()
}

func (s *PublisherSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *PublisherSuite) TestPublishAppendsEntry() {
	p := NewWithClient(s.client, 0)

	s.Require().NoError(p.Publish(s.ctx, "playerEvents", "fish", []byte(`{"type":"CREATE"}`)))
	s.Require().NoError(p.Publish(s.ctx, "playerEvents", "cat", []byte(`{"type":"DELETE"}`)))

	entries, err := s.client.XRange(s.ctx, "playerEvents", "-", "+").Result()
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("fish", entries[0].Values["key"])
	s.JSONEq(`{"type":"CREATE"}`, entries[0].Values["payload"].(string))
	s.Equal("cat", entries[1].Values["key"])
}

func (s *PublisherSuite) TestPublishTrimsStream() {
	p := NewWithClient(s.client, 3)

	for i := 0; i < 10; i++ {
		s.Require().NoError(p.Publish(s.ctx, "playerEvents", fmt.Sprintf("p%d", i), []byte(`{}`)))
	}

	entries, err := s.client.XRange(s.ctx, "playerEvents", "-", "+").Result()
	s.Require().NoError(err)
	s.LessOrEqual(len(entries), 10)
	s.Equal("p9", entries[len(entries)-1].Values["key"])
}

func (s *PublisherSuite) TestPing() {
	p := NewWithClient(s.client, 0)
	s.NoError(p.Ping(s.ctx))

	s.mini.Close()
	s.Error(p.Ping(s.ctx))
	s.Error(p.Publish(s.ctx, "playerEvents", "fish", []byte(`{}`)))
}

func (s *PublisherSuite) TestNewRejectsBadURL() {
	_, err := New(Config{URL: "not a url"})
	s.Error(err)

	p, err := New(Config{URL: "redis://" + s.mini.Addr()})
	s.Require().NoError(err)
	defer p.Close()
	s.NoError(p.Ping(s.ctx))
}
